package router

import (
	app "github.com/lifedrop/lifedrop-backend/internal/application"
	"github.com/lifedrop/lifedrop-backend/internal/container"
	"github.com/lifedrop/lifedrop-backend/internal/infrastructure/mongodb"
	handlers "github.com/lifedrop/lifedrop-backend/internal/interface/http"
	"github.com/lifedrop/lifedrop-backend/internal/router/modules"
)

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup after the container has
// been populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	db := container.GetMongoDB()
	verifier := container.GetVerifier()

	accountSvc := app.NewAccountService(
		mongodb.NewAccountRepository(db),
		container.GetRedis(),
		container.GetGCS(),
		cfg.GCSBucket,
		logger,
		cfg.RoleCacheTTL,
	)
	requestSvc := app.NewRequestService(
		mongodb.NewRequestRepository(db),
		logger,
		container.GetES(),
		cfg.ESRequestsIndex,
	)
	fundingSvc := app.NewFundingService(
		mongodb.NewPaymentRepository(db),
		container.GetGateway(),
		container.GetRabbitPub(),
		logger,
		cfg.SiteOrigin,
		cfg.Currency,
	)

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(container.GetMongoClient())))
	r.Add(modules.NewAccountModule(handlers.NewAccountHandler(accountSvc, logger), verifier))
	r.Add(modules.NewRequestModule(handlers.NewRequestHandler(requestSvc, logger), verifier))
	r.Add(modules.NewFundingModule(handlers.NewFundingHandler(fundingSvc, logger), verifier))
}
