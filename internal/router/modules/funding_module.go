package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/lifedrop/lifedrop-backend/internal/identity"
	handlers "github.com/lifedrop/lifedrop-backend/internal/interface/http"
	"github.com/lifedrop/lifedrop-backend/internal/interface/middleware"
)

// FundingModule wires the payment HTTP handlers into routes.
// Public: POST /create-payment-checkout, POST /success-payment (processor
// redirects cannot carry a bearer credential).
// Protected: GET /funding.
type FundingModule struct {
	Handler  *handlers.FundingHandler
	Verifier identity.Verifier
}

func NewFundingModule(h *handlers.FundingHandler, v identity.Verifier) *FundingModule {
	return &FundingModule{Handler: h, Verifier: v}
}

func (m *FundingModule) Register(rg *gin.RouterGroup) {
	rg.POST("/create-payment-checkout", m.Handler.CreateCheckout)
	rg.POST("/success-payment", m.Handler.ConfirmPayment)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Verifier))
	{
		auth.GET("/funding", m.Handler.ListPayments)
	}
}
