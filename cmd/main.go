package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/lifedrop/lifedrop-backend/config"
	"github.com/lifedrop/lifedrop-backend/internal/container"
	"github.com/lifedrop/lifedrop-backend/internal/identity"
	"github.com/lifedrop/lifedrop-backend/internal/infrastructure/mongodb"
	"github.com/lifedrop/lifedrop-backend/internal/interface/middleware"
	"github.com/lifedrop/lifedrop-backend/internal/payments"
	"github.com/lifedrop/lifedrop-backend/internal/router"
	"github.com/lifedrop/lifedrop-backend/pkg/helpers"
	"github.com/lifedrop/lifedrop-backend/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// MongoDB
	client, db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	// Identity verifier
	verifier, err := buildVerifier(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to init identity verifier: %v", err)
	}

	// Stripe
	gateway, err := payments.NewStripeGateway(cfg.StripeSecretKey)
	if err != nil {
		log.Fatalf("failed to init stripe gateway: %v", err)
	}

	// Redis (role lookup cache)
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	// RabbitMQ receipt queue; the service degrades to no receipts without it
	var pub *helpers.RabbitPublisher
	if cfg.MailSendEnabled {
		pub, err = helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQReceiptQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable, donation receipts disabled")
			pub = nil
		} else {
			defer pub.Close()
		}
	}

	// Elasticsearch full-text index, optional
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch unavailable, full-text search disabled")
		} else {
			container.SetES(es)
		}
	}

	// GCS avatar storage, optional
	if cfg.GCSBucket != "" {
		gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcs.Close() }()
		container.SetGCS(gcs)
	}

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetMongoClient(client)
	container.SetMongoDB(db)
	container.SetRedis(rdb)
	container.SetVerifier(verifier)
	container.SetGateway(gateway)
	container.SetRabbitPub(pub)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

func buildVerifier(ctx context.Context, cfg *config.Config) (identity.Verifier, error) {
	switch cfg.AuthMode {
	case "firebase":
		return identity.NewFirebaseVerifier(ctx, cfg.FirebaseKeyB64, cfg.VerifyTimeout)
	case "hmac":
		return identity.NewHMACVerifier(cfg.HMACTokenSecret), nil
	}
	return nil, fmt.Errorf("unknown AUTH_MODE %q", cfg.AuthMode)
}
