package main

import (
	"fmt"
	"log"

	"github.com/signhey/signhey-server/config"
	"github.com/signhey/signhey-server/internal/api"
	"github.com/signhey/signhey-server/internal/api/handler"
	"github.com/signhey/signhey-server/internal/database"
	"github.com/signhey/signhey-server/internal/pkg/cron"
	"github.com/signhey/signhey-server/internal/pkg/esign"
	"github.com/signhey/signhey-server/internal/pkg/payment"
	"github.com/signhey/signhey-server/internal/pkg/queue"
	"github.com/signhey/signhey-server/internal/pkg/storage"
	"github.com/signhey/signhey-server/internal/repository"
	"github.com/signhey/signhey-server/internal/service"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// Durable document storage. Without OSS credentials fall back to the
	// in-memory store so local development works out of the box.
	var store storage.Store
	if cfg.OSS.Endpoint != "" && cfg.OSS.AccessKeyID != "" {
		ossStore, err := storage.NewOSSStore(&cfg.OSS)
		if err != nil {
			log.Fatalf("Failed to init OSS store: %v", err)
		}
		store = ossStore
		log.Println("OSS store initialized")
	} else {
		store = storage.NewMemoryStore("")
		log.Println("OSS not configured, using in-memory store")
	}

	// Payment provider. The second provider always serves preview-mode
	// checkouts; live mode needs a real secret key.
	var liveProvider payment.Provider
	if cfg.Payment.SecretKey != "" {
		liveProvider = payment.NewClient(cfg.Payment.SecretKey, cfg.Payment.BaseURL)
		log.Println("Payment client initialized")
	} else {
		liveProvider = payment.NewFake()
		log.Println("Payment secret key not configured, using fake provider")
	}
	previewProvider := payment.NewFake()

	var signProvider esign.Provider
	if cfg.Esign.APIKey != "" {
		signProvider = esign.NewClient(cfg.Esign.APIKey, cfg.Esign.BaseURL)
		log.Println("E-sign client initialized")
	} else {
		signProvider = esign.NewFake()
		log.Println("E-sign API key not configured, using fake provider")
	}

	mailQueue := queue.NewQueue(rdb, cfg.Queue.AgreementQueue)

	userRepo := repository.NewUserRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	agreementRepo := repository.NewAgreementRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	authService := service.NewAuthService(userRepo, cfg)
	userService := service.NewUserService(userRepo, cfg)
	quotaService := service.NewQuotaService(userRepo, cfg)
	documentService := service.NewDocumentService(documentRepo, quotaService, cfg)
	signService := service.NewSignService(documentRepo, quotaService, signProvider, cfg)
	uploadService := service.NewUploadService(store, quotaService, cfg)
	agreementService := service.NewAgreementService(agreementRepo, quotaService, mailQueue, cfg)
	paymentService := service.NewPaymentService(liveProvider, previewProvider, subscriptionRepo, quotaService, cfg)

	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	packageHandler := handler.NewPackageHandler(userService, quotaService)
	documentHandler := handler.NewDocumentHandler(documentService)
	signHandler := handler.NewSignHandler(signService)
	uploadHandler := handler.NewUploadHandler(uploadService, cfg)
	agreementHandler := handler.NewAgreementHandler(agreementService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	subscriptionHandler := handler.NewSubscriptionHandler(paymentService)

	cronService := cron.NewService(quotaService, cfg.Upload.TempDir, cfg.Upload.ExpireHours)
	cronService.Start()
	defer cronService.Stop()

	router := api.NewRouter(
		authHandler,
		userHandler,
		packageHandler,
		documentHandler,
		signHandler,
		uploadHandler,
		agreementHandler,
		paymentHandler,
		subscriptionHandler,
		cfg,
	)
	engine := router.Setup()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
