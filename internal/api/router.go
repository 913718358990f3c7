package api

import (
	"github.com/gin-gonic/gin"

	"github.com/signhey/signhey-server/config"
	"github.com/signhey/signhey-server/internal/api/handler"
	"github.com/signhey/signhey-server/internal/api/middleware"
)

type Router struct {
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	packageHandler      *handler.PackageHandler
	documentHandler     *handler.DocumentHandler
	signHandler         *handler.SignHandler
	uploadHandler       *handler.UploadHandler
	agreementHandler    *handler.AgreementHandler
	paymentHandler      *handler.PaymentHandler
	subscriptionHandler *handler.SubscriptionHandler
	cfg                 *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	packageHandler *handler.PackageHandler,
	documentHandler *handler.DocumentHandler,
	signHandler *handler.SignHandler,
	uploadHandler *handler.UploadHandler,
	agreementHandler *handler.AgreementHandler,
	paymentHandler *handler.PaymentHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:         authHandler,
		userHandler:         userHandler,
		packageHandler:      packageHandler,
		documentHandler:     documentHandler,
		signHandler:         signHandler,
		uploadHandler:       uploadHandler,
		agreementHandler:    agreementHandler,
		paymentHandler:      paymentHandler,
		subscriptionHandler: subscriptionHandler,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// Public
		auth := api.Group("/auth")
		{
			auth.POST("/signup", r.authHandler.Signup)
			auth.POST("/login", r.authHandler.Login)
		}

		// Authenticated
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			authenticated.GET("/auth/me", r.authHandler.Me)
			authenticated.PUT("/auth/password", r.authHandler.ChangePassword)

			user := authenticated.Group("/user")
			{
				user.GET("", r.userHandler.GetProfile)
				user.PUT("", r.userHandler.UpdateProfile)
			}

			packages := authenticated.Group("/packages")
			{
				packages.GET("/current", r.packageHandler.Current)
				packages.GET("/check-quota", r.packageHandler.CheckQuota)
			}

			documents := authenticated.Group("/documents")
			{
				documents.GET("", r.documentHandler.List)
				documents.GET("/:id", r.documentHandler.Get)
				documents.POST("", r.documentHandler.Create)
				documents.PUT("/:id", r.documentHandler.Update)
				documents.DELETE("/:id", r.documentHandler.Delete)
			}

			authenticated.POST("/sign", r.signHandler.Sign)
			authenticated.POST("/upload", r.uploadHandler.Upload)

			agreements := authenticated.Group("/agreements")
			{
				agreements.GET("", r.agreementHandler.List)
				agreements.GET("/:id", r.agreementHandler.Get)
				agreements.POST("", r.agreementHandler.Create)
				agreements.PUT("/:id", r.agreementHandler.Update)
				agreements.DELETE("/:id", r.agreementHandler.Delete)
				agreements.POST("/:id/send", r.agreementHandler.Send)
			}

			payment := authenticated.Group("/payment")
			{
				payment.POST("/create-intent", r.paymentHandler.CreateIntent)
				payment.POST("/confirm", r.paymentHandler.Confirm)
			}

			subscription := authenticated.Group("/subscription")
			{
				subscription.POST("/create-intent", r.subscriptionHandler.CreateIntent)
				subscription.POST("/confirm", r.subscriptionHandler.Confirm)
				subscription.POST("/downgrade", r.subscriptionHandler.Downgrade)
			}
		}
	}

	return engine
}
