package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/recapio/recapio/internal/api/handlers"
	"github.com/recapio/recapio/internal/api/middleware"
	"github.com/recapio/recapio/internal/config"
	"github.com/recapio/recapio/internal/services/auth"
)

type Router struct {
	engine *gin.Engine
	config *config.Config
}

func NewRouter(
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	videoHandler *handlers.VideoHandler,
	jobHandler *handlers.JobHandler,
	userHandler *handlers.UserHandler,
	orderHandler *handlers.OrderHandler,
	paymentHandler *handlers.PaymentHandler,
	jwtService *auth.JWTService,
	sessionService *auth.SessionService,
) *Router {
	// Set Gin mode
	if cfg.Server.Host == "0.0.0.0" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CorrelationIDMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))

	// Health endpoints (no auth required)
	health := engine.Group("/")
	{
		health.GET("/health", healthHandler.Health)
		health.GET("/ready", healthHandler.Readiness)
		health.GET("/live", healthHandler.Liveness)
	}

	// Swagger documentation (no auth required)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Authentication endpoints (no auth required)
	authGroup := engine.Group("/api/v1/auth")
	authGroup.Use(middleware.RateLimitMiddleware(&cfg.API))
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)

		protected := authGroup.Group("")
		protected.Use(middleware.JWTAuthMiddleware(jwtService, sessionService))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/verify", authHandler.Verify)
			protected.GET("/sessions", authHandler.Sessions)
			protected.DELETE("/sessions/:session_id", authHandler.RevokeSession)
		}
	}

	// API endpoints with JWT authentication and rate limiting
	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(jwtService, sessionService))
	api.Use(middleware.RateLimitMiddleware(&cfg.API))
	{
		// Video URL recognition endpoints
		videos := api.Group("/videos")
		{
			videos.POST("/validate", videoHandler.ValidateURL) // /api/v1/videos/validate
			videos.GET("/platforms", videoHandler.ListPlatforms)
			videos.GET("/languages", videoHandler.ListLanguages)
		}

		// Dubbing job endpoints
		jobsGroup := api.Group("/jobs")
		{
			jobsGroup.POST("", jobHandler.CreateJob)
			jobsGroup.GET("", jobHandler.ListJobs)
			jobsGroup.GET("/:job_id", jobHandler.GetJob)
			jobsGroup.GET("/:job_id/result", jobHandler.GetJobResult)
		}

		// Admin endpoints
		admin := api.Group("")
		admin.Use(middleware.RoleMiddleware("admin"))
		{
			users := admin.Group("/users")
			{
				users.POST("", userHandler.CreateUser)
				users.GET("", userHandler.ListUsers)
				users.GET("/:user_id", userHandler.GetUser)
				users.PUT("/:user_id", userHandler.UpdateUser)
				users.DELETE("/:user_id", userHandler.DeleteUser)
			}

			orders := admin.Group("/orders")
			{
				orders.POST("", orderHandler.CreateOrder)
				orders.GET("", orderHandler.ListOrders)
				orders.GET("/:order_id", orderHandler.GetOrder)
				orders.PUT("/:order_id/status", orderHandler.UpdateOrderStatus)
			}

			payments := admin.Group("/payments")
			{
				payments.POST("/webhook", paymentHandler.Webhook)
				payments.GET("", paymentHandler.ListPayments)
				payments.GET("/:payment_id", paymentHandler.GetPayment)
			}
		}
	}

	return &Router{
		engine: engine,
		config: cfg,
	}
}

func (r *Router) Start() error {
	addr := r.config.Server.Host + ":" + r.config.Server.Port
	return r.engine.Run(addr)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
