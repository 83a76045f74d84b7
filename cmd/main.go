// Package main provides the entry point for the Recapio backend service.
// @title Recapio API
// @version 1.0
// @description Backend for the Recapio video dubbing service: validates short-form video URLs, manages users, orders and payments, and orchestrates dubbing jobs.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://recapio.video/support
// @contact.email support@recapio.video

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT access token, prefixed with "Bearer "

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/recapio/recapio/docs" // Import for swagger docs
	"github.com/recapio/recapio/internal/api/handlers"
	"github.com/recapio/recapio/internal/api/router"
	"github.com/recapio/recapio/internal/config"
	"github.com/recapio/recapio/internal/database"
	"github.com/recapio/recapio/internal/scheduler"
	"github.com/recapio/recapio/internal/services/auth"
	"github.com/recapio/recapio/internal/services/dubbing"
	"github.com/recapio/recapio/internal/services/jobs"
	"github.com/recapio/recapio/internal/services/storage"
	"github.com/recapio/recapio/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting Recapio service")

	// Initialize database
	db, err := database.NewMongoDB(&cfg.MongoDB)
	if err != nil {
		logger.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	// Initialize S3 storage
	s3Storage, err := storage.NewStorage(&cfg.S3)
	if err != nil {
		logger.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize dubbing engine client
	engineClient := dubbing.NewHTTPClient(&cfg.Engine)

	// Initialize auth services
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:            cfg.API.JWTSecret,
		AccessTokenDuration:  cfg.API.AccessTokenDuration,
		RefreshTokenDuration: cfg.API.RefreshTokenDuration,
		Issuer:               cfg.API.JWTIssuer,
	})
	sessionService := auth.NewSessionService(db, jwtService)

	// Initialize job service
	jobService := jobs.NewService(db, s3Storage, engineClient, &cfg.Jobs, &cfg.Engine)

	// Initialize scheduler for stale job sweeps and auth cleanup
	sched := scheduler.New(jobService, sessionService)
	if err := sched.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, s3Storage)
	authHandler := handlers.NewAuthHandler(db, jwtService, sessionService)
	videoHandler := handlers.NewVideoHandler(engineClient)
	jobHandler := handlers.NewJobHandler(jobService)
	userHandler := handlers.NewUserHandler(db, sessionService)
	orderHandler := handlers.NewOrderHandler(db)
	paymentHandler := handlers.NewPaymentHandler(db)

	// Initialize router
	r := router.NewRouter(cfg, healthHandler, authHandler, videoHandler, jobHandler, userHandler, orderHandler, paymentHandler, jwtService, sessionService)

	// Start server
	go func() {
		logger.Infof("Starting server on %s:%s", cfg.Server.Host, cfg.Server.Port)
		if err := r.Start(); err != nil {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	sched.Stop()

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Close database connection
	if err := db.Close(ctx); err != nil {
		logger.Errorf("Failed to close database connection: %v", err)
	}

	logger.Info("Server shutdown complete")
}
