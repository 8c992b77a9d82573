package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ikkim/bestfoody-backend/config"
	"github.com/ikkim/bestfoody-backend/internal/app/controller"
	"github.com/ikkim/bestfoody-backend/internal/app/repository"
	"github.com/ikkim/bestfoody-backend/internal/app/service"
	"github.com/ikkim/bestfoody-backend/internal/db"
	"github.com/ikkim/bestfoody-backend/internal/middleware"
	"github.com/ikkim/bestfoody-backend/internal/router"
	"github.com/ikkim/bestfoody-backend/internal/scheduler"
	"github.com/ikkim/bestfoody-backend/internal/storage"
	"github.com/ikkim/bestfoody-backend/pkg/logger"
	"github.com/ikkim/bestfoody-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := cfg.Log.Level
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      cfg.Log.Format,
		EnableColor: true,
	})

	logger.Info("Starting BESTFOODY Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis (optional, enables token revocation on logout)
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, token blacklist disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer redis.Close()
		}
	}

	// Initialize storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	restaurantRepo := repository.NewRestaurantRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	ratingRepo := repository.NewRatingRepository(db.GetDB())
	imageRepo := repository.NewImageRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	ratingService := service.NewRatingService(ratingRepo, reviewRepo)
	restaurantService := service.NewRestaurantService(db.GetDB(), restaurantRepo, imageRepo)
	reviewService := service.NewReviewService(reviewRepo, restaurantRepo, ratingService)
	imageService := service.NewImageService(imageRepo, s3Storage)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	restaurantController := controller.NewRestaurantController(restaurantService)
	reviewController := controller.NewReviewController(reviewService)
	imageController := controller.NewImageController(imageService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start rating reconciliation scheduler
	ratingScheduler := scheduler.NewRatingScheduler(restaurantRepo, ratingService)
	if err := ratingScheduler.Start(); err != nil {
		logger.Fatal("Failed to start rating scheduler", err)
	}
	defer ratingScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		restaurantController,
		reviewController,
		imageController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
