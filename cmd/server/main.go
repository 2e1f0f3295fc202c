package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jwtpizza/pizza-backend/config"
	"github.com/jwtpizza/pizza-backend/internal/app/controller"
	"github.com/jwtpizza/pizza-backend/internal/app/repository"
	"github.com/jwtpizza/pizza-backend/internal/app/service"
	"github.com/jwtpizza/pizza-backend/internal/db"
	"github.com/jwtpizza/pizza-backend/internal/middleware"
	"github.com/jwtpizza/pizza-backend/internal/router"
	"github.com/jwtpizza/pizza-backend/pkg/factory"
	"github.com/jwtpizza/pizza-backend/pkg/logger"
	"github.com/jwtpizza/pizza-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting JWT Pizza Backend Server", map[string]interface{}{
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

	// Initialize Redis (session revocation set)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()
	revocations := redis.NewRevocationStore(redis.GetClient())

	// Initialize factory client
	factoryClient, err := factory.NewClient(factory.Config{
		BaseURL: cfg.Factory.BaseURL,
		APIKey:  cfg.Factory.APIKey,
		Timeout: cfg.Factory.Timeout,
	})
	if err != nil {
		logger.Fatal("Failed to initialize factory client", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	franchiseRepo := repository.NewFranchiseRepository(db.GetDB())
	menuRepo := repository.NewMenuRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(userRepo, revocations, cfg.JWT.Secret)
	userService := service.NewUserService(userRepo, revocations)
	franchiseService := service.NewFranchiseService(franchiseRepo, userRepo)
	menuService := service.NewMenuService(menuRepo)
	orderService := service.NewOrderService(orderRepo, franchiseRepo, factoryClient, db.GetDB())

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	userController := controller.NewUserController(userService)
	franchiseController := controller.NewFranchiseController(franchiseService)
	orderController := controller.NewOrderController(orderService, menuService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, userRepo, revocations)

	// Setup router
	r := router.NewRouter(
		authController,
		userController,
		franchiseController,
		orderController,
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
