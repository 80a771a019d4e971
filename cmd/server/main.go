package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/appfrabric/roilux/internal/adapters/http/middleware"
	"github.com/appfrabric/roilux/internal/adapters/http/routes"
	"github.com/appfrabric/roilux/internal/config"
	"github.com/appfrabric/roilux/internal/core/services"
	"github.com/appfrabric/roilux/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// @title Roilux API
// @version 1.0
// @description Contact messages, virtual tour requests and staff review for the Roilux site

// @BasePath /
// @schemes https http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	logg, err := logger.New(cfg.LogDir, "api", cfg.IsDev())
	if err != nil {
		log.Fatalf("❌ Failed to initialise logger: %v", err)
	}
	defer logg.Sync()
	logg.Infow("✅ Configuration loaded", "mode", cfg.AppMode, "driver", cfg.Database.Driver)

	// Open storage
	storage, err := config.OpenStorage(cfg, logg)
	if err != nil {
		logg.Fatalf("❌ Failed to open storage: %v", err)
	}
	defer storage.Close()

	// Seed accounts
	if err := config.NewSeeder(storage.Accounts, cfg.Seed, logg).Run(context.Background()); err != nil {
		logg.Fatalf("❌ Failed to seed accounts: %v", err)
	}

	// Scheduled backups of the JSON document
	if storage.Store != nil && cfg.Backup.Dir != "" {
		backups := services.NewBackupService(storage.Store, cfg.Backup.Dir, cfg.Backup.Keep, logg)
		if err := backups.Start(cfg.Backup.Schedule); err != nil {
			logg.Fatalf("❌ %v", err)
		}
		defer backups.Stop()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Roilux API v1.0",
		ErrorHandler: middleware.CustomErrorHandler(logg),
		BodyLimit:    cfg.Media.MaxUploadMB * 1024 * 1024,
	})

	// Setup middlewares
	middleware.Setup(app, cfg, logg)

	// Setup routes
	if err := routes.Setup(app, storage, cfg, logg); err != nil {
		logg.Fatalf("❌ Failed to setup routes: %v", err)
	}

	// Graceful shutdown
	go gracefulShutdown(app, logg)

	// Start server
	logg.Infof("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logg.Errorf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, logg *zap.SugaredLogger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		logg.Errorf("❌ Error during shutdown: %v", err)
	}
	logg.Info("✅ Server stopped gracefully")
}
