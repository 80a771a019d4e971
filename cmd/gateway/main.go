package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/appfrabric/roilux/internal/adapters/http/gateway"
	"github.com/appfrabric/roilux/internal/adapters/http/middleware"
	"github.com/appfrabric/roilux/internal/config"
	"github.com/appfrabric/roilux/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	logg, err := logger.New(cfg.LogDir, "gateway", cfg.IsDev())
	if err != nil {
		log.Fatalf("❌ Failed to initialise logger: %v", err)
	}
	defer logg.Sync()

	gw := gateway.New(cfg.Gateway.StaticDir, cfg.Gateway.BackendURL, logg)

	if cfg.Gateway.BackendURL != "" {
		probe, err := gw.StartProbe(cfg.Gateway.ProbeInterval)
		if err != nil {
			logg.Fatalf("❌ %v", err)
		}
		defer probe.Stop()
	} else {
		logg.Warn("⚠️ BACKEND_URL not set, /api requests will answer 404")
	}

	app := fiber.New(fiber.Config{
		AppName:      "Roilux Gateway v1.0",
		ErrorHandler: middleware.CustomErrorHandler(logg),
	})
	app.Use(recover.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	app.Use(middleware.RequestLogger(logg))

	gw.Register(app)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logg.Info("🛑 Shutting down gateway...")
		if err := app.Shutdown(); err != nil {
			logg.Errorf("❌ Error during shutdown: %v", err)
		}
	}()

	logg.Infow("🚀 Gateway starting", "port", cfg.Port, "static", cfg.Gateway.StaticDir, "backend", cfg.Gateway.BackendURL)
	if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
		logg.Errorf("❌ Failed to start gateway: %v", err)
	}
}
