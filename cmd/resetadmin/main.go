// Command resetadmin sets the primordial admin password back to
// ADMIN_PASSWORD and makes sure the default processor account exists.
package main

import (
	"context"
	"log"

	"github.com/appfrabric/roilux/internal/config"
	"github.com/appfrabric/roilux/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	logg, err := logger.New(cfg.LogDir, "resetadmin", true)
	if err != nil {
		log.Fatalf("❌ Failed to initialise logger: %v", err)
	}
	defer logg.Sync()

	storage, err := config.OpenStorage(cfg, logg)
	if err != nil {
		logg.Fatalf("❌ Failed to open storage: %v", err)
	}
	defer storage.Close()

	if err := config.NewSeeder(storage.Accounts, cfg.Seed, logg).ResetAdmin(context.Background()); err != nil {
		logg.Fatalf("❌ Reset failed: %v", err)
	}

	logg.Infow("✅ Accounts ready", "admin", config.AdminUsername, "processor", config.ProcessorUsername)
}
