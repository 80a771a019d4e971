package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/appfrabric/roilux/internal/adapters/persistence/jsonstore"
	"github.com/appfrabric/roilux/internal/adapters/persistence/models"
	"github.com/appfrabric/roilux/internal/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	storage  *config.Storage
	auth     *AuthService
	intake   *IntakeService
	contacts *ContactReviewService
	tours    *TourReviewService

	admin     *models.Account
	processor *models.Account
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	log := zap.NewNop().Sugar()

	store, err := jsonstore.Open(filepath.Join(t.TempDir(), "database.json"), log)
	require.NoError(t, err)
	storage := config.NewJSONStorage(store)

	cfg := &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: "test-secret", AccessTokenMins: 5},
		Seed:    config.SeedConfig{AdminPassword: "roilux2024", ProcessorPassword: "processor123"},
	}
	require.NoError(t, config.NewSeeder(storage.Accounts, cfg.Seed, log).Run(ctx))

	admin, err := storage.Accounts.GetByUsername(ctx, config.AdminUsername)
	require.NoError(t, err)
	processor, err := storage.Accounts.GetByUsername(ctx, config.ProcessorUsername)
	require.NoError(t, err)

	return &testEnv{
		storage:   storage,
		auth:      NewAuthService(storage.Accounts, cfg, log),
		intake:    NewIntakeService(storage.Contacts, storage.Tours, log),
		contacts:  NewContactReviewService(storage.Contacts, log),
		tours:     NewTourReviewService(storage.Tours, log),
		admin:     admin,
		processor: processor,
	}
}
