package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/appfrabric/roilux/internal/adapters/persistence/models"
	"github.com/appfrabric/roilux/internal/adapters/persistence/repositories"
	"github.com/appfrabric/roilux/internal/core/domain"
	"github.com/appfrabric/roilux/internal/pkg/password"

	"go.uber.org/zap"
)

const (
	AdminUsername     = "admin"
	AdminEmail        = "admin@roilux.com"
	ProcessorUsername = "processor1"
	ProcessorEmail    = "processor1@roilux.com"
)

// Seeder guarantees the seed accounts exist
type Seeder struct {
	accounts repositories.AccountRepository
	seed     SeedConfig
	log      *zap.SugaredLogger
}

// NewSeeder creates a new seeder instance
func NewSeeder(accounts repositories.AccountRepository, seed SeedConfig, log *zap.SugaredLogger) *Seeder {
	return &Seeder{accounts: accounts, seed: seed, log: log}
}

// Run creates the primordial admin (id 1) and the default processor when
// they are missing.  Existing accounts are left untouched.
func (s *Seeder) Run(ctx context.Context) error {
	s.log.Info("🌱 Running database seeders...")

	if err := s.seedAdmin(ctx); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := s.seedProcessor(ctx); err != nil {
		return fmt.Errorf("seed processor: %w", err)
	}

	s.log.Info("✅ Database seeding completed")
	return nil
}

// ResetAdmin sets the primordial admin password back to the configured
// value, revoking its tokens, and makes sure the processor exists
func (s *Seeder) ResetAdmin(ctx context.Context) error {
	admin, err := s.accounts.GetByID(ctx, domain.PrimordialAccountID)
	if errors.Is(err, domain.ErrNotFound) {
		if err := s.seedAdmin(ctx); err != nil {
			return err
		}
		return s.seedProcessor(ctx)
	}
	if err != nil {
		return err
	}

	hash, err := password.Hash(s.seed.AdminPassword)
	if err != nil {
		return err
	}
	if admin.Role != domain.RoleAdmin {
		admin.Role = domain.RoleAdmin
		if err := s.accounts.Update(ctx, admin); err != nil {
			return err
		}
	}
	if err := s.accounts.SetPassword(ctx, admin.ID, hash); err != nil {
		return err
	}
	s.log.Infow("🔑 Admin password reset", "username", admin.Username)

	return s.seedProcessor(ctx)
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	_, err := s.accounts.GetByID(ctx, domain.PrimordialAccountID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := password.Hash(s.seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.Account{
		ID:           domain.PrimordialAccountID,
		Username:     AdminUsername,
		Email:        AdminEmail,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := s.accounts.Create(ctx, admin); err != nil {
		return err
	}

	s.log.Infow("✅ Admin user created", "username", admin.Username, "id", admin.ID)
	return nil
}

func (s *Seeder) seedProcessor(ctx context.Context) error {
	exists, err := s.accounts.ExistsByUsername(ctx, ProcessorUsername)
	if err != nil || exists {
		return err
	}

	hash, err := password.Hash(s.seed.ProcessorPassword)
	if err != nil {
		return err
	}

	processor := &models.Account{
		Username:     ProcessorUsername,
		Email:        ProcessorEmail,
		PasswordHash: hash,
		Role:         domain.RoleProcessor,
	}
	if err := s.accounts.Create(ctx, processor); err != nil {
		return err
	}

	s.log.Infow("✅ Processor user created", "username", processor.Username, "id", processor.ID)
	return nil
}
