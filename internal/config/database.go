package config

import (
	"context"
	"fmt"
	"time"

	"github.com/appfrabric/roilux/internal/adapters/persistence/jsonstore"
	"github.com/appfrabric/roilux/internal/adapters/persistence/models"
	"github.com/appfrabric/roilux/internal/adapters/persistence/repositories"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage bundles the repositories of the configured backend
type Storage struct {
	Accounts repositories.AccountRepository
	Contacts repositories.ContactRepository
	Tours    repositories.TourRepository

	// Store is set for the JSON backend (used for scheduled backups)
	Store *jsonstore.Store

	pinger repositories.Pinger
	close  func() error
}

// HealthCheck checks if the storage backend is reachable
func (s *Storage) HealthCheck(ctx context.Context) error {
	return s.pinger.Ping(ctx)
}

// Close releases the backend
func (s *Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStorage opens the backend selected by DB_DRIVER
func OpenStorage(cfg *Config, log *zap.SugaredLogger) (*Storage, error) {
	switch cfg.Database.Driver {
	case DriverMySQL:
		db, err := ConnectDatabase(cfg, log)
		if err != nil {
			return nil, err
		}
		if err := models.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return NewGormStorage(db), nil
	default:
		store, err := jsonstore.Open(cfg.Database.Path, log)
		if err != nil {
			return nil, err
		}
		return NewJSONStorage(store), nil
	}
}

// NewJSONStorage wires the repositories over a JSON document store
func NewJSONStorage(store *jsonstore.Store) *Storage {
	return &Storage{
		Accounts: jsonstore.NewAccountRepository(store),
		Contacts: jsonstore.NewContactRepository(store),
		Tours:    jsonstore.NewTourRepository(store),
		Store:    store,
		pinger:   store,
	}
}

// NewGormStorage wires the repositories over a GORM connection
func NewGormStorage(db *gorm.DB) *Storage {
	return &Storage{
		Accounts: repositories.NewAccountRepository(db),
		Contacts: repositories.NewContactRepository(db),
		Tours:    repositories.NewTourRepository(db),
		pinger:   gormPinger{db},
		close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

type gormPinger struct {
	db *gorm.DB
}

func (p gormPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// ConnectDatabase establishes connection to MySQL database
func ConnectDatabase(cfg *Config, log *zap.SugaredLogger) (*gorm.DB, error) {
	dsn := buildDSN(cfg.Database)

	gormLogger := logger.Default.LogMode(logger.Error)
	if cfg.IsDev() {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Infof("✅ Database connected successfully [%s:%s/%s]",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
	)

	return db, nil
}

// buildDSN returns the database connection string
func buildDSN(d DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.DBName,
	)
}
