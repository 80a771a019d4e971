package repositories

import (
	"context"
	"time"

	"github.com/appfrabric/roilux/internal/adapters/persistence/models"
	"github.com/appfrabric/roilux/internal/core/domain"
)

// AccountRepository defines account repository interface.
// Lookups of absent records return domain.ErrNotFound.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Account, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// RecordLogin sets last_login, and the password hash when rehash is
	// non-empty, only while the stored hash still equals verifiedHash.
	// It returns the updated account, or domain.ErrNotFound when no
	// account has that id and hash.
	RecordLogin(ctx context.Context, id uint, verifiedHash, rehash string, at time.Time) (*models.Account, error)
	// SetPassword replaces the hash and increments token_version
	SetPassword(ctx context.Context, id uint, hash string) error
	// BumpTokenVersion increments token_version
	BumpTokenVersion(ctx context.Context, id uint) error
}

// RequestRepository defines the repository of one request collection.
// Create assigns the next identifier; List returns newest-created first.
type RequestRepository[T any] interface {
	Create(ctx context.Context, record *T) error
	GetByID(ctx context.Context, id uint) (*T, error)
	List(ctx context.Context, offset, limit int) ([]*T, int64, error)
	SetStatus(ctx context.Context, id uint, status domain.RequestStatus) error
	Delete(ctx context.Context, id uint) error
}

// ContactRepository stores contact messages
type ContactRepository = RequestRepository[models.ContactMessage]

// TourRepository stores virtual tour requests
type TourRepository = RequestRepository[models.TourRequest]

// Pinger reports storage health
type Pinger interface {
	Ping(ctx context.Context) error
}
