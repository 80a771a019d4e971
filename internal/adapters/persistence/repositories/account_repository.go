package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/appfrabric/roilux/internal/adapters/persistence/models"
	"github.com/appfrabric/roilux/internal/core/domain"

	"gorm.io/gorm"
)

// accountRepository implements AccountRepository on GORM
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create creates a new account
func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	return wrap(r.db.WithContext(ctx).Create(account).Error)
}

// GetByID gets an account by ID
func (r *accountRepository) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		return nil, wrap(err)
	}
	return &account, nil
}

// GetByUsername gets an account by exact username
func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&account).Error
	if err != nil {
		return nil, wrap(err)
	}
	return &account, nil
}

// Update saves all account fields
func (r *accountRepository) Update(ctx context.Context, account *models.Account) error {
	return wrap(r.db.WithContext(ctx).Save(account).Error)
}

// Delete permanently deletes an account
func (r *accountRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Account{}, id)
	if result.Error != nil {
		return wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lists all accounts ordered by ID
func (r *accountRepository) List(ctx context.Context) ([]*models.Account, error) {
	var accounts []*models.Account
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, wrap(err)
	}
	return accounts, nil
}

// ExistsByUsername checks if username exists
func (r *accountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Account{}).Where("username = ?", username).Count(&count).Error
	return count > 0, wrap(err)
}

// ExistsByEmail checks if email exists
func (r *accountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Account{}).Where("email = ?", email).Count(&count).Error
	return count > 0, wrap(err)
}

// RecordLogin stamps a successful login with a single conditional UPDATE
func (r *accountRepository) RecordLogin(ctx context.Context, id uint, verifiedHash, rehash string, at time.Time) (*models.Account, error) {
	updates := map[string]interface{}{
		"last_login": at,
		"updated_at": time.Now().UTC(),
	}
	if rehash != "" {
		updates["password_hash"] = rehash
	}

	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ? AND password_hash = ?", id, verifiedHash).
		Updates(updates)
	if result.Error != nil {
		return nil, wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// SetPassword replaces the hash and revokes outstanding tokens
func (r *accountRepository) SetPassword(ctx context.Context, id uint, hash string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"password_hash": hash,
		"token_version": gorm.Expr("token_version + 1"),
		"updated_at":    time.Now().UTC(),
	})
}

// BumpTokenVersion revokes outstanding tokens
func (r *accountRepository) BumpTokenVersion(ctx context.Context, id uint) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"token_version": gorm.Expr("token_version + 1"),
		"updated_at":    time.Now().UTC(),
	})
}

func (r *accountRepository) updateColumns(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// wrap maps GORM errors onto domain errors
func wrap(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrAlreadyExists
	default:
		return errors.Join(domain.ErrPersistence, err)
	}
}
