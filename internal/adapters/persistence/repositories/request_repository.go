package repositories

import (
	"context"
	"time"

	"github.com/appfrabric/roilux/internal/adapters/persistence/models"
	"github.com/appfrabric/roilux/internal/core/domain"

	"gorm.io/gorm"
)

// requestRepository implements RequestRepository on GORM.
// MySQL AUTO_INCREMENT keeps identifiers monotonic across deletions.
type requestRepository[T any] struct {
	db *gorm.DB
}

// NewContactRepository creates a contact message repository
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &requestRepository[models.ContactMessage]{db: db}
}

// NewTourRepository creates a virtual tour repository
func NewTourRepository(db *gorm.DB) TourRepository {
	return &requestRepository[models.TourRequest]{db: db}
}

// Create inserts a new request
func (r *requestRepository[T]) Create(ctx context.Context, record *T) error {
	return wrap(r.db.WithContext(ctx).Create(record).Error)
}

// GetByID gets a request by ID
func (r *requestRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	record := new(T)
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(record).Error; err != nil {
		return nil, wrap(err)
	}
	return record, nil
}

// List lists requests newest first with pagination
func (r *requestRepository[T]) List(ctx context.Context, offset, limit int) ([]*T, int64, error) {
	var records []*T
	var total int64

	if err := r.db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, wrap(err)
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, wrap(err)
	}

	return records, total, nil
}

// SetStatus updates the review status of a request.
// Setting the status a request already has is a no-op.
func (r *requestRepository[T]) SetStatus(ctx context.Context, id uint, status domain.RequestStatus) error {
	result := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ? AND status <> ?", id, status).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete permanently deletes a request
func (r *requestRepository[T]) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
