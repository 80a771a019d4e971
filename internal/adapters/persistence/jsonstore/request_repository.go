package jsonstore

import (
	"context"
	"sort"
	"time"

	"github.com/appfrabric/roilux/internal/adapters/persistence/models"
	"github.com/appfrabric/roilux/internal/adapters/persistence/repositories"
	"github.com/appfrabric/roilux/internal/core/domain"
)

// collection selects one request slice and its sequence inside a document
type collection[T any] struct {
	records  func(doc *Document) *[]*T
	sequence func(doc *Document) *uint
}

type requestRepository[T any, PT models.Request[T]] struct {
	store *Store
	coll  collection[T]
}

// NewContactRepository creates the contact message repository over the document store
func NewContactRepository(store *Store) repositories.ContactRepository {
	return &requestRepository[models.ContactMessage, *models.ContactMessage]{
		store: store,
		coll: collection[models.ContactMessage]{
			records:  func(doc *Document) *[]*models.ContactMessage { return &doc.ContactMessages },
			sequence: func(doc *Document) *uint { return &doc.Sequences.ContactMessages },
		},
	}
}

// NewTourRepository creates the virtual tour repository over the document store
func NewTourRepository(store *Store) repositories.TourRepository {
	return &requestRepository[models.TourRequest, *models.TourRequest]{
		store: store,
		coll: collection[models.TourRequest]{
			records:  func(doc *Document) *[]*models.TourRequest { return &doc.VirtualTours },
			sequence: func(doc *Document) *uint { return &doc.Sequences.VirtualTours },
		},
	}
}

func (r *requestRepository[T, PT]) Create(ctx context.Context, record *T) error {
	return r.store.Update(func(doc *Document) error {
		seq := r.coll.sequence(doc)
		*seq++

		rec := *record
		meta := PT(&rec).Meta()
		meta.ID = *seq
		now := time.Now().UTC()
		if meta.CreatedAt.IsZero() {
			meta.CreatedAt = now
		}
		meta.UpdatedAt = now

		recs := r.coll.records(doc)
		*recs = append(*recs, &rec)

		*record = rec
		return nil
	})
}

func (r *requestRepository[T, PT]) GetByID(ctx context.Context, id uint) (*T, error) {
	var out *T
	err := r.store.View(func(doc *Document) error {
		for _, rec := range *r.coll.records(doc) {
			if PT(rec).Meta().ID == id {
				cp := *rec
				out = &cp
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return out, err
}

// List returns one page, newest created first with ties broken by the higher id
func (r *requestRepository[T, PT]) List(ctx context.Context, offset, limit int) ([]*T, int64, error) {
	var (
		page  []*T
		total int64
	)
	err := r.store.View(func(doc *Document) error {
		all := cloneRecords(*r.coll.records(doc))
		total = int64(len(all))

		sort.SliceStable(all, func(i, j int) bool {
			a, b := PT(all[i]).Meta(), PT(all[j]).Meta()
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		})

		if offset < 0 || offset >= len(all) {
			page = []*T{}
			return nil
		}
		end := min(offset+limit, len(all))
		page = all[offset:end]
		return nil
	})
	return page, total, err
}

// SetStatus is a no-op when the record already has the status
func (r *requestRepository[T, PT]) SetStatus(ctx context.Context, id uint, status domain.RequestStatus) error {
	return r.store.Update(func(doc *Document) error {
		for _, rec := range *r.coll.records(doc) {
			meta := PT(rec).Meta()
			if meta.ID != id {
				continue
			}
			if meta.Status == status {
				return errNoChange
			}
			meta.Status = status
			meta.UpdatedAt = time.Now().UTC()
			return nil
		}
		return domain.ErrNotFound
	})
}

func (r *requestRepository[T, PT]) Delete(ctx context.Context, id uint) error {
	return r.store.Update(func(doc *Document) error {
		recs := r.coll.records(doc)
		for i, rec := range *recs {
			if PT(rec).Meta().ID == id {
				*recs = append((*recs)[:i], (*recs)[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}
