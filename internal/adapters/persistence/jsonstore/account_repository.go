package jsonstore

import (
	"context"
	"time"

	"github.com/appfrabric/roilux/internal/adapters/persistence/models"
	"github.com/appfrabric/roilux/internal/adapters/persistence/repositories"
	"github.com/appfrabric/roilux/internal/core/domain"
)

type accountRepository struct {
	store *Store
}

// NewAccountRepository creates an account repository over the document store
func NewAccountRepository(store *Store) repositories.AccountRepository {
	return &accountRepository{store: store}
}

// Create inserts the account.  A zero ID takes the next sequence value; a
// preset ID is kept (used when seeding the primordial admin).
func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	return r.store.Update(func(doc *Document) error {
		for _, a := range doc.Accounts {
			if a.Username == account.Username || a.Email == account.Email {
				return domain.ErrAlreadyExists
			}
			if account.ID != 0 && a.ID == account.ID {
				return domain.ErrAlreadyExists
			}
		}

		rec := *account
		if rec.ID == 0 {
			doc.Sequences.Accounts++
			rec.ID = doc.Sequences.Accounts
		} else {
			doc.Sequences.Accounts = max(doc.Sequences.Accounts, rec.ID)
		}
		now := time.Now().UTC()
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		rec.UpdatedAt = now
		doc.Accounts = append(doc.Accounts, &rec)

		*account = rec
		return nil
	})
}

func (r *accountRepository) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	return r.find(func(a *models.Account) bool { return a.ID == id })
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.find(func(a *models.Account) bool { return a.Username == username })
}

func (r *accountRepository) Update(ctx context.Context, account *models.Account) error {
	return r.store.Update(func(doc *Document) error {
		idx := -1
		for i, a := range doc.Accounts {
			if a.ID == account.ID {
				idx = i
				continue
			}
			if a.Username == account.Username || a.Email == account.Email {
				return domain.ErrAlreadyExists
			}
		}
		if idx < 0 {
			return domain.ErrNotFound
		}

		rec := *account
		rec.CreatedAt = doc.Accounts[idx].CreatedAt
		rec.UpdatedAt = time.Now().UTC()
		doc.Accounts[idx] = &rec

		*account = rec
		return nil
	})
}

func (r *accountRepository) Delete(ctx context.Context, id uint) error {
	return r.store.Update(func(doc *Document) error {
		for i, a := range doc.Accounts {
			if a.ID == id {
				doc.Accounts = append(doc.Accounts[:i], doc.Accounts[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *accountRepository) RecordLogin(ctx context.Context, id uint, verifiedHash, rehash string, at time.Time) (*models.Account, error) {
	var out *models.Account
	err := r.mutate(id, func(a *models.Account) error {
		if a.PasswordHash != verifiedHash {
			return domain.ErrNotFound
		}
		if rehash != "" {
			a.PasswordHash = rehash
		}
		a.LastLogin = &at
		cp := *a
		out = &cp
		return nil
	})
	return out, err
}

func (r *accountRepository) SetPassword(ctx context.Context, id uint, hash string) error {
	return r.mutate(id, func(a *models.Account) error {
		a.PasswordHash = hash
		a.TokenVersion++
		return nil
	})
}

func (r *accountRepository) BumpTokenVersion(ctx context.Context, id uint) error {
	return r.mutate(id, func(a *models.Account) error {
		a.TokenVersion++
		return nil
	})
}

// mutate applies fn to the stored account inside one store update, so the
// read and the write see the same document
func (r *accountRepository) mutate(id uint, fn func(a *models.Account) error) error {
	return r.store.Update(func(doc *Document) error {
		for _, a := range doc.Accounts {
			if a.ID != id {
				continue
			}
			if err := fn(a); err != nil {
				return err
			}
			a.UpdatedAt = time.Now().UTC()
			return nil
		}
		return domain.ErrNotFound
	})
}

func (r *accountRepository) List(ctx context.Context) ([]*models.Account, error) {
	var out []*models.Account
	err := r.store.View(func(doc *Document) error {
		out = cloneRecords(doc.Accounts)
		return nil
	})
	return out, err
}

func (r *accountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return exists(err)
}

func (r *accountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.find(func(a *models.Account) bool { return a.Email == email })
	return exists(err)
}

func (r *accountRepository) find(match func(*models.Account) bool) (*models.Account, error) {
	var out *models.Account
	err := r.store.View(func(doc *Document) error {
		for _, a := range doc.Accounts {
			if match(a) {
				cp := *a
				out = &cp
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return out, err
}

func exists(err error) (bool, error) {
	switch err {
	case nil:
		return true, nil
	case domain.ErrNotFound:
		return false, nil
	default:
		return false, err
	}
}
