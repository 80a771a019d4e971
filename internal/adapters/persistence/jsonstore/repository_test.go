package jsonstore

import (
	"context"
	"testing"
	"time"

	"github.com/appfrabric/roilux/internal/adapters/persistence/models"
	"github.com/appfrabric/roilux/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(openTestStore(t))

	admin := &models.Account{ID: domain.PrimordialAccountID, Username: "admin", Email: "admin@roilux.com", Role: domain.RoleAdmin}
	require.NoError(t, repo.Create(ctx, admin))

	proc := &models.Account{Username: "processor1", Email: "p1@roilux.com", Role: domain.RoleProcessor}
	require.NoError(t, repo.Create(ctx, proc))
	assert.Equal(t, uint(2), proc.ID)

	t.Run("duplicate username", func(t *testing.T) {
		err := repo.Create(ctx, &models.Account{Username: "admin", Email: "other@roilux.com"})
		require.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, &models.Account{Username: "other", Email: "p1@roilux.com"})
		require.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("username is case sensitive", func(t *testing.T) {
		_, err := repo.GetByUsername(ctx, "Admin")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("getters return copies", func(t *testing.T) {
		got, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		got.Username = "mutated"

		again, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "admin", again.Username)
	})

	t.Run("update", func(t *testing.T) {
		got, err := repo.GetByUsername(ctx, "processor1")
		require.NoError(t, err)
		now := time.Now().UTC()
		got.LastLogin = &now
		got.TokenVersion++
		require.NoError(t, repo.Update(ctx, got))

		again, err := repo.GetByID(ctx, got.ID)
		require.NoError(t, err)
		require.NotNil(t, again.LastLogin)
		assert.True(t, now.Equal(*again.LastLogin))
		assert.Equal(t, 1, again.TokenVersion)
	})

	t.Run("record login", func(t *testing.T) {
		at := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
		_, err := repo.RecordLogin(ctx, proc.ID, "stale-hash", "", at)
		require.ErrorIs(t, err, domain.ErrNotFound)

		got, err := repo.RecordLogin(ctx, proc.ID, proc.PasswordHash, "upgraded", at)
		require.NoError(t, err)
		assert.Equal(t, "upgraded", got.PasswordHash)
		require.NotNil(t, got.LastLogin)
		assert.True(t, at.Equal(*got.LastLogin))
	})

	t.Run("set password and bump version", func(t *testing.T) {
		before, err := repo.GetByID(ctx, proc.ID)
		require.NoError(t, err)

		require.NoError(t, repo.SetPassword(ctx, proc.ID, "replaced"))
		require.NoError(t, repo.BumpTokenVersion(ctx, proc.ID))

		after, err := repo.GetByID(ctx, proc.ID)
		require.NoError(t, err)
		assert.Equal(t, "replaced", after.PasswordHash)
		assert.Equal(t, before.TokenVersion+2, after.TokenVersion)

		require.ErrorIs(t, repo.SetPassword(ctx, 99, "x"), domain.ErrNotFound)
		require.ErrorIs(t, repo.BumpTokenVersion(ctx, 99), domain.ErrNotFound)
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := repo.ExistsByUsername(ctx, "processor1")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.ExistsByEmail(ctx, "nobody@roilux.com")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, proc.ID))
		require.ErrorIs(t, repo.Delete(ctx, proc.ID), domain.ErrNotFound)

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "admin", list[0].Username)
	})
}

func TestRequestRepository_ListOrderAndPaging(t *testing.T) {
	ctx := context.Background()
	repo := NewContactRepository(openTestStore(t))

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		m := &models.ContactMessage{Name: "n"}
		// 3rd and 4th share a timestamp
		m.CreatedAt = base.Add(time.Duration(min(i, 3)) * time.Minute)
		require.NoError(t, repo.Create(ctx, m))
	}

	page, total, err := repo.List(ctx, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	ids := []uint{page[0].ID, page[1].ID, page[2].ID}
	assert.Equal(t, []uint{5, 4, 3}, ids)

	page, _, err = repo.List(ctx, 3, 3)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, uint(2), page[0].ID)
	assert.Equal(t, uint(1), page[1].ID)

	page, _, err = repo.List(ctx, 10, 3)
	require.NoError(t, err)
	assert.Empty(t, page)

	page, _, err = repo.List(ctx, -20, 3)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestRequestRepository_SetStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewTourRepository(openTestStore(t))

	tr := &models.TourRequest{Name: "t"}
	tr.Status = domain.StatusPending
	require.NoError(t, repo.Create(ctx, tr))

	require.NoError(t, repo.SetStatus(ctx, tr.ID, domain.StatusArchived))
	require.NoError(t, repo.SetStatus(ctx, tr.ID, domain.StatusArchived))

	got, err := repo.GetByID(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusArchived, got.Status)

	require.ErrorIs(t, repo.SetStatus(ctx, 404, domain.StatusArchived), domain.ErrNotFound)
}
