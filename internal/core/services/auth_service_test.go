package services

import (
	"context"
	"testing"

	"github.com/appfrabric/roilux/internal/adapters/persistence/models"
	"github.com/appfrabric/roilux/internal/adapters/persistence/repositories"
	"github.com/appfrabric/roilux/internal/core/domain"
	"github.com/appfrabric/roilux/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.auth.Login(ctx, &LoginInput{Username: "admin", Password: "roilux2024"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, resp.User.Role)
	assert.Equal(t, domain.PrimordialAccountID, resp.User.ID)
	require.NotNil(t, resp.User.LastLogin)
	assert.NotEmpty(t, resp.AccessToken)

	stored, err := env.storage.Accounts.GetByID(ctx, resp.User.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)
	assert.True(t, resp.User.LastLogin.Equal(*stored.LastLogin))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Login(ctx, &LoginInput{Username: "admin", Password: "wrong"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = env.auth.Login(ctx, &LoginInput{Username: "nobody", Password: "roilux2024"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// exact username match only
	_, err = env.auth.Login(ctx, &LoginInput{Username: "ADMIN", Password: "roilux2024"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	stored, err := env.storage.Accounts.GetByID(ctx, domain.PrimordialAccountID)
	require.NoError(t, err)
	assert.Nil(t, stored.LastLogin)
}

func TestLogin_UpgradesBcryptHash(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	legacy, err := bcrypt.GenerateFromPassword([]byte("processor123"), bcrypt.MinCost)
	require.NoError(t, err)
	env.processor.PasswordHash = string(legacy)
	require.NoError(t, env.storage.Accounts.Update(ctx, env.processor))

	_, err = env.auth.Login(ctx, &LoginInput{Username: "processor1", Password: "processor123"})
	require.NoError(t, err)

	stored, err := env.storage.Accounts.GetByID(ctx, env.processor.ID)
	require.NoError(t, err)
	assert.False(t, password.NeedsRehash(stored.PasswordHash))
	assert.True(t, password.Verify("processor123", stored.PasswordHash))
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.auth.Login(ctx, &LoginInput{Username: "processor1", Password: "processor123"})
	require.NoError(t, err)

	account, err := env.auth.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleProcessor, account.Role)

	_, err = env.auth.Authenticate(ctx, "garbage")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	t.Run("revoked by logout", func(t *testing.T) {
		require.NoError(t, env.auth.Logout(ctx, account))
		_, err := env.auth.Authenticate(ctx, resp.AccessToken)
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("deleted account", func(t *testing.T) {
		resp, err := env.auth.Login(ctx, &LoginInput{Username: "processor1", Password: "processor123"})
		require.NoError(t, err)
		require.NoError(t, env.auth.DeleteAccount(ctx, env.admin, env.processor.ID))

		_, err = env.auth.Authenticate(ctx, resp.AccessToken)
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestAuthenticate_UsesStoredRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.auth.Login(ctx, &LoginInput{Username: "processor1", Password: "processor123"})
	require.NoError(t, err)

	// role changes are picked up without a new token
	env.processor.Role = domain.RoleAdmin
	require.NoError(t, env.storage.Accounts.Update(ctx, env.processor))

	account, err := env.auth.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, account.Role)
}

func TestListAccounts(t *testing.T) {
	env := newTestEnv(t)

	list, err := env.auth.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "admin", list[0].Username)
	assert.Equal(t, "processor1", list[1].Username)
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	input := func() *RegisterInput {
		return &RegisterInput{Username: "clerk", Email: "clerk@roilux.com", Password: "clerkpass1"}
	}

	t.Run("processor forbidden", func(t *testing.T) {
		_, err := env.auth.Register(ctx, env.processor, input())
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("anonymous forbidden", func(t *testing.T) {
		_, err := env.auth.Register(ctx, nil, input())
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("invalid role", func(t *testing.T) {
		in := input()
		in.Role = "superuser"
		_, err := env.auth.Register(ctx, env.admin, in)
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "role", ve.Field)
	})

	t.Run("short password", func(t *testing.T) {
		in := input()
		in.Password = "short"
		_, err := env.auth.Register(ctx, env.admin, in)
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "password", ve.Field)
	})

	t.Run("defaults to processor", func(t *testing.T) {
		acc, err := env.auth.Register(ctx, env.admin, input())
		require.NoError(t, err)
		assert.Equal(t, domain.RoleProcessor, acc.Role)
		assert.Equal(t, uint(3), acc.ID)

		_, err = env.auth.Login(ctx, &LoginInput{Username: "clerk", Password: "clerkpass1"})
		require.NoError(t, err)
	})

	t.Run("duplicate username", func(t *testing.T) {
		in := input()
		in.Email = "other@roilux.com"
		_, err := env.auth.Register(ctx, env.admin, in)
		require.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		in := input()
		in.Username = "clerk2"
		_, err := env.auth.Register(ctx, env.admin, in)
		require.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("admin role honored", func(t *testing.T) {
		acc, err := env.auth.Register(ctx, env.admin, &RegisterInput{
			Username: "boss", Email: "boss@roilux.com", Password: "bosspass1", Role: domain.RoleAdmin,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, acc.Role)
	})
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.auth.ChangePassword(ctx, env.processor, &ChangePasswordInput{Username: "admin", NewPassword: "hijacked1"})
	require.ErrorIs(t, err, domain.ErrForbidden)

	err = env.auth.ChangePassword(ctx, env.admin, &ChangePasswordInput{Username: "ghost", NewPassword: "whatever1"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	old, err := env.auth.Login(ctx, &LoginInput{Username: "processor1", Password: "processor123"})
	require.NoError(t, err)

	require.NoError(t, env.auth.ChangePassword(ctx, env.admin, &ChangePasswordInput{Username: "processor1", NewPassword: "fresh-pass"}))

	_, err = env.auth.Login(ctx, &LoginInput{Username: "processor1", Password: "processor123"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = env.auth.Login(ctx, &LoginInput{Username: "processor1", Password: "fresh-pass"})
	require.NoError(t, err)

	_, err = env.auth.Authenticate(ctx, old.AccessToken)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDeleteAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.ErrorIs(t, env.auth.DeleteAccount(ctx, env.processor, env.admin.ID), domain.ErrForbidden)
	require.ErrorIs(t, env.auth.DeleteAccount(ctx, env.admin, domain.PrimordialAccountID), domain.ErrForbidden)
	require.ErrorIs(t, env.auth.DeleteAccount(ctx, env.admin, 99), domain.ErrNotFound)

	second, err := env.auth.Register(ctx, env.admin, &RegisterInput{
		Username: "boss", Email: "boss@roilux.com", Password: "bosspass1", Role: domain.RoleAdmin,
	})
	require.NoError(t, err)
	secondAccount, err := env.storage.Accounts.GetByID(ctx, second.ID)
	require.NoError(t, err)

	// an admin cannot delete itself, even a non-primordial one
	require.ErrorIs(t, env.auth.DeleteAccount(ctx, secondAccount, second.ID), domain.ErrForbidden)
	require.ErrorIs(t, env.auth.DeleteAccount(ctx, secondAccount, domain.PrimordialAccountID), domain.ErrForbidden)

	require.NoError(t, env.auth.DeleteAccount(ctx, env.admin, second.ID))
	_, err = env.auth.GetByID(ctx, second.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// interleavedAccounts runs beforeReturn once, after a username lookup has
// read the account but before the caller sees it
type interleavedAccounts struct {
	repositories.AccountRepository
	beforeReturn func()
}

func (r *interleavedAccounts) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	account, err := r.AccountRepository.GetByUsername(ctx, username)
	if hook := r.beforeReturn; hook != nil {
		r.beforeReturn = nil
		hook()
	}
	return account, err
}

func TestLogin_PasswordResetDuringLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	before, err := env.auth.Login(ctx, &LoginInput{Username: "processor1", Password: "processor123"})
	require.NoError(t, err)

	accounts := &interleavedAccounts{AccountRepository: env.storage.Accounts}
	auth := NewAuthService(accounts, env.auth.cfg, env.auth.log)
	accounts.beforeReturn = func() {
		require.NoError(t, env.auth.ChangePassword(ctx, env.admin, &ChangePasswordInput{
			Username: "processor1", NewPassword: "brand-new-pass",
		}))
	}

	// the old password was valid when read but is gone by the time it is recorded
	_, err = auth.Login(ctx, &LoginInput{Username: "processor1", Password: "processor123"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	stored, err := env.storage.Accounts.GetByID(ctx, env.processor.ID)
	require.NoError(t, err)
	assert.True(t, password.Verify("brand-new-pass", stored.PasswordHash))
	assert.False(t, password.Verify("processor123", stored.PasswordHash))
	assert.Equal(t, env.processor.TokenVersion+1, stored.TokenVersion)

	_, err = env.auth.Authenticate(ctx, before.AccessToken)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogout_KeepsConcurrentPasswordChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// acting is a stale copy taken before the reset
	acting := *env.processor
	require.NoError(t, env.auth.ChangePassword(ctx, env.admin, &ChangePasswordInput{
		Username: "processor1", NewPassword: "brand-new-pass",
	}))
	require.NoError(t, env.auth.Logout(ctx, &acting))

	stored, err := env.storage.Accounts.GetByID(ctx, env.processor.ID)
	require.NoError(t, err)
	assert.True(t, password.Verify("brand-new-pass", stored.PasswordHash))
	assert.Equal(t, env.processor.TokenVersion+2, stored.TokenVersion)
}
