package services

import (
	"context"
	"errors"
	"time"

	"github.com/appfrabric/roilux/internal/adapters/persistence/models"
	"github.com/appfrabric/roilux/internal/adapters/persistence/repositories"
	"github.com/appfrabric/roilux/internal/config"
	"github.com/appfrabric/roilux/internal/core/domain"
	"github.com/appfrabric/roilux/internal/pkg/jwt"
	"github.com/appfrabric/roilux/internal/pkg/metrics"
	"github.com/appfrabric/roilux/internal/pkg/password"

	"go.uber.org/zap"
)

// AuthService handles authentication and account management
type AuthService struct {
	accounts repositories.AccountRepository
	cfg      *config.Config
	log      *zap.SugaredLogger
}

// NewAuthService creates a new auth service
func NewAuthService(accounts repositories.AccountRepository, cfg *config.Config, log *zap.SugaredLogger) *AuthService {
	return &AuthService{
		accounts: accounts,
		cfg:      cfg,
		log:      log,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterInput represents registration input
type RegisterInput struct {
	Username string      `json:"username" validate:"required,min=3,max=50"`
	Email    string      `json:"email" validate:"required,mailbox,max=255"`
	Password string      `json:"password" validate:"required,min=8"`
	Role     domain.Role `json:"role" validate:"omitempty,oneof=admin processor"`
}

// ChangePasswordInput represents an admin password reset
type ChangePasswordInput struct {
	Username    string `json:"username" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User        *models.AccountResponse `json:"user"`
	AccessToken string                  `json:"access_token"`
}

// Login authenticates an account.  Unknown usernames and wrong passwords
// both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find account by exact username
	account, err := s.accounts.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Debugw("login failed: unknown user", "username", input.Username)
			metrics.LoginsTotal.WithLabelValues("invalid").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	// 2. Verify password
	if !password.Verify(input.Password, account.PasswordHash) {
		s.log.Debugw("login failed: password mismatch", "username", input.Username)
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Upgrade legacy hashes
	var rehash string
	if password.NeedsRehash(account.PasswordHash) {
		if hash, err := password.Hash(input.Password); err == nil {
			rehash = hash
		}
	}

	// 4. Record last login; fails if the password changed since step 2
	account, err = s.accounts.RecordLogin(ctx, account.ID, account.PasswordHash, rehash, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Debugw("login failed: credentials changed during login", "username", input.Username)
			metrics.LoginsTotal.WithLabelValues("invalid").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	// 5. Issue token
	token, err := s.issueToken(account)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	s.log.Infow("✅ User logged in", "username", account.Username, "role", account.Role)

	return &AuthResponse{
		User:        account.ToResponse(),
		AccessToken: token,
	}, nil
}

// Authenticate resolves a bearer token to its current account.  Tokens
// issued before the account's last logout or password change are rejected.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Account, error) {
	claims, err := jwt.ValidateAccessToken(token, s.cfg.JWT.Secret)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	account, err := s.accounts.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if account.TokenVersion != claims.TokenVersion {
		return nil, domain.ErrUnauthorized
	}
	return account, nil
}

// Logout revokes every token issued to the account
func (s *AuthService) Logout(ctx context.Context, acting *models.Account) error {
	if acting == nil {
		return domain.ErrUnauthorized
	}
	if err := s.accounts.BumpTokenVersion(ctx, acting.ID); err != nil {
		return err
	}

	s.log.Infow("User logged out", "username", acting.Username)
	return nil
}

// GetByID returns an account without its credential
func (s *AuthService) GetByID(ctx context.Context, id uint) (*models.AccountResponse, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return account.ToResponse(), nil
}

// ListAccounts returns the account directory
func (s *AuthService) ListAccounts(ctx context.Context) ([]*models.AccountSummary, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*models.AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.ToSummary())
	}
	return out, nil
}

// Register creates an account.  Only admins may register; an empty role
// defaults to processor.
func (s *AuthService) Register(ctx context.Context, acting *models.Account, input *RegisterInput) (*models.AccountResponse, error) {
	if acting == nil || !acting.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	// 1. Validate input
	if err := validateInput(input); err != nil {
		return nil, err
	}
	role := input.Role
	if role == "" {
		role = domain.RoleProcessor
	}

	// 2. Check uniqueness
	exists, err := s.accounts.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyExists
	}

	exists, err = s.accounts.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyExists
	}

	// 3. Hash password
	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 4. Create account
	account := &models.Account{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.log.Infow("✅ User registered", "username", account.Username, "role", account.Role, "by", acting.Username)
	return account.ToResponse(), nil
}

// ChangePassword resets another account's password (admin only) and
// revokes that account's tokens
func (s *AuthService) ChangePassword(ctx context.Context, acting *models.Account, input *ChangePasswordInput) error {
	if acting == nil || !acting.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := validateInput(input); err != nil {
		return err
	}

	account, err := s.accounts.GetByUsername(ctx, input.Username)
	if err != nil {
		return err
	}

	hash, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	if err := s.accounts.SetPassword(ctx, account.ID, hash); err != nil {
		return err
	}

	s.log.Infow("🔑 Password changed", "username", account.Username, "by", acting.Username)
	return nil
}

// DeleteAccount removes an account.  The primordial admin and the
// caller's own account cannot be deleted.
func (s *AuthService) DeleteAccount(ctx context.Context, acting *models.Account, id uint) error {
	if acting == nil || !acting.IsAdmin() {
		return domain.ErrForbidden
	}
	if id == domain.PrimordialAccountID || id == acting.ID {
		return domain.ErrForbidden
	}

	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Infow("User deleted", "id", id, "by", acting.Username)
	return nil
}

func (s *AuthService) issueToken(account *models.Account) (string, error) {
	return jwt.GenerateAccessToken(
		account.ID,
		account.Username,
		string(account.Role),
		account.TokenVersion,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
}
