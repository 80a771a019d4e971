package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/appfrabric/roilux/internal/adapters/persistence/models"
	"github.com/appfrabric/roilux/internal/core/domain"
	"github.com/appfrabric/roilux/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AccessTokenCookie carries the access token for browser clients
const AccessTokenCookie = "access_token"

const accountKey = "account"

// Authenticator resolves an access token to the current account
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Account, error)
}

// AuthMiddleware creates authentication middleware
func AuthMiddleware(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Cookie first, then Authorization header
		accessToken := ExtractToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 2. Validate token against the stored account
		account, err := auth.Authenticate(c.Context(), accessToken)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return response.Unauthorized(c, "Invalid or expired access token")
			}
			return err
		}

		// 3. Set account in context
		c.Locals(accountKey, account)

		return c.Next()
	}
}

// ExtractToken returns the access token from the cookie or bearer header
func ExtractToken(c *fiber.Ctx) string {
	if token := c.Cookies(AccessTokenCookie); token != "" {
		return token
	}
	authHeader := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// CurrentAccount returns the account set by AuthMiddleware, or nil
func CurrentAccount(c *fiber.Ctx) *models.Account {
	account, _ := c.Locals(accountKey).(*models.Account)
	return account
}

// RoleMiddleware creates role-based authorization middleware.
// The role comes from the stored account, never from the token.
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		account := CurrentAccount(c)
		if account == nil {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if account.Role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// StaffOnly middleware allows admins and processors
func StaffOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin, domain.RoleProcessor)
}
