package handlers

import (
	"errors"

	"github.com/appfrabric/roilux/internal/core/domain"
	"github.com/appfrabric/roilux/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// respondError maps domain errors onto HTTP responses.  notFound is the
// detail used for domain.ErrNotFound.  Anything unrecognized is handed to
// the app's error handler, which logs it and answers 500.
func respondError(c *fiber.Ctx, err error, notFound string) error {
	switch {
	case domain.IsValidationError(err):
		return response.ValidationFailed(c, err)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid username or password")
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, "Authentication required")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to perform this action")
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, notFound)
	case errors.Is(err, domain.ErrAlreadyExists):
		return response.Conflict(c, "Username or email already exists")
	default:
		return err
	}
}
