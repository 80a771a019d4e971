package handlers

import (
	"strings"
	"time"

	"github.com/appfrabric/roilux/internal/adapters/http/middleware"
	"github.com/appfrabric/roilux/internal/config"
	"github.com/appfrabric/roilux/internal/core/services"
	"github.com/appfrabric/roilux/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// Login handles account login
// @Summary Login
// @Description Authenticate with username and password; returns the account and an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)

	result, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		return respondError(c, err, "User not found")
	}

	h.setAuthCookie(c, result.AccessToken)

	return c.JSON(fiber.Map{
		"success":      true,
		"message":      "Login successful",
		"user":         result.User,
		"access_token": result.AccessToken,
	})
}

// Logout revokes the caller's tokens
// @Summary Logout
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.Context(), middleware.CurrentAccount(c)); err != nil {
		return respondError(c, err, "User not found")
	}

	h.clearAuthCookie(c)
	return response.Success(c, "Logged out successfully", nil)
}

// Me returns the current account
// @Summary Get current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	return response.Success(c, "", account.ToResponse())
}

// ListUsers returns the account directory
// @Summary List accounts
// @Tags Auth
// @Produce json
// @Success 200 {array} models.AccountSummary
// @Router /api/auth/users [get]
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	accounts, err := h.authService.ListAccounts(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(accounts)
}

// Register creates an account (admin only)
// @Summary Register account
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RegisterInput true "Account data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	account, err := h.authService.Register(c.Context(), middleware.CurrentAccount(c), &req)
	if err != nil {
		return respondError(c, err, "User not found")
	}

	return response.Created(c, "User registered successfully", account)
}

// ChangePassword resets an account's password (admin only)
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ChangePasswordInput true "Target and new password"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req services.ChangePasswordInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)

	if err := h.authService.ChangePassword(c.Context(), middleware.CurrentAccount(c), &req); err != nil {
		return respondError(c, err, "User not found")
	}

	return response.Success(c, "Password changed successfully", nil)
}

// DeleteUser deletes an account (admin only; not the primordial admin, not self)
// @Summary Delete account
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/auth/users/{id} [delete]
func (h *AuthHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.authService.DeleteAccount(c.Context(), middleware.CurrentAccount(c), uint(id)); err != nil {
		return respondError(c, err, "User not found")
	}

	return response.Success(c, "User deleted successfully", nil)
}

func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, accessToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.AccessTokenMins * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

func (h *AuthHandler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
