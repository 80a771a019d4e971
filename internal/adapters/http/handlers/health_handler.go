package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthChecker reports whether storage is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	storage HealthChecker
	server  string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storage HealthChecker, server string) *HealthHandler {
	return &HealthHandler{storage: storage, server: server}
}

// Health is the public liveness probe
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// InternalHealth adds the server name and a storage check
// @Summary Internal health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /_health [get]
func (h *HealthHandler) InternalHealth(c *fiber.Ctx) error {
	status, storage := "healthy", "healthy"
	code := fiber.StatusOK
	if err := h.storage.HealthCheck(c.Context()); err != nil {
		status, storage = "degraded", "unhealthy"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    status,
		"server":    h.server,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": fiber.Map{
			"api":     "healthy",
			"storage": storage,
		},
	})
}
