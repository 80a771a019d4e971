package handlers

import (
	"github.com/appfrabric/roilux/internal/adapters/http/middleware"
	"github.com/appfrabric/roilux/internal/adapters/persistence/models"
	"github.com/appfrabric/roilux/internal/core/services"
	"github.com/appfrabric/roilux/internal/pkg/pagination"
	"github.com/appfrabric/roilux/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// IntakeHandler handles public form submissions
type IntakeHandler struct {
	intake *services.IntakeService
}

// NewIntakeHandler creates a new intake handler
func NewIntakeHandler(intake *services.IntakeService) *IntakeHandler {
	return &IntakeHandler{intake: intake}
}

// SubmitContact stores a contact form message
// @Summary Submit contact message
// @Tags Requests
// @Accept json
// @Produce json
// @Param body body services.ContactInput true "Contact message"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/contact [post]
func (h *IntakeHandler) SubmitContact(c *fiber.Ctx) error {
	var req services.ContactInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	msg, err := h.intake.SubmitContact(c.Context(), &req)
	if err != nil {
		return respondError(c, err, "Message not found")
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Message sent successfully!",
		"message_id": msg.ID,
		"data":       msg,
	})
}

// SubmitTour stores a virtual tour booking
// @Summary Request virtual tour
// @Tags Requests
// @Accept json
// @Produce json
// @Param body body services.TourInput true "Tour request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/virtual-tour [post]
func (h *IntakeHandler) SubmitTour(c *fiber.Ctx) error {
	var req services.TourInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tour, err := h.intake.SubmitTour(c.Context(), &req)
	if err != nil {
		return respondError(c, err, "Tour not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Virtual tour request submitted successfully!",
		"tour_id": tour.ID,
		"data":    tour,
	})
}

// ReviewHandler serves the staff endpoints of one request collection
type ReviewHandler[T any] struct {
	review *services.ReviewService[T]
	noun   string
}

// NewContactReviewHandler creates the handler for /api/contact-messages
func NewContactReviewHandler(review *services.ContactReviewService) *ReviewHandler[models.ContactMessage] {
	return &ReviewHandler[models.ContactMessage]{review: review, noun: "Message"}
}

// NewTourReviewHandler creates the handler for /api/virtual-tours
func NewTourReviewHandler(review *services.TourReviewService) *ReviewHandler[models.TourRequest] {
	return &ReviewHandler[models.TourRequest]{review: review, noun: "Tour"}
}

// List returns a page of requests, newest first
// @Summary List requests
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} map[string]interface{}
// @Router /api/contact-messages [get]
// @Router /api/virtual-tours [get]
func (h *ReviewHandler[T]) List(c *fiber.Ctx) error {
	page, err := h.review.List(c.Context(), middleware.CurrentAccount(c), pagination.GetParams(c))
	if err != nil {
		return respondError(c, err, h.noun+" not found")
	}
	return c.JSON(page)
}

// Archive marks a request archived
// @Summary Archive request
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /api/contact-messages/{id}/archive [patch]
// @Router /api/virtual-tours/{id}/archive [patch]
func (h *ReviewHandler[T]) Archive(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.NotFound(c, h.noun+" not found")
	}

	record, err := h.review.Archive(c.Context(), middleware.CurrentAccount(c), uint(id))
	if err != nil {
		return respondError(c, err, h.noun+" not found")
	}
	return response.Success(c, h.noun+" archived successfully", record)
}

// Delete permanently removes a request (admin only)
// @Summary Delete request
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/contact-messages/{id} [delete]
// @Router /api/virtual-tours/{id} [delete]
func (h *ReviewHandler[T]) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.NotFound(c, h.noun+" not found")
	}

	if err := h.review.Delete(c.Context(), middleware.CurrentAccount(c), uint(id)); err != nil {
		return respondError(c, err, h.noun+" not found")
	}
	return response.Success(c, h.noun+" deleted successfully", nil)
}
