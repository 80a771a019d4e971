package handlers

import (
	"github.com/appfrabric/roilux/internal/core/services"
	"github.com/appfrabric/roilux/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the public product catalog
type CatalogHandler struct {
	catalog *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Categories lists product categories
// @Summary List product categories
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/products [get]
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": h.catalog.Categories()})
}

// Products lists the products of one category
// @Summary List products of a category
// @Tags Catalog
// @Produce json
// @Param category path string true "Category ID"
// @Success 200 {object} services.CategoryProducts
// @Failure 404 {object} response.ErrorResponse
// @Router /api/products/{category} [get]
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	products, err := h.catalog.Products(c.Params("category"))
	if err != nil {
		return respondError(c, err, "Category not found")
	}
	return c.JSON(products)
}

// CompanyInfo returns the company profile
// @Summary Company information
// @Tags Catalog
// @Produce json
// @Success 200 {object} services.CompanyInfo
// @Router /api/company-info [get]
func (h *CatalogHandler) CompanyInfo(c *fiber.Ctx) error {
	return c.JSON(h.catalog.CompanyInfo())
}

// SampleRequest describes how to request samples
// @Summary Sample request process
// @Tags Catalog
// @Produce json
// @Success 200 {object} services.SampleProcess
// @Router /api/sample-request [get]
func (h *CatalogHandler) SampleRequest(c *fiber.Ctx) error {
	return c.JSON(h.catalog.SampleProcess())
}

// MediaHandler handles catalog image and video uploads
type MediaHandler struct {
	media *services.MediaService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(media *services.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// UploadImage stores an image (admin only)
// @Summary Upload image
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/upload/image [post]
func (h *MediaHandler) UploadImage(c *fiber.Ctx) error {
	return h.upload(c, services.MediaImage)
}

// UploadVideo stores a video (admin only)
// @Summary Upload video
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Video"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/upload/video [post]
func (h *MediaHandler) UploadVideo(c *fiber.Ctx) error {
	return h.upload(c, services.MediaVideo)
}

func (h *MediaHandler) upload(c *fiber.Ctx, kind services.MediaKind) error {
	header, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required")
	}
	src, err := header.Open()
	if err != nil {
		return response.BadRequest(c, "File is unreadable")
	}
	defer src.Close()

	file, err := h.media.Save(c.Context(), kind, src)
	if err != nil {
		return respondError(c, err, "File not found")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"filename": file.Filename,
		"url":      file.URL,
	})
}

// Image serves an uploaded image
// @Summary Get image
// @Tags Media
// @Param filename path string true "File name"
// @Success 200 {file} binary
// @Failure 404 {object} response.ErrorResponse
// @Router /api/images/{filename} [get]
func (h *MediaHandler) Image(c *fiber.Ctx) error {
	return h.serve(c, services.MediaImage, "Image not found")
}

// Video serves an uploaded video
// @Summary Get video
// @Tags Media
// @Param filename path string true "File name"
// @Success 200 {file} binary
// @Failure 404 {object} response.ErrorResponse
// @Router /api/videos/{filename} [get]
func (h *MediaHandler) Video(c *fiber.Ctx) error {
	return h.serve(c, services.MediaVideo, "Video not found")
}

func (h *MediaHandler) serve(c *fiber.Ctx, kind services.MediaKind, notFound string) error {
	path, err := h.media.Path(kind, c.Params("filename"))
	if err != nil {
		return respondError(c, err, notFound)
	}
	return c.SendFile(path)
}
