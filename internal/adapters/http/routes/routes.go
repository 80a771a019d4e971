package routes

import (
	"github.com/appfrabric/roilux/internal/adapters/http/handlers"
	"github.com/appfrabric/roilux/internal/adapters/http/middleware"
	"github.com/appfrabric/roilux/internal/config"
	"github.com/appfrabric/roilux/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// ServerName identifies the API process in /_health
const ServerName = "roilux-api"

// Setup configures all routes for the application
func Setup(app *fiber.App, storage *config.Storage, cfg *config.Config, log *zap.SugaredLogger) error {
	// Initialize services
	authService := services.NewAuthService(storage.Accounts, cfg, log)
	intakeService := services.NewIntakeService(storage.Contacts, storage.Tours, log)
	contactReview := services.NewContactReviewService(storage.Contacts, log)
	tourReview := services.NewTourReviewService(storage.Tours, log)
	catalogService := services.NewCatalogService()
	mediaService, err := services.NewMediaService(cfg.Media.Dir, log)
	if err != nil {
		return err
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(storage, ServerName)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	intakeHandler := handlers.NewIntakeHandler(intakeService)
	contactHandler := handlers.NewContactReviewHandler(contactReview)
	tourHandler := handlers.NewTourReviewHandler(tourReview)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	mediaHandler := handlers.NewMediaHandler(mediaService)

	// Health check & metrics
	app.Get("/health", healthHandler.Health)
	app.Get("/_health", healthHandler.InternalHealth)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	requireAuth := middleware.AuthMiddleware(authService)

	// Auth routes
	authRoutes := api.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, requireAuth)

	// Public submissions
	api.Post("/contact", intakeHandler.SubmitContact)
	api.Post("/virtual-tour", intakeHandler.SubmitTour)

	// Staff review
	contactRoutes := api.Group("/contact-messages", requireAuth, middleware.StaffOnly(), middleware.NoCacheHeaders())
	setupReviewRoutes(contactRoutes, contactHandler)

	tourRoutes := api.Group("/virtual-tours", requireAuth, middleware.StaffOnly(), middleware.NoCacheHeaders())
	setupReviewRoutes(tourRoutes, tourHandler)

	// Catalog
	api.Get("/products", catalogHandler.Categories)
	api.Get("/products/:category", catalogHandler.Products)
	api.Get("/company-info", catalogHandler.CompanyInfo)
	api.Get("/sample-request", catalogHandler.SampleRequest)

	// Media
	api.Post("/upload/image", requireAuth, middleware.AdminOnly(), mediaHandler.UploadImage)
	api.Post("/upload/video", requireAuth, middleware.AdminOnly(), mediaHandler.UploadVideo)
	api.Get("/images/:filename", mediaHandler.Image)
	api.Get("/videos/:filename", mediaHandler.Video)

	return nil
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, requireAuth fiber.Handler) {
	// Public routes
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Get("/users", handler.ListUsers)

	// Protected routes
	router.Post("/logout", requireAuth, handler.Logout)
	router.Get("/me", requireAuth, handler.Me)

	// Admin routes
	router.Post("/register", requireAuth, middleware.AdminOnly(), handler.Register)
	router.Post("/change-password", requireAuth, middleware.AdminOnly(), handler.ChangePassword)
	router.Delete("/users/:id", requireAuth, middleware.AdminOnly(), handler.DeleteUser)
}

// reviewRoutes is implemented by every ReviewHandler instantiation
type reviewRoutes interface {
	List(c *fiber.Ctx) error
	Archive(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

// setupReviewRoutes configures list/archive/delete for one collection.
// Delete is admin only; the service enforces it as well.
func setupReviewRoutes(router fiber.Router, handler reviewRoutes) {
	router.Get("/", handler.List)
	router.Patch("/:id/archive", handler.Archive)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}
