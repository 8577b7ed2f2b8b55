package routes

import (
	"time"

	"hcf-givehub/internal/adapters/http/handlers"
	"hcf-givehub/internal/adapters/http/middleware"
	"hcf-givehub/internal/adapters/persistence/repositories"
	"hcf-givehub/internal/config"
	"hcf-givehub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	credentialRepo := repositories.NewCredentialRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	campaignRepo := repositories.NewCampaignRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	donationRepo := repositories.NewDonationRepository(db)

	// Initialize services
	authService := services.NewAuthService(credentialRepo, refreshTokenRepo, cfg)
	campaignService := services.NewCampaignService(campaignRepo)
	projectService := services.NewProjectService(projectRepo, campaignRepo)
	donationService := services.NewDonationService(donationRepo, campaignRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	projectHandler := handlers.NewProjectHandler(projectService)
	donationHandler := handlers.NewDonationHandler(donationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, campaignHandler,
		projectHandler, donationHandler, dashboardHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	campaignHandler *handlers.CampaignHandler,
	projectHandler *handlers.ProjectHandler,
	donationHandler *handlers.DonationHandler,
	dashboardHandler *handlers.DashboardHandler,
	cfg *config.Config,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Campaign routes (authenticated browse + staff management)
	campaignRoutes := router.Group("/campaigns")
	campaignRoutes.Use(middleware.AuthMiddleware(cfg))
	setupCampaignRoutes(campaignRoutes, campaignHandler)

	// Project routes (authenticated; management is staff only)
	projectRoutes := router.Group("/projects")
	projectRoutes.Use(middleware.AuthMiddleware(cfg))
	setupProjectRoutes(projectRoutes, projectHandler)

	// Donation routes (authenticated)
	donationRoutes := router.Group("/donations")
	donationRoutes.Use(middleware.AuthMiddleware(cfg))
	setupDonationRoutes(donationRoutes, donationHandler)

	// Dashboard routes (staff only)
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Get("/", middleware.StaffOnly(), dashboardHandler.GetOverview)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Auth responses must never be cached
	router.Use(middleware.NoCacheHeaders())

	// Public routes (rate limited)
	router.Post("/signup", middleware.AuthRateLimiter(), handler.Signup)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", middleware.StrictRateLimiter(), handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupCampaignRoutes configures campaign routes
func setupCampaignRoutes(router fiber.Router, handler *handlers.CampaignHandler) {
	// Browse for donors choosing a campaign, registered before the :id matcher
	router.Get("/active", middleware.PrivateCacheHeaders(30*time.Second), handler.ListActive)

	// Staff report, registered before the :id matcher
	router.Get("/financial-summary", middleware.StaffOnly(), handler.FinancialSummary)

	// Staff management
	router.Post("/", middleware.StaffOnly(), handler.Create)
	router.Get("/", middleware.StaffOnly(), handler.List)
	router.Get("/:id", middleware.StaffOnly(), handler.GetByID)
	router.Patch("/:id/status", middleware.StaffOnly(), handler.SetStatus)
}

// setupProjectRoutes configures project routes
func setupProjectRoutes(router fiber.Router, handler *handlers.ProjectHandler) {
	// Progress report is open to every authenticated account,
	// registered before the :id matcher
	router.Get("/progress", middleware.PrivateCacheHeaders(10*time.Second), handler.Progress)

	// Staff management
	router.Post("/", middleware.StaffOnly(), handler.Create)
	router.Get("/", middleware.StaffOnly(), handler.List)
	router.Get("/:id", middleware.StaffOnly(), handler.GetByID)
	router.Patch("/:id/expense", middleware.StaffOnly(), handler.RecordExpense)
	router.Patch("/:id/link-campaign", middleware.StaffOnly(), handler.LinkCampaign)
}

// setupDonationRoutes configures donation routes
func setupDonationRoutes(router fiber.Router, handler *handlers.DonationHandler) {
	// History, registered before the :id matcher
	router.Get("/history", middleware.PrivateCacheHeaders(10*time.Second), handler.History)

	// Donors give; staff read
	router.Post("/", middleware.DonationRateLimiter(), middleware.DonorOnly(), handler.Record)
	router.Get("/:id", middleware.NoCacheHeaders(), handler.Receipt)
}
