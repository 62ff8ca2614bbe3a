package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/educhanakya/campus-api/database"
	"github.com/educhanakya/campus-api/handlers"
	admin_handlers "github.com/educhanakya/campus-api/handlers/admin"
	auth_handlers "github.com/educhanakya/campus-api/handlers/auth"
	chat_handlers "github.com/educhanakya/campus-api/handlers/chat"
	idea_handlers "github.com/educhanakya/campus-api/handlers/idea"
	learning_handlers "github.com/educhanakya/campus-api/handlers/learning"
	project_handlers "github.com/educhanakya/campus-api/handlers/project"
	resource_handlers "github.com/educhanakya/campus-api/handlers/resource"
	system_handlers "github.com/educhanakya/campus-api/handlers/system"
	talent_handlers "github.com/educhanakya/campus-api/handlers/talent"
	"github.com/educhanakya/campus-api/services"
	"github.com/educhanakya/campus-api/services/gemini"
	"github.com/educhanakya/campus-api/utils"
	"github.com/educhanakya/campus-api/utils/auth"
	"github.com/educhanakya/campus-api/utils/middleware"
)

func SetupRoutes(app *fiber.App, db *database.BadgerStore, store *database.Store, audit *database.AuditLog) {
	// Get JWT secret from environment
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "educhanakya-api"
	}

	// Initialize JWT manager with config
	jwtConfig := auth.JWTConfig{
		Secret: jwtSecret,
		Expiry: 24 * time.Hour, // Session token expires in 24 hours
		Issuer: jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	// Initialize Gemini client. An empty key leaves AI features degraded but
	// keeps the rest of the API usable.
	aiClient := gemini.NewClient(gemini.Config{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: os.Getenv("GEMINI_BASE_URL"),
		Model:   os.Getenv("GEMINI_MODEL"),
	})
	if !aiClient.Configured() {
		log.Println("Warning: GEMINI_API_KEY is not set. AI features will return fallback data or errors.")
	}

	// Initialize services
	directoryService := services.NewDirectoryService(store)
	projectService := services.NewProjectService(store, aiClient, directoryService)
	ideaService := services.NewIdeaService(store, aiClient)
	learningService := services.NewLearningService(store, aiClient)
	talentService := services.NewTalentService(store, aiClient)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, directoryService)

	// Initialize handlers
	authHandler := auth_handlers.NewAuthHandler(directoryService, jwtManager)
	adminHandler := admin_handlers.NewAdminHandler(directoryService, audit)
	projectHandler := project_handlers.NewProjectHandler(projectService)
	ideaHandler := idea_handlers.NewIdeaHandler(ideaService, directoryService)
	learningHandler := learning_handlers.NewLearningHandler(learningService)
	talentHandler := talent_handlers.NewTalentHandler(talentService)
	resourceHandler := resource_handlers.NewResourceHandler(store)
	assistantHandler := chat_handlers.NewAssistantHandler(aiClient)
	systemHandler := system_handlers.NewSystemHandler(store, audit)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, db))

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Get("/institutions", authHandler.ListInstitutions)      // Public: login picker
	authGroup.Post("/institutions", authHandler.RegisterInstitution)  // Public: tenant onboarding
	authGroup.Post("/login", authHandler.Login)                       // Public: id/name login

	// Admin routes (admin only)
	adminGroup := api.Group("/admin", authMiddleware.Required(), authMiddleware.RequireAdmin())
	adminGroup.Get("/users", adminHandler.ListUsers)          // List institution users
	adminGroup.Post("/users", adminHandler.CreateUser)        // Create single user
	adminGroup.Post("/users/bulk", adminHandler.BulkUpload)   // Roster CSV import
	adminGroup.Delete("/users/:id", adminHandler.DeleteUser)  // Remove user + candidate
	adminGroup.Get("/audit", adminHandler.AuditLog)           // Activity log snapshot

	// Project routes (protected)
	projects := api.Group("/projects", authMiddleware.Required())
	projects.Get("/", projectHandler.List)
	projects.Get("/lineages", projectHandler.Lineages)
	projects.Post("/", projectHandler.Ingest)
	projects.Get("/:id", projectHandler.Get)
	projects.Patch("/:id/status", projectHandler.UpdateStatus)
	projects.Post("/:id/critique", projectHandler.Critique)
	projects.Post("/:id/handover", projectHandler.Handover)
	projects.Post("/:id/assign", projectHandler.AssignFaculty)

	// Chatroom routes (shared by projects and ideas, protected)
	chatrooms := api.Group("/chatrooms", authMiddleware.Required())
	chatrooms.Get("/:id/messages", projectHandler.Messages)
	chatrooms.Post("/:id/messages", projectHandler.PostMessage)

	// Ideation board routes (protected)
	ideas := api.Group("/ideas", authMiddleware.Required())
	ideas.Get("/", ideaHandler.List)
	ideas.Post("/", ideaHandler.Create)
	ideas.Post("/:id/apply", ideaHandler.Apply)
	ideas.Post("/:id/approve", ideaHandler.Approve)

	// Learning path routes (protected)
	learning := api.Group("/learning-paths", authMiddleware.Required())
	learning.Get("/", learningHandler.List)
	learning.Post("/", learningHandler.Generate)

	// Talent pool routes (protected)
	talent := api.Group("/talent", authMiddleware.Required())
	talent.Get("/", talentHandler.List)
	talent.Post("/:id/bio", talentHandler.GenerateBio)

	// Notes board routes (protected)
	resources := api.Group("/resources", authMiddleware.Required())
	resources.Get("/", resourceHandler.List)
	resources.Post("/", resourceHandler.Post)

	// AI assistant (protected)
	api.Post("/assistant", authMiddleware.Required(), assistantHandler.Ask)

	// System/observability routes (admin only)
	systemGroup := api.Group("/system", authMiddleware.Required(), authMiddleware.RequireAdmin())
	systemGroup.Get("/collections/:collection", systemHandler.DumpCollection)
	systemGroup.Get("/collections/:collection/stream", systemHandler.StreamCollection)
	systemGroup.Get("/audit", systemHandler.AuditLog)
	systemGroup.Get("/audit/stream", systemHandler.StreamAuditLog)
}
