package router

import (
	"database/sql"

	"coffee_pos_backend/internal/access"
	"coffee_pos_backend/internal/handlers"
	"coffee_pos_backend/internal/middleware"
	"coffee_pos_backend/internal/repositories"
	"coffee_pos_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	staffRepo := repositories.NewStaffRepository(db)
	itemRepo := repositories.NewItemRepository(db)
	saleRepo := repositories.NewSaleRepository(db)
	ratingRepo := repositories.NewRatingRepository(db)

	// Initialize Services
	authService := services.NewAuthService(staffRepo, db)
	staffService := services.NewStaffService(staffRepo, db)
	itemService := services.NewItemService(itemRepo, db)
	saleService := services.NewSaleService(saleRepo, itemRepo, db)
	ratingService := services.NewRatingService(ratingRepo, staffRepo, db)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	staffHandler := handlers.NewStaffHandler(staffService)
	itemHandler := handlers.NewItemHandler(itemService)
	saleHandler := handlers.NewSaleHandler(saleService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	reportHandler := handlers.NewReportHandler(saleService)

	apiV1 := engine.Group("/api/v1")

	// Login and refresh are the only routes reachable without a token.
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupItemRoutes(authenticated, itemHandler)
		SetupSaleRoutes(authenticated, saleHandler)
		SetupRatingRoutes(authenticated, ratingHandler)
		SetupStaffRoutes(authenticated, staffHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}
}

// SetupPublicAuthRoutes registers the unauthenticated auth endpoints.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.Login)
	group.POST("/refresh", authHandler.Refresh)
}

// SetupAuthenticatedAuthRoutes registers the auth endpoints that require a
// valid token. Registration sits here because only Managers may create staff.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.Me)
	group.POST("/register", middleware.RequireAction(access.ActionRegisterStaff), authHandler.Register)
}
