package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/profrate/profrate/internal/app/controllers"
	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	catalogueController *controllers.CatalogueController,
	ratingController *controllers.RatingController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Public read routes ---
	// Listings and averages need no credential; only writes do.
	v1.GET("/modules", catalogueController.ListModuleInstances)

	professors := v1.Group("/professors")
	{
		professors.GET("/ratings", ratingController.ListProfessorRatings)
		professors.GET("/:professorId/modules/:moduleCode/rating", ratingController.GetProfessorModuleRating)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/ratings", ratingController.SubmitRating)
		authenticated.POST("/auth/logout", authController.Logout)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
