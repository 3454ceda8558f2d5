package router

import (
	"github.com/gin-gonic/gin"

	"github.com/platefeed/backend/internal/api"
	"github.com/platefeed/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	catalogHandler *api.CatalogHandler,
	recipeHandler *api.RecipeHandler,
	userHandler *api.UserHandler,
	rateLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	// API v1 routes
	v1 := router.Group("/api/v1")
	if rateLimiter != nil {
		v1.Use(rateLimiter.RateLimitMiddleware())
	}

	authHandler.RegisterRoutes(v1)
	catalogHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)
	userHandler.RegisterRoutes(v1)

	return router
}
