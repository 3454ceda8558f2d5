package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/platefeed/backend/config"
	"github.com/platefeed/backend/internal/api"
	"github.com/platefeed/backend/internal/middleware"
	"github.com/platefeed/backend/internal/router"
	"github.com/platefeed/backend/internal/service"
)

// Server wires the services and handlers onto one HTTP server.
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New builds the full service graph. redisClient and images may be nil;
// rate limiting and S3 image storage are then disabled.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, images service.ImageStore) *Server {
	authService := service.NewAuthService(db, cfg.JWTSecret)
	catalogService := service.NewCatalogService(db)
	relationService := service.NewRelationService(db)
	recipeService := service.NewRecipeService(db, relationService, images)
	shoppingService := service.NewShoppingListService(db)
	subscriptionService := service.NewSubscriptionService(db)

	var rateLimiter *middleware.RateLimiter
	if redisClient != nil {
		rateLimiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     120,
			KeyPrefix: "ratelimit",
		})
	}

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewCatalogHandler(catalogService),
		api.NewRecipeHandler(recipeService, relationService, shoppingService, authService),
		api.NewUserHandler(authService, subscriptionService),
		rateLimiter,
	)

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
	}
}

// Start starts the server
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
