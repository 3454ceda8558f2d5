package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platefeed/backend/internal/middleware"
	"github.com/platefeed/backend/internal/service"
	"github.com/platefeed/backend/internal/types"
)

type UserHandler struct {
	authService         *service.AuthService
	subscriptionService *service.SubscriptionService
}

func NewUserHandler(authService *service.AuthService, subscriptionService *service.SubscriptionService) *UserHandler {
	return &UserHandler{
		authService:         authService,
		subscriptionService: subscriptionService,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", middleware.OptionalAuthMiddleware(h.authService), h.ListUsers)
		users.GET("/me", middleware.AuthMiddleware(h.authService), h.GetProfile)
		users.GET("/subscriptions", middleware.AuthMiddleware(h.authService), h.ListSubscriptions)
		users.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetUser)
		users.POST("/:id/subscribe", middleware.AuthMiddleware(h.authService), h.Subscribe)
		users.DELETE("/:id/subscribe", middleware.AuthMiddleware(h.authService), h.Unsubscribe)
	}
}

func (h *UserHandler) userView(c *gin.Context, userID uuid.UUID) (*types.UserView, error) {
	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	isSubscribed, err := h.subscriptionService.IsFollowing(c.Request.Context(), middleware.CurrentUserID(c), userID)
	if err != nil {
		return nil, err
	}
	return &types.UserView{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}, nil
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	followed, err := h.subscriptionService.FollowedIDs(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]types.UserView, 0, len(users))
	for _, user := range users {
		views = append(views, types.UserView{
			ID:           user.ID,
			Username:     user.Username,
			Email:        user.Email,
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			IsSubscribed: followed[user.ID],
		})
	}
	c.JSON(http.StatusOK, views)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	view, err := h.userView(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.authService.GetUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	err = h.subscriptionService.Follow(c.Request.Context(), middleware.CurrentUserID(c), targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	err = h.subscriptionService.Unfollow(c.Request.Context(), middleware.CurrentUserID(c), targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSubscriptions returns the subscriptions feed. recipes_limit truncates
// each author's recipe list; the per-author count stays the true total.
func (h *UserHandler) ListSubscriptions(c *gin.Context) {
	recipesLimit := 0
	if raw := c.Query("recipes_limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipes_limit"})
			return
		}
		recipesLimit = parsed
	}

	feed, err := h.subscriptionService.ListFollowing(c.Request.Context(), middleware.CurrentUserID(c), recipesLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}
