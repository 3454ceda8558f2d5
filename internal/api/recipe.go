package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platefeed/backend/internal/middleware"
	"github.com/platefeed/backend/internal/service"
	"github.com/platefeed/backend/internal/types"
)

type RecipeHandler struct {
	recipeService   *service.RecipeService
	relationService *service.RelationService
	shoppingService *service.ShoppingListService
	authService     *service.AuthService
}

func NewRecipeHandler(
	recipeService *service.RecipeService,
	relationService *service.RelationService,
	shoppingService *service.ShoppingListService,
	authService *service.AuthService,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		relationService: relationService,
		shoppingService: shoppingService,
		authService:     authService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuthMiddleware(h.authService), h.ListRecipes)
		recipes.GET("/download_shopping_cart", middleware.AuthMiddleware(h.authService), h.DownloadShoppingCart)
		recipes.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetRecipe)
		recipes.POST("", middleware.AuthMiddleware(h.authService), h.CreateRecipe)
		recipes.PUT("/:id", middleware.AuthMiddleware(h.authService), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.DeleteRecipe)
		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.authService), h.relate(service.RelationFavorite))
		recipes.DELETE("/:id/favorite", middleware.AuthMiddleware(h.authService), h.unrelate(service.RelationFavorite))
		recipes.POST("/:id/shopping_cart", middleware.AuthMiddleware(h.authService), h.relate(service.RelationCart))
		recipes.DELETE("/:id/shopping_cart", middleware.AuthMiddleware(h.authService), h.unrelate(service.RelationCart))
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	viewerID := middleware.CurrentUserID(c)

	filter := types.RecipeFilter{
		FavoritedOnly:  c.Query("is_favorited") == "1",
		InShoppingCart: c.Query("is_in_shopping_cart") == "1",
	}
	if tags := c.Query("tags"); tags != "" {
		filter.TagSlugs = strings.Split(tags, ",")
	}
	if author := c.Query("author"); author != "" {
		authorID, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		filter.AuthorID = authorID
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), filter, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.ComposeRecipe(c.Request.Context(), middleware.CurrentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.ReviseRecipe(c.Request.Context(), id, middleware.CurrentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id, middleware.CurrentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// relate handles POST /recipes/:id/{favorite,shopping_cart}.
func (h *RecipeHandler) relate(kind service.RelationKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		recipeID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
			return
		}

		err = h.relationService.Add(c.Request.Context(), kind, middleware.CurrentUserID(c), recipeID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Status(http.StatusCreated)
	}
}

// unrelate handles DELETE /recipes/:id/{favorite,shopping_cart}.
func (h *RecipeHandler) unrelate(kind service.RelationKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		recipeID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
			return
		}

		err = h.relationService.Remove(c.Request.Context(), kind, middleware.CurrentUserID(c), recipeID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// DownloadShoppingCart streams the aggregated shopping list as a PDF
// attachment. An empty cart still downloads a valid document.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	items, err := h.shoppingService.BuildShoppingList(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	pdf, err := service.RenderShoppingListPDF(items)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+service.ShoppingListFilename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
