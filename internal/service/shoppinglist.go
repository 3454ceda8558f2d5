package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/types"
)

// ShoppingListService aggregates the ingredient lines of every recipe in a
// user's cart into one deduplicated, name-sorted total-per-ingredient list.
type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// BuildShoppingList groups cart ingredient lines by ingredient identity
// (name + unit) and sums amounts across recipes. Amounts were validated
// positive at composition time, so no re-validation happens here. An empty
// cart yields an empty slice.
func (s *ShoppingListService) BuildShoppingList(ctx context.Context, userID uuid.UUID) ([]types.ShoppingItem, error) {
	items := []types.ShoppingItem{}
	err := s.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN cart_items ON cart_items.recipe_id = recipe_ingredients.recipe_id").
		Joins("JOIN recipes ON recipes.id = recipe_ingredients.recipe_id AND recipes.deleted_at IS NULL").
		Where("cart_items.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
