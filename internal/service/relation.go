package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/types"
)

// RelationKind selects which user/recipe membership set an operation targets.
type RelationKind string

const (
	RelationFavorite RelationKind = "favorite"
	RelationCart     RelationKind = "cart"
)

// RelationService manages the favorite and shopping-cart membership sets.
// Both are (user, recipe) pairs with the unique index as the race arbiter,
// so one component serves both kinds.
type RelationService struct {
	db *gorm.DB
}

func NewRelationService(db *gorm.DB) *RelationService {
	return &RelationService{db: db}
}

func (s *RelationService) model(kind RelationKind) interface{} {
	if kind == RelationCart {
		return &models.CartItem{}
	}
	return &models.Favorite{}
}

// Add inserts the membership row. The insert is attempted directly and a
// duplicate-key violation maps to ErrAlreadyExists, so two concurrent adds
// for the same pair store exactly one row and the loser gets the conflict.
func (s *RelationService) Add(ctx context.Context, kind RelationKind, userID, recipeID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Select("id").First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.ErrRecipeNotFound
		}
		return err
	}

	var row interface{}
	if kind == RelationCart {
		row = &models.CartItem{UserID: userID, RecipeID: recipeID}
	} else {
		row = &models.Favorite{UserID: userID, RecipeID: recipeID}
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return types.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Remove deletes the membership row, reporting ErrRelationNotFound when
// there was nothing to remove.
func (s *RelationService) Remove(ctx context.Context, kind RelationKind, userID, recipeID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(s.model(kind))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.ErrRelationNotFound
	}
	return nil
}

// IsRelated answers the is_favorited / is_in_shopping_cart flags for recipe
// views. Anonymous viewers (uuid.Nil) get false without touching storage.
func (s *RelationService) IsRelated(ctx context.Context, kind RelationKind, userID, recipeID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(s.model(kind)).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
