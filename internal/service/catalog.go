package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/types"
)

// CatalogService serves the ingredient and tag reference lists. Recipe
// operations only ever read these; rows come from bulk import.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListIngredients lists ingredients, optionally filtered by a
// case-insensitive name prefix.
func (s *CatalogService) ListIngredients(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Model(&models.Ingredient{})
	if namePrefix != "" {
		query = query.Where("LOWER(name) LIKE ?", strings.ToLower(namePrefix)+"%")
	}
	var ingredients []models.Ingredient
	if err := query.Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *CatalogService) GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

func (s *CatalogService) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("slug ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *CatalogService) GetTag(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// ImportIngredients bulk-inserts reference ingredients, used by the seed
// command. Inserts run in batches inside one transaction.
func (s *CatalogService) ImportIngredients(ctx context.Context, ingredients []models.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(ingredients, 500).Error
}

// ImportTags bulk-inserts reference tags.
func (s *CatalogService) ImportTags(ctx context.Context, tags []models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(tags, 100).Error
}
