package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/types"
)

// RecipeService composes and serves recipes. A submission is validated in
// full before anything is written; create and revise replace the ingredient
// and tag join sets atomically, so readers never observe a recipe with a
// partial set.
type RecipeService struct {
	db        *gorm.DB
	relations *RelationService
	images    ImageStore
}

func NewRecipeService(db *gorm.DB, relations *RelationService, images ImageStore) *RecipeService {
	return &RecipeService{
		db:        db,
		relations: relations,
		images:    images,
	}
}

// validateInput runs the fail-fast validation sequence: ingredient lines
// first (existence, duplicates, amounts, in submission order), then tags,
// then cooking time. The first violation wins.
func (s *RecipeService) validateInput(ctx context.Context, in types.RecipeInput) error {
	if len(in.Ingredients) == 0 {
		return types.ErrEmptyIngredients
	}

	ids := make([]uuid.UUID, 0, len(in.Ingredients))
	for _, line := range in.Ingredients {
		ids = append(ids, line.ID)
	}
	var known []models.Ingredient
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&known).Error; err != nil {
		return err
	}
	catalog := make(map[uuid.UUID]struct{}, len(known))
	for _, ing := range known {
		catalog[ing.ID] = struct{}{}
	}

	seen := make(map[uuid.UUID]struct{}, len(in.Ingredients))
	for _, line := range in.Ingredients {
		if _, ok := catalog[line.ID]; !ok {
			return types.ErrUnknownIngredient
		}
		if _, ok := seen[line.ID]; ok {
			return types.ErrDuplicateIngredient
		}
		seen[line.ID] = struct{}{}
		if line.Amount <= 0 {
			return types.ErrNonPositiveAmount
		}
	}

	if len(in.TagIDs) == 0 {
		return types.ErrEmptyTags
	}
	var knownTags []models.Tag
	if err := s.db.WithContext(ctx).Where("id IN ?", in.TagIDs).Find(&knownTags).Error; err != nil {
		return err
	}
	tagCatalog := make(map[uuid.UUID]struct{}, len(knownTags))
	for _, tag := range knownTags {
		tagCatalog[tag.ID] = struct{}{}
	}
	seenTags := make(map[uuid.UUID]struct{}, len(in.TagIDs))
	for _, id := range in.TagIDs {
		if _, ok := tagCatalog[id]; !ok {
			return types.ErrUnknownTag
		}
		if _, ok := seenTags[id]; ok {
			return types.ErrDuplicateTag
		}
		seenTags[id] = struct{}{}
	}

	if in.CookingTime <= 0 {
		return types.ErrNonPositiveCookingTime
	}
	return nil
}

// resolveImage turns a base64 data URI into a stored object URL. Anything
// that is not a data URI passes through unchanged.
func (s *RecipeService) resolveImage(ctx context.Context, image string) (string, error) {
	if s.images == nil || !strings.HasPrefix(image, "data:") {
		return image, nil
	}
	rest := strings.TrimPrefix(image, "data:")
	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return "", types.ErrInvalidImage
	}
	contentType := strings.TrimSuffix(meta, ";base64")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", types.ErrInvalidImage
	}
	return s.images.StoreImage(ctx, data, contentType)
}

// ComposeRecipe validates the submission and persists the recipe header plus
// its ingredient and tag join rows in one transaction.
func (s *RecipeService) ComposeRecipe(ctx context.Context, authorID uuid.UUID, in types.RecipeInput) (*types.RecipeView, error) {
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}

	imageURL, err := s.resolveImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        in.Name,
		ImageURL:    imageURL,
		Text:        in.Text,
		CookingTime: in.CookingTime,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return replaceJoinSets(tx, recipe.ID, in)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, recipe.ID, authorID)
}

// ReviseRecipe runs the identical validation path and then fully replaces
// both join sets. Validation completes before any old row is deleted; a
// failure leaves the prior state intact.
func (s *RecipeService) ReviseRecipe(ctx context.Context, recipeID, requesterID uuid.UUID, in types.RecipeInput) (*types.RecipeView, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.AuthorID != requesterID {
		return nil, types.ErrNotAuthor
	}

	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}

	imageURL, err := s.resolveImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":         in.Name,
			"text":         in.Text,
			"cooking_time": in.CookingTime,
		}
		if imageURL != "" {
			updates["image_url"] = imageURL
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		return replaceJoinSets(tx, recipeID, in)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, recipeID, requesterID)
}

// replaceJoinSets bulk-inserts the validated ingredient and tag rows.
func replaceJoinSets(tx *gorm.DB, recipeID uuid.UUID, in types.RecipeInput) error {
	lines := make([]models.RecipeIngredient, 0, len(in.Ingredients))
	for _, line := range in.Ingredients {
		lines = append(lines, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: line.ID,
			Amount:       line.Amount,
		})
	}
	if err := tx.Create(&lines).Error; err != nil {
		if isUniqueViolation(err) {
			return types.ErrDuplicateIngredient
		}
		return err
	}

	tags := make([]models.RecipeTag, 0, len(in.TagIDs))
	for _, id := range in.TagIDs {
		tags = append(tags, models.RecipeTag{RecipeID: recipeID, TagID: id})
	}
	if err := tx.Create(&tags).Error; err != nil {
		if isUniqueViolation(err) {
			return types.ErrDuplicateTag
		}
		return err
	}
	return nil
}

// GetRecipe returns the recipe read model with viewer flags resolved.
// viewerID may be uuid.Nil for anonymous callers.
func (s *RecipeService) GetRecipe(ctx context.Context, id, viewerID uuid.UUID) (*types.RecipeView, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Ingredients.Ingredient").
		Preload("Tags.Tag").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrRecipeNotFound
		}
		return nil, err
	}
	return s.buildView(ctx, &recipe, viewerID)
}

// ListRecipes lists recipes, newest first, with optional tag/author and
// per-viewer favorite/cart filters.
func (s *RecipeService) ListRecipes(ctx context.Context, filter types.RecipeFilter, viewerID uuid.UUID) ([]types.RecipeView, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if len(filter.TagSlugs) > 0 {
		sub := s.db.WithContext(ctx).Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", sub)
	}
	if filter.AuthorID != uuid.Nil {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.FavoritedOnly && viewerID != uuid.Nil {
		sub := s.db.WithContext(ctx).Table("favorites").Select("recipe_id").Where("user_id = ?", viewerID)
		query = query.Where("recipes.id IN (?)", sub)
	}
	if filter.InShoppingCart && viewerID != uuid.Nil {
		sub := s.db.WithContext(ctx).Table("cart_items").Select("recipe_id").Where("user_id = ?", viewerID)
		query = query.Where("recipes.id IN (?)", sub)
	}

	var recipes []models.Recipe
	err := query.
		Preload("Author").
		Preload("Ingredients.Ingredient").
		Preload("Tags.Tag").
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	views := make([]types.RecipeView, 0, len(recipes))
	for i := range recipes {
		view, err := s.buildView(ctx, &recipes[i], viewerID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// DeleteRecipe removes an author's recipe together with its join rows and
// any favorite/cart memberships pointing at it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, requesterID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.ErrRecipeNotFound
		}
		return err
	}
	if recipe.AuthorID != requesterID {
		return types.ErrNotAuthor
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, join := range []interface{}{
			&models.RecipeIngredient{},
			&models.RecipeTag{},
			&models.Favorite{},
			&models.CartItem{},
		} {
			if err := tx.Where("recipe_id = ?", id).Delete(join).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}

func (s *RecipeService) buildView(ctx context.Context, recipe *models.Recipe, viewerID uuid.UUID) (*types.RecipeView, error) {
	isFavorited, err := s.relations.IsRelated(ctx, RelationFavorite, viewerID, recipe.ID)
	if err != nil {
		return nil, err
	}
	inCart, err := s.relations.IsRelated(ctx, RelationCart, viewerID, recipe.ID)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewerID != uuid.Nil {
		var count int64
		err := s.db.WithContext(ctx).Model(&models.Subscription{}).
			Where("user_id = ? AND author_id = ?", viewerID, recipe.AuthorID).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		isSubscribed = count > 0
	}

	view := types.RecipeView{
		ID: recipe.ID,
		Author: types.UserView{
			ID:           recipe.Author.ID,
			Username:     recipe.Author.Username,
			Email:        recipe.Author.Email,
			FirstName:    recipe.Author.FirstName,
			LastName:     recipe.Author.LastName,
			IsSubscribed: isSubscribed,
		},
		IsFavorited:      isFavorited,
		IsInShoppingCart: inCart,
		Name:             recipe.Name,
		Image:            recipe.ImageURL,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		CreatedAt:        recipe.CreatedAt,
	}
	for _, line := range recipe.Ingredients {
		view.Ingredients = append(view.Ingredients, types.IngredientAmount{
			ID:              line.IngredientID,
			Name:            line.Ingredient.Name,
			MeasurementUnit: line.Ingredient.MeasurementUnit,
			Amount:          line.Amount,
		})
	}
	for _, rt := range recipe.Tags {
		view.Tags = append(view.Tags, types.TagView{
			ID:    rt.TagID,
			Name:  rt.Tag.Name,
			Color: rt.Tag.Color,
			Slug:  rt.Tag.Slug,
		})
	}
	return &view, nil
}
