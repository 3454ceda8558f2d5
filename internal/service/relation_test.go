package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/testhelpers"
	"github.com/platefeed/backend/internal/types"
)

func seedRecipe(t *testing.T, db *gorm.DB, author *models.User) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        "Borscht",
		Text:        "Simmer.",
		CookingTime: 90,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

func TestRelationAddIsConflictOnSecondCall(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRelationService(db)
	user := testhelpers.CreateUser(t, db, "eater")
	recipe := seedRecipe(t, db, testhelpers.CreateUser(t, db, "chef"))
	ctx := context.Background()

	for _, kind := range []RelationKind{RelationFavorite, RelationCart} {
		require.NoError(t, svc.Add(ctx, kind, user.ID, recipe.ID))
		assert.ErrorIs(t, svc.Add(ctx, kind, user.ID, recipe.ID), types.ErrAlreadyExists)

		var count int64
		require.NoError(t, db.Model(svc.model(kind)).
			Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).
			Count(&count).Error)
		assert.EqualValues(t, 1, count, "duplicate add must store exactly one row")
	}
}

func TestRelationAddUnknownRecipe(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRelationService(db)
	user := testhelpers.CreateUser(t, db, "eater")

	err := svc.Add(context.Background(), RelationFavorite, user.ID, uuid.New())
	assert.ErrorIs(t, err, types.ErrRecipeNotFound)
}

func TestRelationRemove(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRelationService(db)
	user := testhelpers.CreateUser(t, db, "eater")
	recipe := seedRecipe(t, db, testhelpers.CreateUser(t, db, "chef"))
	ctx := context.Background()

	assert.ErrorIs(t, svc.Remove(ctx, RelationCart, user.ID, recipe.ID), types.ErrRelationNotFound)

	require.NoError(t, svc.Add(ctx, RelationCart, user.ID, recipe.ID))
	require.NoError(t, svc.Remove(ctx, RelationCart, user.ID, recipe.ID))

	related, err := svc.IsRelated(ctx, RelationCart, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, related)
}

func TestRelationKindsAreIndependent(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRelationService(db)
	user := testhelpers.CreateUser(t, db, "eater")
	recipe := seedRecipe(t, db, testhelpers.CreateUser(t, db, "chef"))
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, RelationFavorite, user.ID, recipe.ID))

	inCart, err := svc.IsRelated(ctx, RelationCart, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, inCart)

	favorited, err := svc.IsRelated(ctx, RelationFavorite, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, favorited)
}

func TestIsRelatedAnonymous(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRelationService(db)
	recipe := seedRecipe(t, db, testhelpers.CreateUser(t, db, "chef"))

	related, err := svc.IsRelated(context.Background(), RelationFavorite, uuid.Nil, recipe.ID)
	require.NoError(t, err)
	assert.False(t, related, "anonymous callers always read false")
}
