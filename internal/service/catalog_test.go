package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/testhelpers"
	"github.com/platefeed/backend/internal/types"
)

func TestListIngredientsPrefixFilter(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	testhelpers.CreateIngredient(t, db, "Sugar", "g")
	testhelpers.CreateIngredient(t, db, "sunflower oil", "ml")
	testhelpers.CreateIngredient(t, db, "salt", "g")
	testhelpers.CreateIngredient(t, db, "flour", "g")

	all, err := svc.ListIngredients(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	// Prefix match is case-insensitive and anchored at the start.
	su, err := svc.ListIngredients(ctx, "Su")
	require.NoError(t, err)
	require.Len(t, su, 2)
	assert.Equal(t, "Sugar", su[0].Name)
	assert.Equal(t, "sunflower oil", su[1].Name)

	none, err := svc.ListIngredients(ctx, "ugar")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetIngredientAndTag(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	flour := testhelpers.CreateIngredient(t, db, "flour", "g")
	dinner := testhelpers.CreateTag(t, db, "Dinner", "dinner")

	got, err := svc.GetIngredient(ctx, flour.ID)
	require.NoError(t, err)
	assert.Equal(t, "flour", got.Name)
	assert.Equal(t, "g", got.MeasurementUnit)

	_, err = svc.GetIngredient(ctx, uuid.New())
	assert.ErrorIs(t, err, types.ErrNotFound)

	tag, err := svc.GetTag(ctx, dinner.ID)
	require.NoError(t, err)
	assert.Equal(t, "dinner", tag.Slug)

	_, err = svc.GetTag(ctx, uuid.New())
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestImportCatalog(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	err := svc.ImportIngredients(ctx, []models.Ingredient{
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "egg", MeasurementUnit: "pc"},
	})
	require.NoError(t, err)

	err = svc.ImportTags(ctx, []models.Tag{
		{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
	})
	require.NoError(t, err)

	ingredients, err := svc.ListIngredients(ctx, "")
	require.NoError(t, err)
	assert.Len(t, ingredients, 2)

	tags, err := svc.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "breakfast", tags[0].Slug)

	require.NoError(t, svc.ImportIngredients(ctx, nil))
	require.NoError(t, svc.ImportTags(ctx, nil))
}
