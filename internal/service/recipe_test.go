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

type composerFixture struct {
	db     *gorm.DB
	svc    *RecipeService
	author *models.User
	flour  *models.Ingredient
	sugar  *models.Ingredient
	egg    *models.Ingredient
	dinner *models.Tag
	lunch  *models.Tag
}

func newComposerFixture(t *testing.T) *composerFixture {
	db := testhelpers.SetupTestDB(t)
	return &composerFixture{
		db:     db,
		svc:    NewRecipeService(db, NewRelationService(db), nil),
		author: testhelpers.CreateUser(t, db, "chef"),
		flour:  testhelpers.CreateIngredient(t, db, "flour", "g"),
		sugar:  testhelpers.CreateIngredient(t, db, "sugar", "g"),
		egg:    testhelpers.CreateIngredient(t, db, "egg", "pc"),
		dinner: testhelpers.CreateTag(t, db, "Dinner", "dinner"),
		lunch:  testhelpers.CreateTag(t, db, "Lunch", "lunch"),
	}
}

func (f *composerFixture) input() types.RecipeInput {
	return types.RecipeInput{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		Ingredients: []types.IngredientLine{
			{ID: f.flour.ID, Amount: 200},
			{ID: f.egg.ID, Amount: 2},
		},
		TagIDs: []uuid.UUID{f.dinner.ID},
	}
}

func TestComposeRecipe(t *testing.T) {
	f := newComposerFixture(t)

	view, err := f.svc.ComposeRecipe(context.Background(), f.author.ID, f.input())
	require.NoError(t, err)

	assert.Equal(t, "Pancakes", view.Name)
	assert.Equal(t, 20, view.CookingTime)
	assert.Equal(t, f.author.ID, view.Author.ID)
	assert.Len(t, view.Ingredients, 2)
	assert.Len(t, view.Tags, 1)
	assert.False(t, view.IsFavorited)
	assert.False(t, view.IsInShoppingCart)

	var lines int64
	require.NoError(t, f.db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", view.ID).Count(&lines).Error)
	assert.EqualValues(t, 2, lines)
}

func TestComposeRecipeValidation(t *testing.T) {
	f := newComposerFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*types.RecipeInput)
		wantErr error
	}{
		{
			name:    "no ingredients",
			mutate:  func(in *types.RecipeInput) { in.Ingredients = nil },
			wantErr: types.ErrEmptyIngredients,
		},
		{
			name: "unknown ingredient",
			mutate: func(in *types.RecipeInput) {
				in.Ingredients[0].ID = uuid.New()
			},
			wantErr: types.ErrUnknownIngredient,
		},
		{
			name: "duplicate ingredient",
			mutate: func(in *types.RecipeInput) {
				in.Ingredients = []types.IngredientLine{
					{ID: f.flour.ID, Amount: 100},
					{ID: f.flour.ID, Amount: 50},
				}
			},
			wantErr: types.ErrDuplicateIngredient,
		},
		{
			name: "duplicate ingredient wins over its bad amount",
			mutate: func(in *types.RecipeInput) {
				in.Ingredients = []types.IngredientLine{
					{ID: f.flour.ID, Amount: 100},
					{ID: f.flour.ID, Amount: -5},
				}
			},
			wantErr: types.ErrDuplicateIngredient,
		},
		{
			name: "zero amount",
			mutate: func(in *types.RecipeInput) {
				in.Ingredients[0].Amount = 0
			},
			wantErr: types.ErrNonPositiveAmount,
		},
		{
			name: "negative amount",
			mutate: func(in *types.RecipeInput) {
				in.Ingredients[1].Amount = -3
			},
			wantErr: types.ErrNonPositiveAmount,
		},
		{
			name:    "no tags",
			mutate:  func(in *types.RecipeInput) { in.TagIDs = nil },
			wantErr: types.ErrEmptyTags,
		},
		{
			name: "unknown tag",
			mutate: func(in *types.RecipeInput) {
				in.TagIDs = []uuid.UUID{uuid.New()}
			},
			wantErr: types.ErrUnknownTag,
		},
		{
			name: "duplicate tag",
			mutate: func(in *types.RecipeInput) {
				in.TagIDs = []uuid.UUID{f.dinner.ID, f.dinner.ID}
			},
			wantErr: types.ErrDuplicateTag,
		},
		{
			name:    "zero cooking time",
			mutate:  func(in *types.RecipeInput) { in.CookingTime = 0 },
			wantErr: types.ErrNonPositiveCookingTime,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := f.input()
			tc.mutate(&in)

			_, err := f.svc.ComposeRecipe(ctx, f.author.ID, in)
			assert.ErrorIs(t, err, tc.wantErr)

			var count int64
			require.NoError(t, f.db.Model(&models.Recipe{}).Count(&count).Error)
			assert.EqualValues(t, 0, count, "failed composition must not persist a recipe")
		})
	}
}

func TestComposeRecipeIngredientsCheckedBeforeTags(t *testing.T) {
	f := newComposerFixture(t)

	in := f.input()
	in.Ingredients = nil
	in.TagIDs = nil

	_, err := f.svc.ComposeRecipe(context.Background(), f.author.ID, in)
	assert.ErrorIs(t, err, types.ErrEmptyIngredients)
}

func TestReviseRecipeReplacesJoinSets(t *testing.T) {
	f := newComposerFixture(t)
	ctx := context.Background()

	view, err := f.svc.ComposeRecipe(ctx, f.author.ID, f.input())
	require.NoError(t, err)

	revised := types.RecipeInput{
		Name:        "Sugar pancakes",
		Text:        "Now with sugar.",
		CookingTime: 25,
		Ingredients: []types.IngredientLine{
			{ID: f.sugar.ID, Amount: 50},
		},
		TagIDs: []uuid.UUID{f.lunch.ID},
	}

	updated, err := f.svc.ReviseRecipe(ctx, view.ID, f.author.ID, revised)
	require.NoError(t, err)
	assert.Equal(t, "Sugar pancakes", updated.Name)

	var lines []models.RecipeIngredient
	require.NoError(t, f.db.Where("recipe_id = ?", view.ID).Find(&lines).Error)
	require.Len(t, lines, 1, "old ingredient lines must not survive a revision")
	assert.Equal(t, f.sugar.ID, lines[0].IngredientID)
	assert.Equal(t, 50, lines[0].Amount)

	var tags []models.RecipeTag
	require.NoError(t, f.db.Where("recipe_id = ?", view.ID).Find(&tags).Error)
	require.Len(t, tags, 1)
	assert.Equal(t, f.lunch.ID, tags[0].TagID)
}

func TestReviseRecipeValidatesBeforeDeleting(t *testing.T) {
	f := newComposerFixture(t)
	ctx := context.Background()

	view, err := f.svc.ComposeRecipe(ctx, f.author.ID, f.input())
	require.NoError(t, err)

	bad := f.input()
	bad.Ingredients = []types.IngredientLine{{ID: uuid.New(), Amount: 10}}

	_, err = f.svc.ReviseRecipe(ctx, view.ID, f.author.ID, bad)
	assert.ErrorIs(t, err, types.ErrUnknownIngredient)

	// Prior join sets are fully intact.
	var lines int64
	require.NoError(t, f.db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", view.ID).Count(&lines).Error)
	assert.EqualValues(t, 2, lines)
	var tags int64
	require.NoError(t, f.db.Model(&models.RecipeTag{}).Where("recipe_id = ?", view.ID).Count(&tags).Error)
	assert.EqualValues(t, 1, tags)
}

func TestReviseRecipeAuthorship(t *testing.T) {
	f := newComposerFixture(t)
	ctx := context.Background()

	view, err := f.svc.ComposeRecipe(ctx, f.author.ID, f.input())
	require.NoError(t, err)

	stranger := testhelpers.CreateUser(t, f.db, "stranger")
	_, err = f.svc.ReviseRecipe(ctx, view.ID, stranger.ID, f.input())
	assert.ErrorIs(t, err, types.ErrNotAuthor)

	_, err = f.svc.ReviseRecipe(ctx, uuid.New(), f.author.ID, f.input())
	assert.ErrorIs(t, err, types.ErrRecipeNotFound)
}

func TestDeleteRecipe(t *testing.T) {
	f := newComposerFixture(t)
	ctx := context.Background()

	view, err := f.svc.ComposeRecipe(ctx, f.author.ID, f.input())
	require.NoError(t, err)

	stranger := testhelpers.CreateUser(t, f.db, "stranger")
	assert.ErrorIs(t, f.svc.DeleteRecipe(ctx, view.ID, stranger.ID), types.ErrNotAuthor)

	require.NoError(t, f.svc.DeleteRecipe(ctx, view.ID, f.author.ID))

	_, err = f.svc.GetRecipe(ctx, view.ID, uuid.Nil)
	assert.ErrorIs(t, err, types.ErrRecipeNotFound)

	var lines int64
	require.NoError(t, f.db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", view.ID).Count(&lines).Error)
	assert.EqualValues(t, 0, lines)
}

func TestListRecipesFilters(t *testing.T) {
	f := newComposerFixture(t)
	ctx := context.Background()

	first, err := f.svc.ComposeRecipe(ctx, f.author.ID, f.input())
	require.NoError(t, err)

	other := testhelpers.CreateUser(t, f.db, "other")
	second := f.input()
	second.Name = "Omelette"
	second.TagIDs = []uuid.UUID{f.lunch.ID}
	_, err = f.svc.ComposeRecipe(ctx, other.ID, second)
	require.NoError(t, err)

	all, err := f.svc.ListRecipes(ctx, types.RecipeFilter{}, uuid.Nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byTag, err := f.svc.ListRecipes(ctx, types.RecipeFilter{TagSlugs: []string{"dinner"}}, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, first.ID, byTag[0].ID)

	byAuthor, err := f.svc.ListRecipes(ctx, types.RecipeFilter{AuthorID: other.ID}, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "Omelette", byAuthor[0].Name)

	viewer := testhelpers.CreateUser(t, f.db, "viewer")
	relations := NewRelationService(f.db)
	require.NoError(t, relations.Add(ctx, RelationFavorite, viewer.ID, first.ID))

	favorited, err := f.svc.ListRecipes(ctx, types.RecipeFilter{FavoritedOnly: true}, viewer.ID)
	require.NoError(t, err)
	require.Len(t, favorited, 1)
	assert.True(t, favorited[0].IsFavorited)
}
