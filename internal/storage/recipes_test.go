package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/larder/internal/common"
	"github.com/Veraticus/larder/internal/model"
)

func TestSaveRecipes_ParsesLines(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	salt := "salt"
	qty := 2.0
	recipes := []model.Recipe{
		{
			ID:       "dressing",
			Name:     "Dressing",
			Category: "Salad",
			Tags:     []string{"quick", "vegetarian"},
			PrepTime: 5 * time.Minute,
			Ingredients: []model.RecipeIngredient{
				{Raw: "2 tbsp olive oil"},
				{Raw: "a pinch of salt", CanonicalID: &salt},
				{Raw: "lemon juice", Quantity: &qty, Unit: "tbsp"},
			},
		},
	}
	require.NoError(t, store.SaveRecipes(ctx, recipes))

	// parsed data is attached to the caller's recipes
	require.NotNil(t, recipes[0].Ingredients[0].Parsed)

	got, err := store.GetRecipe(ctx, "dressing")
	require.NoError(t, err)

	assert.Equal(t, "Dressing", got.Name)
	assert.Equal(t, []string{"quick", "vegetarian"}, got.Tags)
	assert.Equal(t, 5*time.Minute, got.PrepTime)
	assert.Zero(t, got.CookTime)
	require.Len(t, got.Ingredients, 3)

	first := got.Ingredients[0]
	require.NotNil(t, first.Parsed)
	assert.Equal(t, "olive oil", first.Parsed.Ingredient)
	assert.Equal(t, "tbsp", first.Parsed.UnitOrEmpty())
	require.NotNil(t, first.Parsed.Quantity)
	assert.InDelta(t, 2.0, *first.Parsed.Quantity, 1e-9)
	assert.Nil(t, first.CanonicalID)

	require.NotNil(t, got.Ingredients[1].CanonicalID)
	assert.Equal(t, "salt", *got.Ingredients[1].CanonicalID)

	require.NotNil(t, got.Ingredients[2].Quantity)
	assert.InDelta(t, 2.0, *got.Ingredients[2].Quantity, 1e-9)
	assert.Equal(t, "tbsp", got.Ingredients[2].Unit)
}

func TestRecipes_ListAndReplace(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRecipes(ctx, []model.Recipe{
		{ID: "b", Name: "B", Ingredients: []model.RecipeIngredient{{Raw: "salt"}, {Raw: "pepper"}}},
		{ID: "a", Name: "A", Ingredients: []model.RecipeIngredient{{Raw: "egg"}}},
		{ID: "c", Name: "C"},
	}))

	// replacing a recipe replaces its lines
	require.NoError(t, store.SaveRecipes(ctx, []model.Recipe{
		{ID: "b", Name: "B2", Ingredients: []model.RecipeIngredient{{Raw: "sugar"}}},
	}))

	got, err := store.Recipes(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "B2", got[1].Name)
	require.Len(t, got[1].Ingredients, 1)
	assert.Equal(t, "sugar", got[1].Ingredients[0].Raw)
	assert.Empty(t, got[2].Ingredients)
}

func TestGetRecipe_NotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetRecipe(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveRecipes_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		wantErr error
		recipes []model.Recipe
	}{
		{name: "empty", wantErr: ErrEmptySlice},
		{name: "missing id", recipes: []model.Recipe{{Name: "A"}}, wantErr: ErrInvalidRecipe},
		{name: "missing name", recipes: []model.Recipe{{ID: "a"}}, wantErr: ErrInvalidRecipe},
		{name: "negative time", recipes: []model.Recipe{{ID: "a", Name: "A", CookTime: -time.Minute}}, wantErr: ErrInvalidRecipe},
		{
			name:    "blank line",
			recipes: []model.Recipe{{ID: "a", Name: "A", Ingredients: []model.RecipeIngredient{{Raw: " "}}}},
			wantErr: ErrInvalidRecipe,
		},
		{
			name:    "duplicate",
			recipes: []model.Recipe{{ID: "a", Name: "A"}, {ID: "a", Name: "A again"}},
			wantErr: common.ErrDuplicateEntry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, store.SaveRecipes(ctx, tt.recipes), tt.wantErr)
		})
	}
}
