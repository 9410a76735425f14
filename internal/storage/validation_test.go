package storage

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/larder/internal/common"
	"github.com/Veraticus/larder/internal/model"
)

func TestValidateContext(t *testing.T) {
	assert.NoError(t, validateContext(context.Background()))
	//nolint:staticcheck // nil context is the case under test
	assert.ErrorIs(t, validateContext(nil), ErrNilContext)
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "inv-1"},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace", input: " \t\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.input, "id")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmptyString)
				assert.Contains(t, err.Error(), "id")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateInventoryItem(t *testing.T) {
	tests := []struct {
		item    *model.InventoryItem
		name    string
		wantErr bool
	}{
		{name: "valid", item: &model.InventoryItem{ID: "a", Name: "salt", Quantity: 1}},
		{name: "zero quantity is allowed", item: &model.InventoryItem{ID: "a", Name: "salt"}},
		{name: "nil", item: nil, wantErr: true},
		{name: "NaN quantity", item: &model.InventoryItem{ID: "a", Name: "salt", Quantity: math.NaN()}, wantErr: true},
		{name: "infinite quantity", item: &model.InventoryItem{ID: "a", Name: "salt", Quantity: math.Inf(1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateInventoryItem(tt.item)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRecipe_CanonicalOnlyLine(t *testing.T) {
	id := "salt"
	r := &model.Recipe{ID: "a", Name: "A", Ingredients: []model.RecipeIngredient{{CanonicalID: &id}}}
	assert.NoError(t, validateRecipe(r))
}
