// Package storage provides the SQLite persistence layer for catalogs, recipes and inventory.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/larder/internal/common"
	"github.com/Veraticus/larder/internal/model"
)

// Validation errors. All of them match common.ErrInvalidInput.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = fmt.Errorf("%w: string parameter cannot be empty", common.ErrInvalidInput)
	ErrNilParameter     = fmt.Errorf("%w: parameter cannot be nil", common.ErrInvalidInput)
	ErrEmptySlice       = fmt.Errorf("%w: slice cannot be empty", common.ErrInvalidInput)
	ErrInvalidCanonical = fmt.Errorf("%w: invalid canonical ingredient", common.ErrInvalidInput)
	ErrInvalidRecipe    = fmt.Errorf("%w: invalid recipe", common.ErrInvalidInput)
	ErrInvalidItem      = fmt.Errorf("%w: invalid inventory item", common.ErrInvalidInput)
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateCanonicalIngredients(ings []model.CanonicalIngredient) error {
	if len(ings) == 0 {
		return fmt.Errorf("%w: canonical ingredients", ErrEmptySlice)
	}

	seen := make(map[string]struct{}, len(ings))
	for i, ing := range ings {
		switch {
		case strings.TrimSpace(ing.ID) == "":
			return fmt.Errorf("canonical ingredient at index %d: %w: missing id", i, ErrInvalidCanonical)
		case strings.TrimSpace(ing.Name) == "":
			return fmt.Errorf("canonical ingredient %q: %w: missing name", ing.ID, ErrInvalidCanonical)
		case ing.Density < 0 || math.IsNaN(ing.Density):
			return fmt.Errorf("canonical ingredient %q: %w: density must not be negative", ing.ID, ErrInvalidCanonical)
		}
		if _, dup := seen[ing.ID]; dup {
			return fmt.Errorf("canonical ingredient %q: %w", ing.ID, common.ErrDuplicateEntry)
		}
		seen[ing.ID] = struct{}{}
	}
	return nil
}

func validateRecipes(recipes []model.Recipe) error {
	if len(recipes) == 0 {
		return fmt.Errorf("%w: recipes", ErrEmptySlice)
	}

	seen := make(map[string]struct{}, len(recipes))
	for i, r := range recipes {
		if err := validateRecipe(&r); err != nil {
			return fmt.Errorf("recipe at index %d: %w", i, err)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("recipe %q: %w", r.ID, common.ErrDuplicateEntry)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}

func validateRecipe(r *model.Recipe) error {
	if r == nil {
		return fmt.Errorf("%w: recipe", ErrNilParameter)
	}
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRecipe)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidRecipe)
	}
	if r.PrepTime < 0 || r.CookTime < 0 {
		return fmt.Errorf("%w: negative time", ErrInvalidRecipe)
	}
	for i, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Raw) == "" && (ing.CanonicalID == nil || *ing.CanonicalID == "") {
			return fmt.Errorf("%w: ingredient %d has neither text nor canonical id", ErrInvalidRecipe, i)
		}
	}
	return nil
}

func validateInventoryItem(item *model.InventoryItem) error {
	if item == nil {
		return fmt.Errorf("%w: inventory item", ErrNilParameter)
	}
	if strings.TrimSpace(item.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidItem)
	}
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidItem)
	}
	if item.Quantity < 0 || math.IsNaN(item.Quantity) || math.IsInf(item.Quantity, 0) {
		return fmt.Errorf("%w: quantity must be a non-negative number", ErrInvalidItem)
	}
	return nil
}
