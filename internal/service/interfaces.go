// Package service defines the contracts between the matching engine and its collaborators.
package service

import (
	"context"

	"github.com/Veraticus/larder/internal/model"
)

// InventorySnapshot is the household inventory at one version.
type InventorySnapshot struct {
	Items []model.InventoryItem
	// Version increases on every inventory mutation.
	Version int64
}

// InventorySource supplies the current inventory.
type InventorySource interface {
	Inventory(ctx context.Context) (InventorySnapshot, error)
}

// RecipeSource supplies the recipe catalog.
type RecipeSource interface {
	Recipes(ctx context.Context) ([]model.Recipe, error)
}

// CatalogSource supplies canonical ingredient reference data.
type CatalogSource interface {
	CanonicalIngredients(ctx context.Context) ([]model.CanonicalIngredient, error)
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	InventorySource
	RecipeSource
	CatalogSource

	// Catalog operations
	SaveCanonicalIngredients(ctx context.Context, ingredients []model.CanonicalIngredient) error

	// Recipe operations
	SaveRecipes(ctx context.Context, recipes []model.Recipe) error
	GetRecipe(ctx context.Context, id string) (*model.Recipe, error)

	// Inventory operations
	SaveInventoryItem(ctx context.Context, item *model.InventoryItem) (int64, error)
	DeleteInventoryItem(ctx context.Context, id string) (int64, error)
	GetInventoryItem(ctx context.Context, id string) (*model.InventoryItem, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
