package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/larder/internal/config"
	"github.com/Veraticus/larder/internal/service"
)

// NewFromSource builds an engine over the catalog held by src.
func NewFromSource(ctx context.Context, src service.CatalogSource, cfg config.Config, opts ...Option) (*Engine, error) {
	catalog, err := src.CanonicalIngredients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load canonical catalog: %w", err)
	}
	return New(catalog, cfg, opts...)
}

// Refresh loads the current recipes and inventory from their sources and
// starts a match job for the inventory's version. It returns that version.
func (e *Engine) Refresh(ctx context.Context, recipes service.RecipeSource, inventory service.InventorySource) (int64, error) {
	all, err := recipes.Recipes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load recipes: %w", err)
	}
	snapshot, err := inventory.Inventory(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load inventory: %w", err)
	}

	slog.Debug("Refreshing matches", "recipes", len(all), "inventory_version", snapshot.Version)
	e.Start(ctx, all, snapshot.Items, snapshot.Version)
	return snapshot.Version, nil
}
