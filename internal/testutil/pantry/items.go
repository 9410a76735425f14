package pantry

import (
	"strings"
	"time"

	"github.com/Veraticus/larder/internal/model"
	"github.com/Veraticus/larder/internal/parser"
)

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Item returns an in-stock inventory item whose id is derived from its name.
func Item(name string, quantity float64, unit string) model.InventoryItem {
	return model.InventoryItem{
		ID:        "inv-" + strings.ReplaceAll(name, " ", "-"),
		Name:      name,
		Quantity:  quantity,
		Unit:      unit,
		UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// ExpiringItem returns Item with an expiry date.
func ExpiringItem(name string, quantity float64, unit string, expiresAt time.Time) model.InventoryItem {
	item := Item(name, quantity, unit)
	item.ExpiresAt = &expiresAt
	return item
}

// Recipe returns a recipe whose lines are parsed the way storage parses them.
func Recipe(id, name string, lines ...string) model.Recipe {
	r := model.Recipe{ID: id, Name: name}
	for _, line := range lines {
		parsed := parser.Parse(line)
		r.Ingredients = append(r.Ingredients, model.RecipeIngredient{
			Raw:    line,
			Parsed: &parsed,
		})
	}
	return r
}
