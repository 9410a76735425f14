// Package pantry provides test infrastructure for canonical catalogs, inventory
// items and recipes. It offers a fluent builder for catalogs, predefined
// fixtures and small constructors for the values most tests need.
//
// # Basic Usage
//
//	catalog := pantry.NewBuilder(t).
//		WithBasicIngredients().
//		WithIngredient(pantry.Scallion).
//		Build()
//
//	m, err := matcher.New(catalog, matcher.DefaultConfig())
//
// # Inventory and Recipes
//
//	inventory := []model.InventoryItem{
//		pantry.Item("chicken breast", 1, "lb"),
//		pantry.ExpiringItem("milk", 1, "cup", now.Add(48*time.Hour)),
//	}
//	recipe := pantry.Recipe("r1", "Roast Chicken", "chicken breast", "salt", "pepper")
//
// Recipe parses each line with the ingredient parser, the same way storage
// and seed import attach parsed data at creation.
//
// # Database Tests
//
// testutil.SetupTestDB seeds an in-memory SQLite database with a catalog built here.
package pantry
