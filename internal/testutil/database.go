// Package testutil provides test helpers that need a real database behind them.
// Catalog and fixture builders live in the pantry subpackage.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/larder/internal/model"
	"github.com/Veraticus/larder/internal/service"
	"github.com/Veraticus/larder/internal/storage"
	"github.com/Veraticus/larder/internal/testutil/pantry"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
	Catalog pantry.Catalog
}

// SetupTestDB creates a migrated in-memory database seeded with catalog.
// The database is closed when the test ends.
//
// Example:
//
//	db := testutil.SetupTestDB(t,
//		pantry.NewBuilder(t).
//			WithBasicIngredients().
//			Build(),
//	)
func SetupTestDB(t *testing.T, catalog pantry.Catalog) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if len(catalog) > 0 {
		if err := store.SaveCanonicalIngredients(ctx, catalog); err != nil {
			t.Fatalf("failed to seed catalog: %v", err)
		}
	}

	return &TestDB{
		Storage: store,
		Catalog: catalog,
		t:       t,
	}
}

// WithRecipes saves recipes and returns db for chaining.
func (db *TestDB) WithRecipes(recipes ...model.Recipe) *TestDB {
	db.t.Helper()
	if err := db.Storage.SaveRecipes(context.Background(), recipes); err != nil {
		db.t.Fatalf("failed to seed recipes: %v", err)
	}
	return db
}

// WithInventory saves items and returns db for chaining.
func (db *TestDB) WithInventory(items ...model.InventoryItem) *TestDB {
	db.t.Helper()
	for i := range items {
		if _, err := db.Storage.SaveInventoryItem(context.Background(), &items[i]); err != nil {
			db.t.Fatalf("failed to seed inventory item %q: %v", items[i].Name, err)
		}
	}
	return db
}

// MustGetIngredient returns the seeded catalog entry with id or fails the test.
func (db *TestDB) MustGetIngredient(id string) model.CanonicalIngredient {
	db.t.Helper()
	return db.Catalog.MustFind(db.t, id)
}
