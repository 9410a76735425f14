package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_AreSequential(t *testing.T) {
	require.NotEmpty(t, migrations)
	for i, m := range migrations {
		assert.Equal(t, i+1, m.Version, "migration %d is out of order", i)
		assert.NotEmpty(t, m.Description)
		assert.NotNil(t, m.Up)
	}
	assert.Equal(t, ExpectedSchemaVersion, migrations[len(migrations)-1].Version)
}

func TestMigrate_FromPartialSchema(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Apply only the initial schema, as an older binary would have.
	tx, err := store.db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, migrations[0].Up(tx))
	_, err = tx.Exec("PRAGMA user_version = 1")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, version)

	require.NoError(t, store.Migrate(ctx))

	version, err = store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	inventoryVersion, err := store.InventoryVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), inventoryVersion)
}

func TestMigrate_RecipeIngredientsCascade(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.db.Exec(`INSERT INTO recipes (id, name) VALUES ('soup', 'Soup')`)
	require.NoError(t, err)
	_, err = store.db.Exec(`INSERT INTO recipe_ingredients (recipe_id, position, raw) VALUES ('soup', 0, '1 onion')`)
	require.NoError(t, err)

	_, err = store.db.Exec(`DELETE FROM recipes WHERE id = 'soup'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM recipe_ingredients`).Scan(&count))
	assert.Equal(t, 0, count)
}
