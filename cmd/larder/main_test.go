package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/larder/internal/common"
	"github.com/Veraticus/larder/internal/ranking"
)

const catalogYAML = `
canonical_ingredients:
  - {id: olive-oil, name: olive oil, category: oil, aliases: [evoo], density_group: oil, safe_conversions: true}
  - {id: salt, name: salt, category: spice, aliases: [kosher salt], density_group: salt, safe_conversions: true}
  - {id: black-pepper, name: black pepper, category: spice, aliases: [pepper]}
  - {id: garlic, name: garlic, category: produce}
  - {id: spaghetti, name: spaghetti, category: pasta}
  - {id: flour, name: all purpose flour, category: baking, aliases: [flour], density_group: flour, safe_conversions: true}
  - {id: scallion, name: scallion, category: produce}
`

const recipesYAML = `
recipes:
  - id: aglio-olio
    name: Spaghetti Aglio e Olio
    category: pasta
    prep_time: 5m
    cook_time: 15m
    ingredients:
      - 1 lb spaghetti
      - 3 tbsp olive oil
      - 4 cloves garlic, sliced
      - salt
  - id: seasoned-oil
    name: Seasoned Oil
    ingredients:
      - 1/4 cup olive oil
      - 1 tsp kosher salt
`

// execute runs the root command with args against an isolated home and database.
func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--db", dbPath, "--log-level", "error"}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCLI_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	dbPath := filepath.Join(dir, "larder.db")

	expires := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	inventoryYAML := fmt.Sprintf(`
inventory:
  - {name: olive oil, quantity: 500, unit: ml, expires_at: %s}
  - {name: kosher salt, quantity: 1, unit: kg}
  - {name: spaghetti, quantity: 454, unit: g}
`, expires)

	catalogPath := writeFile(t, dir, "catalog.yaml", catalogYAML)
	recipesPath := writeFile(t, dir, "recipes.yaml", recipesYAML)
	inventoryPath := writeFile(t, dir, "inventory.yaml", inventoryYAML)

	t.Run("migrate", func(t *testing.T) {
		out, err := execute(t, dbPath, "migrate")
		require.NoError(t, err)
		assert.Contains(t, out, "schema version")
	})

	t.Run("match before catalog import", func(t *testing.T) {
		_, err := execute(t, dbPath, "match", "--quiet")
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrEmptyCatalog)
	})

	t.Run("imports", func(t *testing.T) {
		out, err := execute(t, dbPath, "import", "catalog", catalogPath)
		require.NoError(t, err)
		assert.Contains(t, out, "Imported 7 canonical ingredients")

		out, err = execute(t, dbPath, "import", "recipes", recipesPath)
		require.NoError(t, err)
		assert.Contains(t, out, "Imported 2 recipes (6 ingredient lines)")

		out, err = execute(t, dbPath, "import", "inventory", inventoryPath)
		require.NoError(t, err)
		assert.Contains(t, out, "Imported 3 items (3 resolved to the catalog), inventory version 3")

		_, err = execute(t, dbPath, "import", "recipes", catalogPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "has no recipes")
	})

	t.Run("inventory", func(t *testing.T) {
		out, err := execute(t, dbPath, "inventory", "add", "green onions", "1", "bunch")
		require.NoError(t, err)
		assert.Contains(t, out, "Saved green onions (1 bunch) as scallion")
		assert.Contains(t, out, "inventory version 4")

		out, err = execute(t, dbPath, "inventory", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "inv-kosher-salt")
		assert.Contains(t, out, "scallion")
		assert.Contains(t, out, "inventory version 4")

		out, err = execute(t, dbPath, "inventory", "remove", "inv-green-onions")
		require.NoError(t, err)
		assert.Contains(t, out, "Removed inv-green-onions")

		_, err = execute(t, dbPath, "inventory", "remove", "inv-green-onions")
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrNotFound)

		_, err = execute(t, dbPath, "inventory", "add", "eggs", "a dozen")
		require.Error(t, err)
	})

	t.Run("resolve", func(t *testing.T) {
		out, err := execute(t, dbPath, "resolve", "EVOO")
		require.NoError(t, err)
		assert.Contains(t, out, "EVOO → olive-oil")
		assert.Contains(t, out, "alias_match")
	})

	t.Run("convert", func(t *testing.T) {
		out, err := execute(t, dbPath, "convert", "1", "l", "ml")
		require.NoError(t, err)
		assert.Contains(t, out, "1 l = 1000 ml")

		out, err = execute(t, dbPath, "convert", "1", "cup", "g")
		require.NoError(t, err)
		assert.Contains(t, out, "no_density")

		out, err = execute(t, dbPath, "convert", "1", "cup", "g", "flour")
		require.NoError(t, err)
		assert.Contains(t, out, "1 cup = ")
	})

	t.Run("parse", func(t *testing.T) {
		out, err := execute(t, dbPath, "parse", "2 cloves garlic, minced")
		require.NoError(t, err)
		assert.Contains(t, out, "quantity:    2 clove")
		assert.Contains(t, out, "ingredient:  garlic")
		assert.Contains(t, out, "preparation: minced")
	})

	t.Run("match one recipe", func(t *testing.T) {
		out, err := execute(t, dbPath, "match", "--quiet", "--recipe", "aglio-olio")
		require.NoError(t, err)
		assert.Contains(t, out, "Spaghetti Aglio e Olio")
		assert.Contains(t, out, "3 of 4 ingredients")
		assert.Contains(t, out, "not in inventory")
	})

	t.Run("match sections as json", func(t *testing.T) {
		out, err := execute(t, dbPath, "match", "--quiet", "--recipe", "", "--json")
		require.NoError(t, err)

		var sections ranking.Sections
		require.NoError(t, json.Unmarshal([]byte(out), &sections))

		require.Len(t, sections.ReadyToCook, 1)
		assert.Equal(t, "seasoned-oil", sections.ReadyToCook[0].Recipe.ID)
		require.Len(t, sections.AlmostThere, 1)
		assert.Equal(t, "aglio-olio", sections.AlmostThere[0].Recipe.ID)
		assert.Len(t, sections.UseItUp, 2)
		require.Len(t, sections.Quick, 1)
		assert.Equal(t, "aglio-olio", sections.Quick[0].Recipe.ID)
	})

	t.Run("version", func(t *testing.T) {
		out, err := execute(t, dbPath, "version")
		require.NoError(t, err)
		assert.Contains(t, out, "larder dev")
	})
}
