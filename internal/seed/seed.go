// Package seed decodes YAML seed documents into catalog, recipe and inventory values.
//
// A document may carry any of three top-level lists:
//
//	canonical_ingredients:
//	  - id: olive-oil
//	    name: olive oil
//	    aliases: [evoo]
//	recipes:
//	  - id: pasta
//	    name: Weeknight Pasta
//	    prep_time: 10m
//	    ingredients:
//	      - 2 tbsp olive oil
//	      - raw: 1 lb spaghetti
//	        canonical_id: spaghetti
//	inventory:
//	  - name: olive oil
//	    quantity: 500
//	    unit: ml
//	    expires_at: 2024-07-01
//
// Recipe lines are either a plain string or a mapping; every line is parsed
// when the document is decoded.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/larder/internal/common"
	"github.com/Veraticus/larder/internal/model"
	"github.com/Veraticus/larder/internal/parser"
	"gopkg.in/yaml.v3"
)

// Data is the decoded content of one seed document.
type Data struct {
	Catalog   []model.CanonicalIngredient
	Recipes   []model.Recipe
	Inventory []model.InventoryItem
}

// Empty reports whether the document held nothing.
func (d *Data) Empty() bool {
	return len(d.Catalog) == 0 && len(d.Recipes) == 0 && len(d.Inventory) == 0
}

type document struct {
	CanonicalIngredients []model.CanonicalIngredient `yaml:"canonical_ingredients"`
	Recipes              []recipeDoc                 `yaml:"recipes"`
	Inventory            []model.InventoryItem       `yaml:"inventory"`
}

type recipeDoc struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Category    string          `yaml:"category"`
	Tags        []string        `yaml:"tags"`
	Ingredients []ingredientDoc `yaml:"ingredients"`
	PrepTime    time.Duration   `yaml:"prep_time"`
	CookTime    time.Duration   `yaml:"cook_time"`
}

type ingredientDoc model.RecipeIngredient

// UnmarshalYAML accepts either a bare line or a mapping with raw/canonical_id/quantity/unit.
func (d *ingredientDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		d.Raw = node.Value
		return nil
	}
	type plain model.RecipeIngredient
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*d = ingredientDoc(p)
	return nil
}

// LoadFile reads and decodes the seed document at path.
func LoadFile(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// Decode reads one YAML document. Unknown keys are rejected.
func Decode(r io.Reader) (*Data, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Data{}, nil
		}
		return nil, fmt.Errorf("failed to decode seed document: %w", err)
	}

	data := &Data{
		Catalog:   doc.CanonicalIngredients,
		Recipes:   make([]model.Recipe, 0, len(doc.Recipes)),
		Inventory: doc.Inventory,
	}

	if err := validateCatalog(data.Catalog); err != nil {
		return nil, err
	}

	for i, rd := range doc.Recipes {
		recipe, err := buildRecipe(rd)
		if err != nil {
			return nil, fmt.Errorf("recipe %d: %w", i, err)
		}
		data.Recipes = append(data.Recipes, recipe)
	}

	for i := range data.Inventory {
		if err := prepareItem(&data.Inventory[i]); err != nil {
			return nil, fmt.Errorf("inventory item %d: %w", i, err)
		}
	}

	return data, nil
}

func validateCatalog(catalog []model.CanonicalIngredient) error {
	seen := make(map[string]struct{}, len(catalog))
	for i, ing := range catalog {
		if strings.TrimSpace(ing.ID) == "" || strings.TrimSpace(ing.Name) == "" {
			return fmt.Errorf("%w: canonical ingredient %d needs an id and a name", common.ErrInvalidInput, i)
		}
		if _, dup := seen[ing.ID]; dup {
			return fmt.Errorf("%w: canonical ingredient %q", common.ErrDuplicateEntry, ing.ID)
		}
		seen[ing.ID] = struct{}{}
	}
	return nil
}

func buildRecipe(rd recipeDoc) (model.Recipe, error) {
	if strings.TrimSpace(rd.ID) == "" || strings.TrimSpace(rd.Name) == "" {
		return model.Recipe{}, fmt.Errorf("%w: recipe needs an id and a name", common.ErrInvalidInput)
	}
	if rd.PrepTime < 0 || rd.CookTime < 0 {
		return model.Recipe{}, fmt.Errorf("%w: recipe %q has a negative time", common.ErrInvalidInput, rd.ID)
	}

	recipe := model.Recipe{
		ID:          rd.ID,
		Name:        rd.Name,
		Category:    rd.Category,
		Tags:        rd.Tags,
		PrepTime:    rd.PrepTime,
		CookTime:    rd.CookTime,
		Ingredients: make([]model.RecipeIngredient, 0, len(rd.Ingredients)),
	}

	for j, doc := range rd.Ingredients {
		line := model.RecipeIngredient(doc)
		line.Raw = strings.TrimSpace(line.Raw)
		if line.Raw == "" && line.CanonicalID == nil {
			return model.Recipe{}, fmt.Errorf("%w: recipe %q line %d is empty", common.ErrInvalidInput, rd.ID, j)
		}
		if line.Raw != "" {
			parsed := parser.Parse(line.Raw)
			line.Parsed = &parsed
		}
		recipe.Ingredients = append(recipe.Ingredients, line)
	}

	return recipe, nil
}

func prepareItem(item *model.InventoryItem) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return fmt.Errorf("%w: inventory item needs a name", common.ErrInvalidInput)
	}
	if item.Quantity < 0 {
		return fmt.Errorf("%w: inventory item %q has a negative quantity", common.ErrInvalidInput, item.Name)
	}
	if item.ID == "" {
		item.ID = ItemID(item.Name)
	}
	return nil
}

// ItemID derives a stable inventory id from an item name.
func ItemID(name string) string {
	return "inv-" + strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
