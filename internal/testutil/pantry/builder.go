package pantry

import (
	"sort"
	"testing"

	"github.com/Veraticus/larder/internal/model"
)

// Builder provides a fluent interface for constructing test catalogs.
type Builder interface {
	// WithIngredient adds a single canonical ingredient.
	WithIngredient(ing model.CanonicalIngredient) Builder

	// WithIngredients adds multiple canonical ingredients.
	WithIngredients(ings ...model.CanonicalIngredient) Builder

	// WithBasicIngredients adds the minimal set most scoring tests rely on.
	WithBasicIngredients() Builder

	// WithFixture adds ingredients from a predefined fixture.
	WithFixture(fixture Fixture) Builder

	// Build returns the catalog sorted by id. Later additions with the same id
	// replace earlier ones.
	Build() Catalog
}

// Common canonical ingredients used across tests.
var (
	OliveOil = model.CanonicalIngredient{
		ID: "olive-oil", Name: "olive oil", Category: "oil",
		Aliases: []string{"evoo", "extra virgin olive oil"}, DensityGroup: "oil", SafeConversions: true,
	}
	Salt = model.CanonicalIngredient{
		ID: "salt", Name: "salt", Category: "spice",
		Aliases: []string{"kosher salt", "sea salt"}, DensityGroup: "salt", SafeConversions: true,
	}
	BlackPepper = model.CanonicalIngredient{
		ID: "black-pepper", Name: "black pepper", Category: "spice",
		Aliases: []string{"pepper", "ground black pepper"},
	}
	ChickenBreast = model.CanonicalIngredient{
		ID: "chicken-breast", Name: "chicken breast", Category: "meat",
		Aliases: []string{"chicken breast fillet"},
	}
	Garlic = model.CanonicalIngredient{
		ID: "garlic", Name: "garlic", Category: "produce",
		Aliases: []string{"garlic clove"},
	}
	Onion = model.CanonicalIngredient{
		ID: "onion", Name: "onion", Category: "produce",
		Aliases: []string{"yellow onion", "brown onion"},
	}
	Scallion = model.CanonicalIngredient{
		ID: "scallion", Name: "scallion", Category: "produce",
	}
	Flour = model.CanonicalIngredient{
		ID: "flour", Name: "all purpose flour", Category: "baking",
		Aliases: []string{"flour", "plain flour"}, DensityGroup: "flour", SafeConversions: true,
	}
	Sugar = model.CanonicalIngredient{
		ID: "sugar", Name: "sugar", Category: "baking",
		Aliases: []string{"white sugar"}, DensityGroup: "sugar", SafeConversions: true,
	}
	Butter = model.CanonicalIngredient{
		ID: "butter", Name: "butter", Category: "dairy",
		Aliases: []string{"unsalted butter"}, DensityGroup: "butter", SafeConversions: true,
	}
	Milk = model.CanonicalIngredient{
		ID: "milk", Name: "milk", Category: "dairy",
		Aliases: []string{"whole milk"}, DensityGroup: "milk", SafeConversions: true,
	}
	Egg = model.CanonicalIngredient{
		ID: "egg", Name: "egg", Category: "dairy",
	}
	Tomato = model.CanonicalIngredient{
		ID: "tomato", Name: "tomato", Category: "produce",
	}
	Rice = model.CanonicalIngredient{
		ID: "rice", Name: "long grain rice", Category: "grain",
		Aliases: []string{"white rice"}, DensityGroup: "rice", SafeConversions: true,
	}
	Spaghetti = model.CanonicalIngredient{
		ID: "spaghetti", Name: "spaghetti", Category: "pasta",
	}
	Parmesan = model.CanonicalIngredient{
		ID: "parmesan", Name: "parmesan", Category: "dairy",
		Aliases: []string{"parmigiano reggiano"}, DensityGroup: "grated",
	}
	ChickenStock = model.CanonicalIngredient{
		ID: "chicken-stock", Name: "chicken stock", Category: "pantry",
		Aliases: []string{"chicken broth"}, DensityGroup: "water", SafeConversions: true,
	}
	LemonJuice = model.CanonicalIngredient{
		ID: "lemon-juice", Name: "lemon juice", Category: "produce",
		DensityGroup: "water", SafeConversions: true,
	}
)

// Catalog is a built canonical catalog.
type Catalog []model.CanonicalIngredient

// Find returns the ingredient with the given id, or nil if not found.
func (c Catalog) Find(id string) *model.CanonicalIngredient {
	for i := range c {
		if c[i].ID == id {
			return &c[i]
		}
	}
	return nil
}

// MustFind returns the ingredient with the given id or fails the test.
func (c Catalog) MustFind(t *testing.T, id string) model.CanonicalIngredient {
	t.Helper()
	ing := c.Find(id)
	if ing == nil {
		t.Fatalf("canonical ingredient %q not found in test catalog", id)
	}
	return *ing
}

// IDs returns every id in catalog order.
func (c Catalog) IDs() []string {
	ids := make([]string, len(c))
	for i, ing := range c {
		ids[i] = ing.ID
	}
	return ids
}

type catalogBuilder struct {
	t     *testing.T
	items map[string]model.CanonicalIngredient
}

// NewBuilder creates a new catalog builder for the given test.
func NewBuilder(t *testing.T) Builder {
	t.Helper()
	return &catalogBuilder{
		t:     t,
		items: make(map[string]model.CanonicalIngredient),
	}
}

func (b *catalogBuilder) WithIngredient(ing model.CanonicalIngredient) Builder {
	if ing.ID == "" {
		b.t.Fatalf("test ingredient %q has no id", ing.Name)
	}
	b.items[ing.ID] = ing
	return b
}

func (b *catalogBuilder) WithIngredients(ings ...model.CanonicalIngredient) Builder {
	for _, ing := range ings {
		b.WithIngredient(ing)
	}
	return b
}

func (b *catalogBuilder) WithBasicIngredients() Builder {
	return b.WithFixture(FixtureBasic)
}

func (b *catalogBuilder) WithFixture(fixture Fixture) Builder {
	return b.WithIngredients(fixture.Ingredients()...)
}

func (b *catalogBuilder) Build() Catalog {
	b.t.Helper()

	out := make(Catalog, 0, len(b.items))
	for _, ing := range b.items {
		out = append(out, ing)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
