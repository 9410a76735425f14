package pantry

import "github.com/Veraticus/larder/internal/model"

// Fixture represents a predefined set of canonical ingredients for testing.
type Fixture interface {
	// Name returns the fixture's descriptive name.
	Name() string

	// Description returns a detailed description of the fixture's purpose.
	Description() string

	// Ingredients returns the canonical ingredients included in this fixture.
	Ingredients() []model.CanonicalIngredient
}

type fixture struct {
	name        string
	description string
	ingredients []model.CanonicalIngredient
}

func (f *fixture) Name() string                             { return f.name }
func (f *fixture) Description() string                      { return f.description }
func (f *fixture) Ingredients() []model.CanonicalIngredient { return f.ingredients }

// Predefined fixtures for common test scenarios.
var (
	// FixtureBasic covers simple savory recipes.
	FixtureBasic = &fixture{
		name:        "Basic",
		description: "Staples for simple savory recipes",
		ingredients: []model.CanonicalIngredient{
			OliveOil,
			Salt,
			BlackPepper,
			ChickenBreast,
			Garlic,
			Onion,
		},
	}

	// FixtureBaking covers ingredients that convert between volume and mass.
	FixtureBaking = &fixture{
		name:        "Baking",
		description: "Ingredients with densities for volume and mass conversion",
		ingredients: []model.CanonicalIngredient{
			Flour,
			Sugar,
			Butter,
			Milk,
			Egg,
		},
	}

	// FixtureFull is every predefined ingredient.
	FixtureFull = &fixture{
		name:        "Full",
		description: "Every predefined ingredient, for integration tests",
		ingredients: []model.CanonicalIngredient{
			OliveOil,
			Salt,
			BlackPepper,
			ChickenBreast,
			Garlic,
			Onion,
			Scallion,
			Flour,
			Sugar,
			Butter,
			Milk,
			Egg,
			Tomato,
			Rice,
			Spaghetti,
			Parmesan,
			ChickenStock,
			LemonJuice,
		},
	}
)
