package model

import "time"

// Recipe is a read-only input to the engine.
type Recipe struct {
	ID          string             `json:"id" yaml:"id"`
	Name        string             `json:"name" yaml:"name"`
	Category    string             `json:"category" yaml:"category"`
	Tags        []string           `json:"tags,omitempty" yaml:"tags,omitempty"`
	Ingredients []RecipeIngredient `json:"ingredients" yaml:"ingredients"`
	PrepTime    time.Duration      `json:"prep_time" yaml:"prep_time"`
	CookTime    time.Duration      `json:"cook_time" yaml:"cook_time"`
}

// TotalTime is prep plus cook time.
func (r Recipe) TotalTime() time.Duration {
	return r.PrepTime + r.CookTime
}

// RecipeIngredient is one required line of a recipe.
type RecipeIngredient struct {
	Parsed      *ParsedIngredient `json:"parsed,omitempty" yaml:"-"`
	CanonicalID *string           `json:"canonical_id,omitempty" yaml:"canonical_id,omitempty"`
	Quantity    *float64          `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Raw         string            `json:"raw" yaml:"raw"`
	Unit        string            `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// DisplayName is the name reported in available/missing lists.
func (ri RecipeIngredient) DisplayName() string {
	if ri.Parsed != nil && ri.Parsed.Ingredient != "" {
		return ri.Parsed.Ingredient
	}
	return ri.Raw
}
