// Package model defines the core data structures for the larder matching engine.
package model

// CanonicalIngredient is a deduplicated catalog-level ingredient identity.
// It is reference data: loaded once per session and never mutated by matching.
type CanonicalIngredient struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Category        string   `json:"category" yaml:"category"`
	DensityGroup    string   `json:"density_group,omitempty" yaml:"density_group,omitempty"`
	Aliases         []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Groups          []string `json:"groups,omitempty" yaml:"groups,omitempty"`
	Density         float64  `json:"density,omitempty" yaml:"density,omitempty"` // grams per millilitre
	SafeConversions bool     `json:"safe_conversions" yaml:"safe_conversions"`
}

// ParsedIngredient is the structured reading of one raw recipe line.
// Quantity and Unit are nil when no numeric quantity could be found.
type ParsedIngredient struct {
	Quantity    *float64 `json:"quantity,omitempty"`
	Unit        *string  `json:"unit,omitempty"`
	Ingredient  string   `json:"ingredient"`
	Preparation string   `json:"preparation,omitempty"`
	Raw         string   `json:"raw"`
	Confidence  float64  `json:"confidence"`
}

// HasQuantity reports whether a numeric quantity was parsed.
func (p ParsedIngredient) HasQuantity() bool {
	return p.Quantity != nil
}

// UnitOrEmpty returns the parsed unit or "" when none was found.
func (p ParsedIngredient) UnitOrEmpty() string {
	if p.Unit == nil {
		return ""
	}
	return *p.Unit
}
