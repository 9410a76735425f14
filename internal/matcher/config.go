package matcher

import "github.com/Veraticus/larder/internal/common"

// Config holds the matcher's tier confidences and thresholds.
type Config struct {
	// Taxonomy maps a group name to keywords that place a name in that group.
	// Nil means DefaultTaxonomy.
	Taxonomy              map[string][]string
	AliasConfidence       float64
	CategoryMinConfidence float64
	CategoryMaxConfidence float64
	FuzzyThreshold        float64
	FuzzyMaxConfidence    float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		AliasConfidence:       0.9,
		CategoryMinConfidence: 0.6,
		CategoryMaxConfidence: 0.75,
		FuzzyThreshold:        0.8,
		FuzzyMaxConfidence:    0.59,
	}
}

// Validate checks that tiers keep their order: exact > alias > category > fuzzy.
func (c Config) Validate() error {
	switch {
	case c.AliasConfidence <= 0 || c.AliasConfidence >= 1:
		return common.InvalidConfig("alias confidence must be in (0,1), got %.2f", c.AliasConfidence)
	case c.CategoryMaxConfidence >= c.AliasConfidence:
		return common.InvalidConfig("category max confidence %.2f must be below alias confidence %.2f",
			c.CategoryMaxConfidence, c.AliasConfidence)
	case c.CategoryMinConfidence <= 0 || c.CategoryMinConfidence > c.CategoryMaxConfidence:
		return common.InvalidConfig("category confidence range [%.2f,%.2f] is invalid",
			c.CategoryMinConfidence, c.CategoryMaxConfidence)
	case c.FuzzyMaxConfidence <= 0 || c.FuzzyMaxConfidence >= c.CategoryMinConfidence:
		return common.InvalidConfig("fuzzy max confidence %.2f must be in (0, %.2f)",
			c.FuzzyMaxConfidence, c.CategoryMinConfidence)
	case c.FuzzyThreshold <= 0 || c.FuzzyThreshold > 1:
		return common.InvalidConfig("fuzzy threshold must be in (0,1], got %.2f", c.FuzzyThreshold)
	}
	return nil
}
