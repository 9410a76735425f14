package scoring

import (
	"time"

	"github.com/Veraticus/larder/internal/common"
)

// Config holds scoring thresholds and weights.
type Config struct {
	// CategoryBonuses awards points when a keyword appears in a recipe's
	// category or tags, e.g. {"healthy": 5}.
	CategoryBonuses      map[string]float64
	ConfidenceFloor      float64
	NearExpiryWindow     time.Duration
	ExpiringBonusPerItem float64
	ExpiringBonusCap     float64
	BaseWeight           float64
	ExpiringWeight       float64
	CategoryWeight       float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		CategoryBonuses: map[string]float64{
			"healthy":    5,
			"vegetarian": 5,
		},
		ConfidenceFloor:      0.45,
		NearExpiryWindow:     7 * 24 * time.Hour,
		ExpiringBonusPerItem: 5,
		ExpiringBonusCap:     20,
		BaseWeight:           1,
		ExpiringWeight:       1,
		CategoryWeight:       1,
	}
}

// Validate checks ranges.
func (c Config) Validate() error {
	switch {
	case c.ConfidenceFloor < 0 || c.ConfidenceFloor > 1:
		return common.InvalidConfig("confidence floor must be in [0,1], got %.2f", c.ConfidenceFloor)
	case c.NearExpiryWindow < 0:
		return common.InvalidConfig("near-expiry window must not be negative, got %s", c.NearExpiryWindow)
	case c.ExpiringBonusPerItem < 0 || c.ExpiringBonusCap < 0:
		return common.InvalidConfig("expiring bonus values must not be negative")
	case c.BaseWeight < 0 || c.ExpiringWeight < 0 || c.CategoryWeight < 0:
		return common.InvalidConfig("score weights must not be negative")
	}
	for keyword, bonus := range c.CategoryBonuses {
		if keyword == "" {
			return common.InvalidConfig("category bonus keyword must not be empty")
		}
		if bonus < 0 {
			return common.InvalidConfig("category bonus for %q must not be negative", keyword)
		}
	}
	return nil
}
