package model

import "time"

// ScoreBreakdown lists the factors contributing to a recipe's total score.
type ScoreBreakdown struct {
	BaseMatch     float64 `json:"base_match"`
	ExpiringBonus float64 `json:"expiring_bonus"`
	CategoryBonus float64 `json:"category_bonus"`
}

// IngredientMatch records how a single recipe line was resolved and judged.
type IngredientMatch struct {
	Name        string      `json:"name"`
	Match       MatchResult `json:"match"`
	Note        string      `json:"note,omitempty"`
	Available   bool        `json:"available"`
	NearExpiry  bool        `json:"near_expiry"`
	QuantityMet *bool       `json:"quantity_met,omitempty"`
}

// RecipeScore is the scoring of one recipe against one inventory state.
// A new inventory state produces a new RecipeScore; scores are never mutated.
type RecipeScore struct {
	Recipe               Recipe            `json:"recipe"`
	AvailableIngredients []string          `json:"available_ingredients"`
	MissingIngredients   []string          `json:"missing_ingredients"`
	NearExpiryItems      []InventoryItem   `json:"near_expiry_items"`
	Matches              []IngredientMatch `json:"matches"`
	Breakdown            ScoreBreakdown    `json:"breakdown"`
	TotalScore           float64           `json:"total_score"`
	MatchPercentage      int               `json:"match_percentage"`
}

// NearExpiryIngredientCount counts recipe lines satisfied by a near-expiry item.
func (s RecipeScore) NearExpiryIngredientCount() int {
	n := 0
	for _, m := range s.Matches {
		if m.Available && m.NearExpiry {
			n++
		}
	}
	return n
}

// Fingerprint is a stable summary of inventory state.
type Fingerprint string

// CachedMatchResult wraps a score with the inventory fingerprint it was computed against.
type CachedMatchResult struct {
	CreatedAt   time.Time   `json:"created_at"`
	Fingerprint Fingerprint `json:"fingerprint"`
	Score       RecipeScore `json:"score"`
}
