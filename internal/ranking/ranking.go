// Package ranking buckets scored recipes into discovery sections.
//
// Categorize is pure: the same scores and config always produce the same
// sections in the same order.
package ranking

import (
	"sort"
	"time"

	"github.com/Veraticus/larder/internal/common"
	"github.com/Veraticus/larder/internal/model"
)

// Config holds section thresholds.
type Config struct {
	ReadyThreshold int
	AlmostThereMin int
	DiscoveryMin   int
	QuickMaxTime   time.Duration
	MaxPerSection  int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ReadyThreshold: 90,
		AlmostThereMin: 50,
		DiscoveryMin:   25,
		QuickMaxTime:   30 * time.Minute,
		MaxPerSection:  20,
	}
}

// Validate checks that percentage bands are ordered within [0,100].
func (c Config) Validate() error {
	switch {
	case c.DiscoveryMin < 0 || c.ReadyThreshold > 100:
		return common.InvalidConfig("section thresholds must be within [0,100]")
	case c.DiscoveryMin > c.AlmostThereMin || c.AlmostThereMin > c.ReadyThreshold:
		return common.InvalidConfig("thresholds must satisfy discovery %d <= almost there %d <= ready %d",
			c.DiscoveryMin, c.AlmostThereMin, c.ReadyThreshold)
	case c.QuickMaxTime <= 0:
		return common.InvalidConfig("quick max time must be positive, got %s", c.QuickMaxTime)
	case c.MaxPerSection <= 0:
		return common.InvalidConfig("max per section must be positive, got %d", c.MaxPerSection)
	}
	return nil
}

// Section keys.
const (
	KeyReadyToCook = "ready_to_cook"
	KeyUseItUp     = "use_it_up"
	KeyAlmostThere = "almost_there"
	KeyDiscoveries = "discoveries"
	KeyQuick       = "quick"
)

// Sections are the discovery buckets. A recipe may appear in several sections
// but at most once in each.
type Sections struct {
	ReadyToCook []model.RecipeScore `json:"ready_to_cook"`
	UseItUp     []model.RecipeScore `json:"use_it_up"`
	AlmostThere []model.RecipeScore `json:"almost_there"`
	Discoveries []model.RecipeScore `json:"discoveries"`
	Quick       []model.RecipeScore `json:"quick"`
}

// Section is one titled bucket.
type Section struct {
	Key     string
	Title   string
	Recipes []model.RecipeScore
}

// List returns the sections in display order.
func (s Sections) List() []Section {
	return []Section{
		{Key: KeyReadyToCook, Title: "Ready to Cook", Recipes: s.ReadyToCook},
		{Key: KeyUseItUp, Title: "Use It Up", Recipes: s.UseItUp},
		{Key: KeyAlmostThere, Title: "Almost There", Recipes: s.AlmostThere},
		{Key: KeyDiscoveries, Title: "Discoveries", Recipes: s.Discoveries},
		{Key: KeyQuick, Title: "Quick", Recipes: s.Quick},
	}
}

// Categorize buckets scores. Config is assumed valid.
func Categorize(scores []model.RecipeScore, cfg Config) Sections {
	var ready, useUp, almost, discover, quick []model.RecipeScore

	for _, s := range scores {
		pct := s.MatchPercentage
		switch {
		case pct >= cfg.ReadyThreshold:
			ready = append(ready, s)
		case pct >= cfg.AlmostThereMin:
			almost = append(almost, s)
		case pct >= cfg.DiscoveryMin:
			discover = append(discover, s)
		}

		if s.NearExpiryIngredientCount() > 0 {
			useUp = append(useUp, s)
		}
		if total := s.Recipe.TotalTime(); total > 0 && total <= cfg.QuickMaxTime {
			quick = append(quick, s)
		}
	}

	return Sections{
		ReadyToCook: rank(ready, byReadiness, cfg.MaxPerSection),
		UseItUp:     rank(useUp, byExpiring, cfg.MaxPerSection),
		AlmostThere: rank(almost, byTotalScore, cfg.MaxPerSection),
		Discoveries: rank(discover, byTotalScore, cfg.MaxPerSection),
		Quick:       rank(quick, byPercentage, cfg.MaxPerSection),
	}
}

// comparator reports whether a ranks strictly before b, or ok=false on a tie.
type comparator func(a, b model.RecipeScore) (before, ok bool)

// rankedScores implements sort.Interface with a primary comparator and a
// name-then-id tie-break.
type rankedScores struct {
	cmp    comparator
	scores []model.RecipeScore
}

func (r rankedScores) Len() int {
	return len(r.scores)
}

func (r rankedScores) Less(i, j int) bool {
	a, b := r.scores[i], r.scores[j]
	if before, ok := r.cmp(a, b); ok {
		return before
	}
	if a.Recipe.Name != b.Recipe.Name {
		return a.Recipe.Name < b.Recipe.Name
	}
	return a.Recipe.ID < b.Recipe.ID
}

func (r rankedScores) Swap(i, j int) {
	r.scores[i], r.scores[j] = r.scores[j], r.scores[i]
}

func rank(scores []model.RecipeScore, cmp comparator, limit int) []model.RecipeScore {
	out := make([]model.RecipeScore, len(scores))
	copy(out, scores)
	sort.Sort(rankedScores{scores: out, cmp: cmp})

	seen := make(map[string]struct{}, len(out))
	deduped := out[:0]
	for _, s := range out {
		if _, dup := seen[s.Recipe.ID]; dup {
			continue
		}
		seen[s.Recipe.ID] = struct{}{}
		deduped = append(deduped, s)
		if len(deduped) == limit {
			break
		}
	}
	return deduped
}

func byReadiness(a, b model.RecipeScore) (bool, bool) {
	if a.MatchPercentage != b.MatchPercentage {
		return a.MatchPercentage > b.MatchPercentage, true
	}
	if len(a.MissingIngredients) != len(b.MissingIngredients) {
		return len(a.MissingIngredients) < len(b.MissingIngredients), true
	}
	if a.Recipe.TotalTime() != b.Recipe.TotalTime() {
		return a.Recipe.TotalTime() < b.Recipe.TotalTime(), true
	}
	return false, false
}

func byExpiring(a, b model.RecipeScore) (bool, bool) {
	if ea, eb := a.NearExpiryIngredientCount(), b.NearExpiryIngredientCount(); ea != eb {
		return ea > eb, true
	}
	return byPercentage(a, b)
}

func byTotalScore(a, b model.RecipeScore) (bool, bool) {
	if a.TotalScore != b.TotalScore {
		return a.TotalScore > b.TotalScore, true
	}
	return false, false
}

func byPercentage(a, b model.RecipeScore) (bool, bool) {
	if a.MatchPercentage != b.MatchPercentage {
		return a.MatchPercentage > b.MatchPercentage, true
	}
	return false, false
}
