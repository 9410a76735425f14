// Package scoring computes how cookable a recipe is against an inventory.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/larder/internal/cache"
	"github.com/Veraticus/larder/internal/matcher"
	"github.com/Veraticus/larder/internal/model"
	"github.com/Veraticus/larder/internal/parser"
	"github.com/Veraticus/larder/internal/units"
)

// quantityEpsilon absorbs float error from unit conversion.
const quantityEpsilon = 1e-9

// Scorer scores recipes. It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	matcher  *matcher.Matcher
	now      func() time.Time
	bonuses  map[string]float64
	keywords []string
	cfg      Config
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithClock sets the clock used for near-expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		s.now = now
	}
}

// New creates a Scorer that resolves ingredients through m.
func New(m *matcher.Matcher, cfg Config, opts ...Option) (*Scorer, error) {
	if m == nil {
		return nil, errors.New("scorer requires a matcher")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scorer{
		matcher: m,
		cfg:     cfg,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.bonuses = make(map[string]float64, len(cfg.CategoryBonuses))
	for keyword, bonus := range cfg.CategoryBonuses {
		s.bonuses[strings.ToLower(keyword)] += bonus
	}
	for keyword := range s.bonuses {
		s.keywords = append(s.keywords, keyword)
	}
	sort.Strings(s.keywords)

	return s, nil
}

// Config returns the scorer's configuration.
func (s *Scorer) Config() Config {
	return s.cfg
}

// InventoryIndex groups in-stock inventory by canonical id. Build it once with
// Index and reuse it across many recipes.
type InventoryIndex struct {
	byCanonical map[string][]model.InventoryItem
	unresolved  []string
}

// Unresolved returns the names of in-stock items that matched no canonical entry.
func (idx *InventoryIndex) Unresolved() []string {
	return idx.unresolved
}

// Items returns the in-stock items resolved to canonicalID.
func (idx *InventoryIndex) Items(canonicalID string) []model.InventoryItem {
	return idx.byCanonical[canonicalID]
}

// Index resolves every in-stock inventory item to a canonical id.
func (s *Scorer) Index(inventory []model.InventoryItem) *InventoryIndex {
	idx := &InventoryIndex{byCanonical: make(map[string][]model.InventoryItem)}

	for _, item := range inventory {
		if !item.InStock() {
			continue
		}

		id := ""
		if item.CanonicalID != nil && *item.CanonicalID != "" {
			id = *item.CanonicalID
		} else if res := s.matcher.MatchRaw(item.Name); res.Matched() && res.Confidence >= s.cfg.ConfidenceFloor {
			id = res.ID()
		}

		if id == "" {
			idx.unresolved = append(idx.unresolved, item.Name)
			continue
		}
		idx.byCanonical[id] = append(idx.byCanonical[id], item)
	}
	return idx
}

// Fingerprint keys cached scores for inventory at the scorer's current time.
func (s *Scorer) Fingerprint(inventory []model.InventoryItem) model.Fingerprint {
	return cache.Fingerprint(inventory, s.now(), s.cfg.NearExpiryWindow)
}

// Score scores one recipe against inventory.
func (s *Scorer) Score(recipe model.Recipe, inventory []model.InventoryItem) model.RecipeScore {
	return s.ScoreIndexed(recipe, s.Index(inventory))
}

// ScoreIndexed scores one recipe against a prebuilt inventory index.
func (s *Scorer) ScoreIndexed(recipe model.Recipe, idx *InventoryIndex) model.RecipeScore {
	score := model.RecipeScore{
		Recipe:               recipe,
		AvailableIngredients: []string{},
		MissingIngredients:   []string{},
		NearExpiryItems:      []model.InventoryItem{},
		Matches:              make([]model.IngredientMatch, 0, len(recipe.Ingredients)),
	}

	total := len(recipe.Ingredients)
	if total == 0 {
		return score
	}

	now := s.now()
	seenExpiring := make(map[string]struct{})
	available, expiring := 0, 0

	for _, ri := range recipe.Ingredients {
		im := s.judge(ri, idx, now)
		score.Matches = append(score.Matches, im.IngredientMatch)

		if !im.Available {
			score.MissingIngredients = append(score.MissingIngredients, im.Name)
			continue
		}

		available++
		score.AvailableIngredients = append(score.AvailableIngredients, im.Name)
		if im.NearExpiry {
			expiring++
			for _, item := range im.expiring {
				if _, ok := seenExpiring[item.ID]; ok {
					continue
				}
				seenExpiring[item.ID] = struct{}{}
				score.NearExpiryItems = append(score.NearExpiryItems, item)
			}
		}
	}

	score.MatchPercentage = int(math.Round(100 * float64(available) / float64(total)))
	score.Breakdown = model.ScoreBreakdown{
		BaseMatch:     100 * float64(available) / float64(total),
		ExpiringBonus: math.Min(s.cfg.ExpiringBonusPerItem*float64(expiring), s.cfg.ExpiringBonusCap),
		CategoryBonus: s.categoryBonus(recipe),
	}
	score.TotalScore = s.cfg.BaseWeight*score.Breakdown.BaseMatch +
		s.cfg.ExpiringWeight*score.Breakdown.ExpiringBonus +
		s.cfg.CategoryWeight*score.Breakdown.CategoryBonus

	return score
}

// judgement is an IngredientMatch plus the near-expiry items backing it.
type judgement struct {
	expiring []model.InventoryItem
	model.IngredientMatch
}

func (s *Scorer) judge(ri model.RecipeIngredient, idx *InventoryIndex, now time.Time) judgement {
	if ri.Parsed == nil {
		p := parser.Parse(ri.Raw)
		ri.Parsed = &p
	}
	parsed := ri.Parsed
	name := strings.TrimSpace(ri.DisplayName())

	j := judgement{IngredientMatch: model.IngredientMatch{Name: name}}
	j.Match = s.resolve(ri, name)

	if !j.Match.Matched() || j.Match.Confidence < s.cfg.ConfidenceFloor {
		j.Note = fmt.Sprintf("no canonical ingredient above confidence %.2f", s.cfg.ConfidenceFloor)
		return j
	}

	candidates := idx.byCanonical[j.Match.ID()]
	if len(candidates) == 0 {
		j.Note = "not in inventory"
		return j
	}

	qty, unit, hasQty := required(ri, parsed)
	if hasQty {
		var ing *model.CanonicalIngredient
		if c, ok := s.matcher.Lookup(j.Match.ID()); ok {
			ing = &c
		}

		sum, converted := 0.0, false
		for _, item := range candidates {
			if res := units.Convert(item.Quantity, item.Unit, unit, ing); res.OK {
				sum += res.Value
				converted = true
			}
		}

		if converted {
			met := sum+quantityEpsilon >= qty
			j.QuantityMet = &met
			if !met {
				j.Note = fmt.Sprintf("have %.4g %s, need %.4g", sum, unit, qty)
				return j
			}
		} else {
			j.Note = "quantities not comparable, presence counted"
		}
	}

	j.Available = true
	for _, item := range candidates {
		if item.ExpiresWithin(now, s.cfg.NearExpiryWindow) {
			j.expiring = append(j.expiring, item)
		}
	}
	j.NearExpiry = len(j.expiring) > 0

	return j
}

// resolve maps a recipe line to a canonical id. A pre-resolved id always wins.
func (s *Scorer) resolve(ri model.RecipeIngredient, name string) model.MatchResult {
	if ri.CanonicalID != nil && *ri.CanonicalID != "" {
		id := *ri.CanonicalID
		return model.MatchResult{
			CanonicalID: &id,
			Confidence:  1,
			Reason:      model.ReasonExact,
			DebugPath:   []model.TraceStep{{Tier: matcher.TierInput, Outcome: "pre-resolved", Detail: id}},
		}
	}
	return s.matcher.MatchRaw(name)
}

// required returns the quantity a recipe line asks for. Explicit values on the
// line override the parsed ones.
func required(ri model.RecipeIngredient, parsed *model.ParsedIngredient) (float64, string, bool) {
	switch {
	case ri.Quantity != nil:
		return *ri.Quantity, ri.Unit, *ri.Quantity > 0
	case parsed.HasQuantity():
		return *parsed.Quantity, parsed.UnitOrEmpty(), *parsed.Quantity > 0
	}
	return 0, "", false
}

func (s *Scorer) categoryBonus(recipe model.Recipe) float64 {
	if len(s.keywords) == 0 {
		return 0
	}

	haystack := strings.ToLower(recipe.Category + " " + strings.Join(recipe.Tags, " "))
	bonus := 0.0
	for _, keyword := range s.keywords {
		if strings.Contains(haystack, keyword) {
			bonus += s.bonuses[keyword]
		}
	}
	return bonus
}
