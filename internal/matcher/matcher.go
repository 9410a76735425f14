// Package matcher resolves normalized ingredient names to canonical catalog entries.
//
// Resolution is tiered and the first tier to succeed wins:
//
//  1. exact: the name equals a canonical name (confidence 1.0)
//  2. alias: the name equals one of an entry's aliases
//  3. category: the name shares a taxonomy group with an entry
//  4. fuzzy: string similarity above a threshold
//
// Every attempted tier is recorded in the result's debug path. A Matcher is
// read-only after construction and safe for concurrent use.
package matcher

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Veraticus/larder/internal/common"
	"github.com/Veraticus/larder/internal/model"
	"github.com/Veraticus/larder/internal/normalize"
)

// Tier names used in debug paths.
const (
	TierInput    = "input"
	TierExact    = "exact"
	TierAlias    = "alias"
	TierCategory = "category"
	TierFuzzy    = "fuzzy"
)

// entry is a catalog item with its precomputed matching keys.
type entry struct {
	groups  map[string]struct{}
	key     string
	aliases []string
	ing     model.CanonicalIngredient
}

// Matcher matches names against one catalog snapshot.
type Matcher struct {
	normalizer *normalize.Normalizer
	byName     map[string]int
	byAlias    map[string]int
	byID       map[string]int
	keywords   []keyword
	entries    []entry
	cfg        Config
}

// keyword places a name in a taxonomy group.
type keyword struct {
	phrase string
	group  string
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithNormalizer sets the normalizer used for catalog keys and MatchRaw.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(m *Matcher) {
		m.normalizer = n
	}
}

// New builds a matcher over catalog. It fails on an empty catalog or invalid config.
func New(catalog []model.CanonicalIngredient, cfg Config, opts ...Option) (*Matcher, error) {
	if len(catalog) == 0 {
		return nil, common.ErrEmptyCatalog
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Matcher{
		cfg:        cfg,
		normalizer: normalize.New(),
		byName:     make(map[string]int, len(catalog)),
		byAlias:    make(map[string]int),
		byID:       make(map[string]int, len(catalog)),
	}
	for _, opt := range opts {
		opt(m)
	}

	taxonomy := cfg.Taxonomy
	if taxonomy == nil {
		taxonomy = DefaultTaxonomy
	}
	m.keywords = buildKeywords(m.normalizer, taxonomy)

	sorted := make([]model.CanonicalIngredient, len(catalog))
	copy(sorted, catalog)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, ing := range sorted {
		if strings.TrimSpace(ing.ID) == "" {
			slog.Warn("Skipping canonical ingredient without id", "name", ing.Name)
			continue
		}
		if _, dup := m.byID[ing.ID]; dup {
			slog.Warn("Skipping duplicate canonical ingredient", "id", ing.ID, "name", ing.Name)
			continue
		}

		e := entry{
			ing:    ing,
			key:    m.normalizer.Normalize(ing.Name),
			groups: make(map[string]struct{}),
		}
		for _, g := range ing.Groups {
			e.groups[strings.ToLower(strings.TrimSpace(g))] = struct{}{}
		}
		for _, g := range m.groupsOf(e.key) {
			e.groups[g] = struct{}{}
		}
		for _, a := range ing.Aliases {
			if key := m.normalizer.Normalize(a); key != "" {
				e.aliases = append(e.aliases, key)
			}
		}

		idx := len(m.entries)
		m.entries = append(m.entries, e)
		m.byID[ing.ID] = idx

		// First entry by ID wins when two entries share a key.
		if _, taken := m.byName[e.key]; !taken && e.key != "" {
			m.byName[e.key] = idx
		}
		for _, a := range e.aliases {
			if _, taken := m.byAlias[a]; !taken {
				m.byAlias[a] = idx
			}
		}
	}

	if len(m.entries) == 0 {
		return nil, fmt.Errorf("%w: no entry has an id", common.ErrEmptyCatalog)
	}

	return m, nil
}

func buildKeywords(n *normalize.Normalizer, taxonomy map[string][]string) []keyword {
	var out []keyword
	for group, words := range taxonomy {
		for _, w := range words {
			if phrase := n.Normalize(w); phrase != "" {
				out = append(out, keyword{phrase: phrase, group: group})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].group != out[j].group {
			return out[i].group < out[j].group
		}
		return out[i].phrase < out[j].phrase
	})
	return out
}

// groupsOf returns the sorted taxonomy groups whose keywords name the head of
// key, i.e. its trailing words. A keyword used as a modifier ("rice" in "rice
// vinegar", "onion" in "onion powder") describes a different food and does not
// place the name in a group.
func (m *Matcher) groupsOf(key string) []string {
	if key == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var groups []string
	for _, kw := range m.keywords {
		if _, ok := seen[kw.group]; ok {
			continue
		}
		if key == kw.phrase || strings.HasSuffix(key, " "+kw.phrase) {
			seen[kw.group] = struct{}{}
			groups = append(groups, kw.group)
		}
	}
	sort.Strings(groups)
	return groups
}

// Size returns the number of catalog entries.
func (m *Matcher) Size() int {
	return len(m.entries)
}

// Lookup returns the canonical ingredient with the given id.
func (m *Matcher) Lookup(id string) (model.CanonicalIngredient, bool) {
	idx, ok := m.byID[id]
	if !ok {
		return model.CanonicalIngredient{}, false
	}
	return m.entries[idx].ing, true
}

// MatchRaw normalizes text and matches it.
func (m *Matcher) MatchRaw(text string) model.MatchResult {
	return m.Match(m.normalizer.Normalize(text))
}

// Match resolves an already normalized name.
func (m *Matcher) Match(name string) model.MatchResult {
	key := strings.TrimSpace(name)
	var path []model.TraceStep

	if key == "" {
		path = append(path, model.TraceStep{Tier: TierInput, Outcome: "empty", Detail: "empty name never matches"})
		return noMatch(path)
	}
	path = append(path, model.TraceStep{Tier: TierInput, Outcome: "ok", Detail: key})

	if idx, ok := m.byName[key]; ok {
		path = append(path, model.TraceStep{Tier: TierExact, Outcome: "hit", Detail: m.entries[idx].ing.ID})
		return m.hit(idx, 1.0, model.ReasonExact, path)
	}
	path = append(path, model.TraceStep{Tier: TierExact, Outcome: "miss", Detail: "no canonical name equals input"})

	if idx, ok := m.byAlias[key]; ok {
		path = append(path, model.TraceStep{Tier: TierAlias, Outcome: "hit", Detail: m.entries[idx].ing.ID})
		return m.hit(idx, m.cfg.AliasConfidence, model.ReasonAlias, path)
	}
	path = append(path, model.TraceStep{Tier: TierAlias, Outcome: "miss", Detail: "no alias equals input"})

	idx, sim, step := m.matchCategory(key)
	path = append(path, step)
	if idx >= 0 {
		span := m.cfg.CategoryMaxConfidence - m.cfg.CategoryMinConfidence
		return m.hit(idx, m.cfg.CategoryMinConfidence+span*sim, model.ReasonCategory, path)
	}

	idx, sim, step = m.matchFuzzy(key)
	path = append(path, step)
	if idx >= 0 {
		return m.hit(idx, sim*m.cfg.FuzzyMaxConfidence, model.ReasonFuzzy, path)
	}

	slog.Debug("No canonical match", "name", key)
	return noMatch(path)
}

func (m *Matcher) hit(idx int, confidence float64, reason model.MatchReason, path []model.TraceStep) model.MatchResult {
	id := m.entries[idx].ing.ID
	slog.Debug("Matched canonical ingredient", "id", id, "reason", reason, "confidence", confidence)
	return model.MatchResult{
		CanonicalID: &id,
		Confidence:  confidence,
		Reason:      reason,
		DebugPath:   path,
	}
}

func noMatch(path []model.TraceStep) model.MatchResult {
	return model.MatchResult{
		Reason:    model.ReasonNoMatch,
		DebugPath: path,
	}
}

// matchCategory finds the most similar entry sharing a taxonomy group with key.
func (m *Matcher) matchCategory(key string) (int, float64, model.TraceStep) {
	groups := m.groupsOf(key)
	if len(groups) == 0 {
		return -1, 0, model.TraceStep{Tier: TierCategory, Outcome: "miss", Detail: "no taxonomy group for input"}
	}

	best, bestSim := -1, -1.0
	for i, e := range m.entries {
		if !sharesGroup(e.groups, groups) {
			continue
		}
		if sim := m.bestSimilarity(key, e); sim > bestSim {
			best, bestSim = i, sim
		}
	}

	if best < 0 {
		return -1, 0, model.TraceStep{
			Tier:    TierCategory,
			Outcome: "miss",
			Detail:  fmt.Sprintf("no entry in groups %s", strings.Join(groups, ",")),
		}
	}
	return best, bestSim, model.TraceStep{
		Tier:    TierCategory,
		Outcome: "hit",
		Detail:  fmt.Sprintf("%s via groups %s", m.entries[best].ing.ID, strings.Join(groups, ",")),
	}
}

func sharesGroup(have map[string]struct{}, want []string) bool {
	for _, g := range want {
		if _, ok := have[g]; ok {
			return true
		}
	}
	return false
}

// matchFuzzy finds the most similar entry above the configured threshold.
func (m *Matcher) matchFuzzy(key string) (int, float64, model.TraceStep) {
	best, bestSim := -1, -1.0
	for i, e := range m.entries {
		if sim := m.bestSimilarity(key, e); sim > bestSim {
			best, bestSim = i, sim
		}
	}

	if best < 0 || bestSim < m.cfg.FuzzyThreshold {
		detail := "catalog empty"
		if best >= 0 {
			detail = fmt.Sprintf("best %s at %.2f below threshold %.2f", m.entries[best].ing.ID, bestSim, m.cfg.FuzzyThreshold)
		}
		return -1, 0, model.TraceStep{Tier: TierFuzzy, Outcome: "miss", Detail: detail}
	}
	return best, bestSim, model.TraceStep{
		Tier:    TierFuzzy,
		Outcome: "hit",
		Detail:  fmt.Sprintf("%s at %.2f", m.entries[best].ing.ID, bestSim),
	}
}

func (m *Matcher) bestSimilarity(key string, e entry) float64 {
	best := Similarity(key, e.key)
	for _, a := range e.aliases {
		if s := Similarity(key, a); s > best {
			best = s
		}
	}
	return best
}
