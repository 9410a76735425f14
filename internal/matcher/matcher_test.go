package matcher

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/larder/internal/common"
	"github.com/Veraticus/larder/internal/model"
)

func testCatalog() []model.CanonicalIngredient {
	return []model.CanonicalIngredient{
		{ID: "olive-oil", Name: "olive oil", Category: "oil", Aliases: []string{"evoo", "extra virgin olive oil"}},
		{ID: "scallion", Name: "scallion", Category: "produce"},
		{ID: "tomato-paste", Name: "tomato paste", Category: "pantry"},
		{ID: "salt", Name: "salt", Category: "spice"},
		{ID: "salmon", Name: "salmon", Category: "seafood"},
		{ID: "chickpea", Name: "chickpea", Category: "legume", Aliases: []string{"garbanzo beans"}},
		{ID: "cilantro", Name: "cilantro", Category: "herb"},
		{ID: "coriander", Name: "coriander", Category: "spice", Aliases: []string{"cilantro"}},
	}
}

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	m, err := New(testCatalog(), DefaultConfig())
	require.NoError(t, err)
	return m
}

func TestMatcher_Match(t *testing.T) {
	m := newTestMatcher(t)

	tests := []struct {
		name       string
		input      string
		wantID     string
		wantReason model.MatchReason
		minConf    float64
		maxConf    float64
	}{
		{name: "exact", input: "olive oil", wantID: "olive-oil", wantReason: model.ReasonExact, minConf: 1, maxConf: 1},
		{name: "alias", input: "evoo", wantID: "olive-oil", wantReason: model.ReasonAlias, minConf: 0.9, maxConf: 0.9},
		{name: "normalized alias", input: "garbanzo bean", wantID: "chickpea", wantReason: model.ReasonAlias, minConf: 0.9, maxConf: 0.9},
		{name: "exact outranks alias", input: "cilantro", wantID: "cilantro", wantReason: model.ReasonExact, minConf: 1, maxConf: 1},
		{name: "category", input: "green onion", wantID: "scallion", wantReason: model.ReasonCategory, minConf: 0.6, maxConf: 0.75},
		{name: "fuzzy", input: "tomatoe paste", wantID: "tomato-paste", wantReason: model.ReasonFuzzy, minConf: 0.47, maxConf: 0.59},
		{name: "no match", input: "chocolate", wantReason: model.ReasonNoMatch},
		{name: "one letter off", input: "salty", wantID: "salt", wantReason: model.ReasonFuzzy, minConf: 0.47, maxConf: 0.59},
		{name: "empty", input: "", wantReason: model.ReasonNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.input)

			assert.Equal(t, tt.wantReason, got.Reason)
			assert.Equal(t, tt.wantID, got.ID())
			assert.GreaterOrEqual(t, got.Confidence, tt.minConf)
			assert.LessOrEqual(t, got.Confidence, tt.maxConf)
			assert.NotEmpty(t, got.DebugPath)
			if tt.wantReason == model.ReasonNoMatch {
				assert.Nil(t, got.CanonicalID)
				assert.Zero(t, got.Confidence)
			}
		})
	}
}

func TestMatcher_SaltIsNotSalmon(t *testing.T) {
	m, err := New([]model.CanonicalIngredient{{ID: "salmon", Name: "salmon"}}, DefaultConfig())
	require.NoError(t, err)

	got := m.Match("salt")
	assert.Equal(t, model.ReasonNoMatch, got.Reason)
}

func TestMatcher_CategoryOnlyCatalog(t *testing.T) {
	m, err := New([]model.CanonicalIngredient{{ID: "scallion", Name: "scallion"}}, DefaultConfig())
	require.NoError(t, err)

	got := m.Match("green onion")
	require.True(t, got.Matched())
	assert.Equal(t, "scallion", got.ID())
	assert.Equal(t, model.ReasonCategory, got.Reason)

	tiers := make([]string, 0, len(got.DebugPath))
	for _, step := range got.DebugPath {
		tiers = append(tiers, step.Tier)
	}
	assert.Equal(t, []string{TierInput, TierExact, TierAlias, TierCategory}, tiers)
	assert.Equal(t, "hit", got.DebugPath[len(got.DebugPath)-1].Outcome)
}

func TestMatcher_ExplicitGroups(t *testing.T) {
	catalog := []model.CanonicalIngredient{
		{ID: "ghee", Name: "ghee", Groups: []string{"butter"}},
	}
	cfg := DefaultConfig()
	cfg.Taxonomy = map[string][]string{"butter": {"butter", "clarified butter"}}

	m, err := New(catalog, cfg)
	require.NoError(t, err)

	got := m.Match("clarified butter")
	assert.Equal(t, model.ReasonCategory, got.Reason)
	assert.Equal(t, "ghee", got.ID())
}

func TestMatcher_CategoryRequiresHeadNoun(t *testing.T) {
	m, err := New([]model.CanonicalIngredient{
		{ID: "rice", Name: "rice"},
		{ID: "onion", Name: "onion"},
		{ID: "jalapeno", Name: "jalapeno"},
	}, DefaultConfig())
	require.NoError(t, err)

	tests := []struct {
		name       string
		input      string
		wantID     string
		wantReason model.MatchReason
	}{
		{name: "rice vinegar is not rice", input: "rice vinegar"},
		{name: "onion powder is not onion", input: "onion powder"},
		{name: "chili powder is not a chili", input: "chili powder"},
		{name: "rice flour is not rice", input: "rice flour"},
		{name: "red onion is an onion", input: "red onion", wantID: "onion", wantReason: model.ReasonCategory},
		{name: "basmati rice is rice", input: "basmati rice", wantID: "rice", wantReason: model.ReasonCategory},
		{name: "serrano pepper is a chili", input: "serrano pepper", wantID: "jalapeno", wantReason: model.ReasonCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.input)

			if tt.wantID == "" {
				assert.NotEqual(t, model.ReasonCategory, got.Reason)
				assert.Less(t, got.Confidence, 0.45)
				return
			}
			assert.Equal(t, tt.wantReason, got.Reason)
			assert.Equal(t, tt.wantID, got.ID())
		})
	}
}

func TestMatcher_NoMatchTracesEveryTier(t *testing.T) {
	m := newTestMatcher(t)

	got := m.Match("chocolate")
	require.Len(t, got.DebugPath, 5)
	for _, step := range got.DebugPath[1:] {
		assert.Equal(t, "miss", step.Outcome, step.String())
	}
}

func TestMatcher_Idempotent(t *testing.T) {
	m := newTestMatcher(t)

	for _, in := range []string{"olive oil", "green onion", "tomatoe paste", "chocolate"} {
		assert.Equal(t, m.Match(in), m.Match(in))
	}
}

func TestMatcher_MatchRaw(t *testing.T) {
	m := newTestMatcher(t)

	got := m.MatchRaw("Fresh Scallions")
	assert.Equal(t, "scallion", got.ID())
	assert.Equal(t, model.ReasonExact, got.Reason)
}

func TestMatcher_ConcurrentUse(t *testing.T) {
	m := newTestMatcher(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Equal(t, "olive-oil", m.Match("evoo").ID())
			}
		}()
	}
	wg.Wait()
}

func TestNew(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		_, err := New(nil, DefaultConfig())
		assert.ErrorIs(t, err, common.ErrEmptyCatalog)
	})

	t.Run("only entries without ids", func(t *testing.T) {
		_, err := New([]model.CanonicalIngredient{{Name: "salt"}}, DefaultConfig())
		assert.ErrorIs(t, err, common.ErrEmptyCatalog)
	})

	t.Run("duplicates are skipped", func(t *testing.T) {
		m, err := New([]model.CanonicalIngredient{
			{ID: "salt", Name: "salt"},
			{ID: "salt", Name: "sea salt"},
		}, DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, 1, m.Size())

		ing, ok := m.Lookup("salt")
		require.True(t, ok)
		assert.Equal(t, "salt", ing.Name)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.FuzzyMaxConfidence = 0.7
		_, err := New(testCatalog(), cfg)
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		mutate  func(*Config)
		name    string
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "alias at one", mutate: func(c *Config) { c.AliasConfidence = 1 }, wantErr: true},
		{name: "category above alias", mutate: func(c *Config) { c.CategoryMaxConfidence = 0.95 }, wantErr: true},
		{name: "category range inverted", mutate: func(c *Config) { c.CategoryMinConfidence = 0.8 }, wantErr: true},
		{name: "fuzzy above category", mutate: func(c *Config) { c.FuzzyMaxConfidence = 0.65 }, wantErr: true},
		{name: "zero threshold", mutate: func(c *Config) { c.FuzzyThreshold = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("salt", "salt"), 1e-9)
	assert.Zero(t, Similarity("", "salt"))
	assert.Less(t, Similarity("salt", "salmon"), DefaultConfig().FuzzyThreshold)
	assert.GreaterOrEqual(t, Similarity("tomatoe paste", "tomato paste"), DefaultConfig().FuzzyThreshold)
	assert.InDelta(t, Similarity("red wine vinegar", "vinegar"), Similarity("vinegar", "red wine vinegar"), 1e-9)
}
