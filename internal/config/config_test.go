package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/larder/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readYAML(t *testing.T, doc string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(doc)))
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	want := DefaultConfig()
	assert.Equal(t, want.Matcher, cfg.Matcher)
	assert.Equal(t, want.Scoring, cfg.Scoring)
	assert.Equal(t, want.Cache, cfg.Cache)
	assert.Equal(t, want.Ranking, cfg.Ranking)
	assert.Equal(t, want.Job, cfg.Job)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoad_Nil(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Scoring.ConfidenceFloor, cfg.Scoring.ConfidenceFloor)
}

func TestLoad_Overrides(t *testing.T) {
	v := readYAML(t, `
database:
  path: /tmp/larder-test.db
logging:
  level: debug
  format: json
matching:
  alias_confidence: 0.85
  fuzzy_threshold: 0.75
  taxonomy:
    allium: [onion, leek]
scoring:
  confidence_floor: 0.5
  near_expiry_window: 72h
  category_bonuses:
    Quick: 3
cache:
  ttl: 5m
  max_entries: 100
ranking:
  ready_threshold: 95
  quick_max_time: 20m
job:
  chunk_size: 10
`)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/larder-test.db", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.InDelta(t, 0.85, cfg.Matcher.AliasConfidence, 1e-9)
	assert.InDelta(t, 0.75, cfg.Matcher.FuzzyThreshold, 1e-9)
	assert.Equal(t, map[string][]string{"allium": {"onion", "leek"}}, cfg.Matcher.Taxonomy)
	assert.InDelta(t, 0.5, cfg.Scoring.ConfidenceFloor, 1e-9)
	assert.Equal(t, 72*time.Hour, cfg.Scoring.NearExpiryWindow)
	// viper lowercases map keys.
	assert.Equal(t, map[string]float64{"quick": 3}, cfg.Scoring.CategoryBonuses)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 100, cfg.Cache.MaxEntries)
	assert.Equal(t, 95, cfg.Ranking.ReadyThreshold)
	assert.Equal(t, 20*time.Minute, cfg.Ranking.QuickMaxTime)
	assert.Equal(t, 10, cfg.Job.ChunkSize)

	// Untouched keys keep their defaults.
	assert.InDelta(t, DefaultConfig().Matcher.CategoryMinConfidence, cfg.Matcher.CategoryMinConfidence, 1e-9)
	assert.Equal(t, DefaultConfig().Job.RetainVersions, cfg.Job.RetainVersions)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "confidence floor above one",
			doc:     "scoring:\n  confidence_floor: 1.5\n",
			wantErr: "scoring",
		},
		{
			name:    "fuzzy confidence above category floor",
			doc:     "matching:\n  fuzzy_max_confidence: 0.7\n",
			wantErr: "matching",
		},
		{
			name:    "zero cache ttl",
			doc:     "cache:\n  ttl: 0s\n",
			wantErr: "cache",
		},
		{
			name:    "inverted ranking bands",
			doc:     "ranking:\n  almost_there_min: 95\n",
			wantErr: "ranking",
		},
		{
			name:    "zero chunk size",
			doc:     "job:\n  chunk_size: 0\n",
			wantErr: "job",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(readYAML(t, tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("LARDER_TEST_DIR", "/srv/larder")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"tilde", "~", home},
		{"tilde prefix", "~/data/larder.db", filepath.Join(home, "data/larder.db")},
		{"env var", "$LARDER_TEST_DIR/larder.db", "/srv/larder/larder.db"},
		{"absolute", "/var/lib/larder.db", "/var/lib/larder.db"},
		{"tilde in middle", "/a/~/b", "/a/~/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
