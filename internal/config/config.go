// Package config loads engine settings from viper onto the component defaults.
package config

import (
	"fmt"
	"time"

	"github.com/Veraticus/larder/internal/cache"
	"github.com/Veraticus/larder/internal/job"
	"github.com/Veraticus/larder/internal/matcher"
	"github.com/Veraticus/larder/internal/ranking"
	"github.com/Veraticus/larder/internal/scoring"
	"github.com/spf13/viper"
)

// Config aggregates the settings of every engine component.
type Config struct {
	DatabasePath string
	LogLevel     string
	LogFormat    string
	Matcher      matcher.Config
	Scoring      scoring.Config
	Cache        cache.Config
	Ranking      ranking.Config
	Job          job.Config
}

// DefaultConfig returns the package defaults of each component.
func DefaultConfig() Config {
	return Config{
		DatabasePath: DefaultDatabasePath(),
		LogLevel:     "info",
		LogFormat:    "console",
		Matcher:      matcher.DefaultConfig(),
		Scoring:      scoring.DefaultConfig(),
		Cache:        cache.DefaultConfig(),
		Ranking:      ranking.DefaultConfig(),
		Job:          job.DefaultConfig(),
	}
}

// Validate validates every component configuration.
func (c Config) Validate() error {
	validators := []struct {
		validate func() error
		name     string
	}{
		{c.Matcher.Validate, "matching"},
		{c.Scoring.Validate, "scoring"},
		{c.Cache.Validate, "cache"},
		{c.Ranking.Validate, "ranking"},
		{c.Job.Validate, "job"},
	}
	for _, v := range validators {
		if err := v.validate(); err != nil {
			return fmt.Errorf("%s: %w", v.name, err)
		}
	}
	return nil
}

// Load overlays the keys set in v onto DefaultConfig and validates the result.
// Keys that are not set keep their defaults.
func Load(v *viper.Viper) (Config, error) {
	cfg := DefaultConfig()
	if v == nil {
		return cfg, nil
	}

	setString(v, "database.path", &cfg.DatabasePath)
	cfg.DatabasePath = ExpandPath(cfg.DatabasePath)
	setString(v, "logging.level", &cfg.LogLevel)
	setString(v, "logging.format", &cfg.LogFormat)

	setFloat(v, "matching.alias_confidence", &cfg.Matcher.AliasConfidence)
	setFloat(v, "matching.category_min_confidence", &cfg.Matcher.CategoryMinConfidence)
	setFloat(v, "matching.category_max_confidence", &cfg.Matcher.CategoryMaxConfidence)
	setFloat(v, "matching.fuzzy_threshold", &cfg.Matcher.FuzzyThreshold)
	setFloat(v, "matching.fuzzy_max_confidence", &cfg.Matcher.FuzzyMaxConfidence)
	if v.IsSet("matching.taxonomy") {
		var taxonomy map[string][]string
		if err := v.UnmarshalKey("matching.taxonomy", &taxonomy); err != nil {
			return cfg, fmt.Errorf("failed to read matching.taxonomy: %w", err)
		}
		cfg.Matcher.Taxonomy = taxonomy
	}

	setFloat(v, "scoring.confidence_floor", &cfg.Scoring.ConfidenceFloor)
	setDuration(v, "scoring.near_expiry_window", &cfg.Scoring.NearExpiryWindow)
	setFloat(v, "scoring.expiring_bonus_per_item", &cfg.Scoring.ExpiringBonusPerItem)
	setFloat(v, "scoring.expiring_bonus_cap", &cfg.Scoring.ExpiringBonusCap)
	setFloat(v, "scoring.base_weight", &cfg.Scoring.BaseWeight)
	setFloat(v, "scoring.expiring_weight", &cfg.Scoring.ExpiringWeight)
	setFloat(v, "scoring.category_weight", &cfg.Scoring.CategoryWeight)
	if v.IsSet("scoring.category_bonuses") {
		var bonuses map[string]float64
		if err := v.UnmarshalKey("scoring.category_bonuses", &bonuses); err != nil {
			return cfg, fmt.Errorf("failed to read scoring.category_bonuses: %w", err)
		}
		cfg.Scoring.CategoryBonuses = bonuses
	}

	setDuration(v, "cache.ttl", &cfg.Cache.TTL)
	setInt(v, "cache.max_entries", &cfg.Cache.MaxEntries)

	setInt(v, "ranking.ready_threshold", &cfg.Ranking.ReadyThreshold)
	setInt(v, "ranking.almost_there_min", &cfg.Ranking.AlmostThereMin)
	setInt(v, "ranking.discovery_min", &cfg.Ranking.DiscoveryMin)
	setDuration(v, "ranking.quick_max_time", &cfg.Ranking.QuickMaxTime)
	setInt(v, "ranking.max_per_section", &cfg.Ranking.MaxPerSection)

	setInt(v, "job.chunk_size", &cfg.Job.ChunkSize)
	setInt(v, "job.retain_versions", &cfg.Job.RetainVersions)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func setFloat(v *viper.Viper, key string, dst *float64) {
	if v.IsSet(key) {
		*dst = v.GetFloat64(key)
	}
}

func setInt(v *viper.Viper, key string, dst *int) {
	if v.IsSet(key) {
		*dst = v.GetInt(key)
	}
}

func setDuration(v *viper.Viper, key string, dst *time.Duration) {
	if v.IsSet(key) {
		*dst = v.GetDuration(key)
	}
}
