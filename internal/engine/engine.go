// Package engine wires the matcher, scorer, cache, job scheduler and ranker
// into the single surface the presentation layer talks to.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/larder/internal/cache"
	"github.com/Veraticus/larder/internal/common"
	"github.com/Veraticus/larder/internal/config"
	"github.com/Veraticus/larder/internal/job"
	"github.com/Veraticus/larder/internal/matcher"
	"github.com/Veraticus/larder/internal/model"
	"github.com/Veraticus/larder/internal/parser"
	"github.com/Veraticus/larder/internal/ranking"
	"github.com/Veraticus/larder/internal/scoring"
	"github.com/Veraticus/larder/internal/units"
)

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for expiry checks and cache lifetimes.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithProgressFunc registers a callback for match job progress.
func WithProgressFunc(fn job.ProgressFunc) Option {
	return func(e *Engine) {
		e.onProgress = fn
	}
}

// Engine is safe for concurrent use.
type Engine struct {
	now        func() time.Time
	onProgress job.ProgressFunc
	matcher    *matcher.Matcher
	scorer     *scoring.Scorer
	scheduler  *job.Scheduler
	cache      *cache.Cache
	cfg        config.Config
	mu         sync.RWMutex
}

// New builds an engine over a canonical catalog. It fails on invalid
// configuration or an empty catalog.
func New(catalog []model.CanonicalIngredient, cfg config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		now: time.Now,
		cfg: cfg,
	}
	for _, opt := range opts {
		opt(e)
	}

	c, err := cache.New(cfg.Cache, cache.WithClock(e.now))
	if err != nil {
		return nil, err
	}
	e.cache = c

	if err := e.build(catalog); err != nil {
		return nil, err
	}
	return e, nil
}

// build constructs the catalog-dependent components. Callers hold e.mu or own e exclusively.
func (e *Engine) build(catalog []model.CanonicalIngredient) error {
	m, err := matcher.New(catalog, e.cfg.Matcher)
	if err != nil {
		return err
	}
	s, err := scoring.New(m, e.cfg.Scoring, scoring.WithClock(e.now))
	if err != nil {
		return err
	}

	var jobOpts []job.Option
	if e.onProgress != nil {
		jobOpts = append(jobOpts, job.WithProgressFunc(e.onProgress))
	}
	sched, err := job.New(s, e.cache, e.cfg.Job, jobOpts...)
	if err != nil {
		return err
	}

	e.matcher = m
	e.scorer = s
	e.scheduler = sched
	return nil
}

// SetCatalog replaces the canonical catalog. Any running job is cancelled,
// stored results are dropped and the score cache is cleared, since every
// score depends on how ingredients resolve.
func (e *Engine) SetCatalog(catalog []model.CanonicalIngredient) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	old := e.scheduler
	if err := e.build(catalog); err != nil {
		return fmt.Errorf("failed to rebuild engine: %w", err)
	}
	// The old run may still be scoring a chunk; let it drain so none of its
	// cache writes survive the invalidation.
	old.Cancel()
	_ = old.Wait(context.Background())
	e.cache.InvalidateAll()

	slog.Info("Replaced canonical catalog", "ingredients", e.matcher.Size())
	return nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Parse parses one raw recipe line.
func (e *Engine) Parse(raw string) model.ParsedIngredient {
	return parser.Parse(raw)
}

// Match normalizes name and resolves it against the catalog.
func (e *Engine) Match(name string) model.MatchResult {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.matcher.MatchRaw(name)
}

// Lookup returns a catalog entry by ID.
func (e *Engine) Lookup(id string) (model.CanonicalIngredient, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.matcher.Lookup(id)
}

// Convert converts value between units. canonicalID selects the ingredient
// whose density allows volume to mass conversion; it may be empty.
func (e *Engine) Convert(value float64, from, to, canonicalID string) units.ConversionResult {
	if canonicalID == "" {
		return units.Convert(value, from, to, nil)
	}
	ing, ok := e.Lookup(canonicalID)
	if !ok {
		return units.Convert(value, from, to, nil)
	}
	return units.Convert(value, from, to, &ing)
}

// Score scores one recipe synchronously, serving from the cache when the
// inventory fingerprint matches.
func (e *Engine) Score(recipe model.Recipe, inventory []model.InventoryItem) model.RecipeScore {
	e.mu.RLock()
	defer e.mu.RUnlock()

	fingerprint := e.scorer.Fingerprint(inventory)
	if hit, ok := e.cache.Get(recipe.ID, fingerprint); ok {
		return hit.Score
	}
	score := e.scorer.Score(recipe, inventory)
	e.cache.Put(recipe.ID, fingerprint, score)
	return score
}

// Start begins a match job over recipes for one inventory version,
// superseding any job in progress.
func (e *Engine) Start(ctx context.Context, recipes []model.Recipe, inventory []model.InventoryItem, version int64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	e.scheduler.Start(ctx, recipes, inventory, version)
}

// Cancel stops the current match job.
func (e *Engine) Cancel() {
	e.mu.RLock()
	defer e.mu.RUnlock()
	e.scheduler.Cancel()
}

// Wait blocks until the current match job settles or ctx is done.
func (e *Engine) Wait(ctx context.Context) error {
	e.mu.RLock()
	sched := e.scheduler
	e.mu.RUnlock()
	return sched.Wait(ctx)
}

// Status returns the match job status.
func (e *Engine) Status() model.JobStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scheduler.Status()
}

// Progress returns the match job progress.
func (e *Engine) Progress() model.Progress {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scheduler.Progress()
}

// Result returns one recipe's score at an inventory version.
func (e *Engine) Result(recipeID string, version int64) (model.RecipeScore, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scheduler.Result(recipeID, version)
}

// Results returns the scores committed for an inventory version.
func (e *Engine) Results(version int64) []model.RecipeScore {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scheduler.Results(version)
}

// Categorize buckets the scores committed for an inventory version.
func (e *Engine) Categorize(version int64) ranking.Sections {
	return ranking.Categorize(e.Results(version), e.cfg.Ranking)
}

// CacheStats returns score cache counters.
func (e *Engine) CacheStats() cache.Stats {
	return e.cache.Stats()
}

// InvalidateCache drops every cached score. Call it when recipes change.
func (e *Engine) InvalidateCache() {
	dropped := e.cache.Len()
	e.cache.InvalidateAll()
	common.LogDebug("Score cache invalidated", common.Fields{"dropped": dropped})
}
