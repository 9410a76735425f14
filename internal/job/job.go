// Package job runs cancelable, incremental batch scoring of recipes.
//
// A Scheduler owns one logical run at a time. Starting a run supersedes the
// previous one: every run carries a token, and a run may only commit results
// while its token is still current. Superseded or cancelled runs therefore
// never write into the result map, even if their goroutine is still finishing
// a chunk.
package job

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Veraticus/larder/internal/cache"
	"github.com/Veraticus/larder/internal/common"
	"github.com/Veraticus/larder/internal/model"
	"github.com/Veraticus/larder/internal/scoring"
)

// Config controls batching and result retention.
type Config struct {
	ChunkSize      int
	RetainVersions int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ChunkSize:      25,
		RetainVersions: 4,
	}
}

// Validate checks that chunk size and retention are positive.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return common.InvalidConfig("job chunk size must be positive, got %d", c.ChunkSize)
	}
	if c.RetainVersions <= 0 {
		return common.InvalidConfig("job retain versions must be positive, got %d", c.RetainVersions)
	}
	return nil
}

// ProgressFunc receives progress after each committed chunk. It is called from
// the run's goroutine and must not block.
type ProgressFunc func(model.Progress)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithProgressFunc registers a progress callback.
func WithProgressFunc(fn ProgressFunc) Option {
	return func(s *Scheduler) {
		s.onProgress = fn
	}
}

// versionResults holds one inventory version's scores in scoring order.
type versionResults struct {
	byID  map[string]int
	order []model.RecipeScore
}

// Scheduler runs match jobs. It is safe for concurrent use.
type Scheduler struct {
	scorer     *scoring.Scorer
	cache      *cache.Cache
	onProgress ProgressFunc
	results    map[int64]*versionResults
	cancel     context.CancelFunc
	done       chan struct{}
	status     model.JobStatus
	versions   []int64 // oldest first
	progress   model.Progress
	cfg        Config
	token      uint64
	version    int64
	mu         sync.Mutex
}

// New creates a Scheduler. c may be nil to disable score caching.
func New(scorer *scoring.Scorer, c *cache.Cache, cfg Config, opts ...Option) (*Scheduler, error) {
	if scorer == nil {
		return nil, errors.New("scheduler requires a scorer")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scheduler{
		scorer:  scorer,
		cache:   c,
		cfg:     cfg,
		status:  model.JobIdle,
		results: make(map[int64]*versionResults),
	}
	for _, opt := range opts {
		opt(s)
	}

	// Nothing is running yet, so Wait returns immediately.
	s.done = make(chan struct{})
	close(s.done)

	return s, nil
}

// Start begins scoring recipes against inventory and returns immediately.
// Any run in progress is superseded. Results already stored for version are
// cleared so a restarted version never mixes old and new scores.
func (s *Scheduler) Start(ctx context.Context, recipes []model.Recipe, inventory []model.InventoryItem, version int64) {
	s.mu.Lock()

	if s.cancel != nil {
		s.cancel()
	}
	s.token++
	token := s.token

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.version = version
	s.status = model.JobRunning
	s.progress = model.Progress{Done: 0, Total: len(recipes)}
	s.resetVersion(version)
	progress := s.progress

	s.mu.Unlock()

	slog.Info("Starting match job", "recipes", len(recipes), "inventory_items", len(inventory), "version", version)
	s.notify(progress)

	go s.run(runCtx, cancel, done, token, slices.Clone(recipes), slices.Clone(inventory), version)
}

func (s *Scheduler) run(ctx context.Context, cancel context.CancelFunc, done chan struct{},
	token uint64, recipes []model.Recipe, inventory []model.InventoryItem, version int64,
) {
	defer close(done)
	defer cancel()

	started := time.Now()
	fingerprint := s.scorer.Fingerprint(inventory)
	idx := s.scorer.Index(inventory)
	if names := idx.Unresolved(); len(names) > 0 {
		slog.Info("Inventory items matched no canonical ingredient", "version", version, "items", names)
	}

	for start := 0; start < len(recipes); start += s.cfg.ChunkSize {
		if ctx.Err() != nil {
			s.finish(token, model.JobCancelled)
			return
		}

		end := min(start+s.cfg.ChunkSize, len(recipes))
		scores := make([]model.RecipeScore, 0, end-start)
		for _, recipe := range recipes[start:end] {
			scores = append(scores, s.score(recipe, idx, fingerprint))
		}

		if !s.commit(token, version, scores) {
			slog.Debug("Dropping results of superseded match job", "version", version)
			return
		}

		runtime.Gosched()
	}

	if s.finish(token, model.JobCompleted) {
		slog.Info("Match job completed", "recipes", len(recipes), "version", version, "duration", time.Since(started))
	}
}

func (s *Scheduler) score(recipe model.Recipe, idx *scoring.InventoryIndex, fingerprint model.Fingerprint) model.RecipeScore {
	if s.cache != nil {
		if cached, ok := s.cache.Get(recipe.ID, fingerprint); ok {
			return cached.Score
		}
	}

	score := s.scorer.ScoreIndexed(recipe, idx)
	if s.cache != nil {
		s.cache.Put(recipe.ID, fingerprint, score)
	}
	return score
}

// commit stores a chunk if token is still current.
func (s *Scheduler) commit(token uint64, version int64, scores []model.RecipeScore) bool {
	s.mu.Lock()
	if token != s.token {
		s.mu.Unlock()
		return false
	}

	vr := s.results[version]
	for _, score := range scores {
		if i, ok := vr.byID[score.Recipe.ID]; ok {
			vr.order[i] = score
			continue
		}
		vr.byID[score.Recipe.ID] = len(vr.order)
		vr.order = append(vr.order, score)
	}
	s.progress.Done += len(scores)
	progress := s.progress
	s.mu.Unlock()

	s.notify(progress)
	return true
}

// finish settles the run if token is still current.
func (s *Scheduler) finish(token uint64, status model.JobStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token || s.status != model.JobRunning {
		return false
	}
	s.status = status
	return true
}

func (s *Scheduler) notify(p model.Progress) {
	if s.onProgress != nil {
		s.onProgress(p)
	}
}

// resetVersion clears version's results and prunes the oldest versions beyond
// the retention limit. Callers hold s.mu.
func (s *Scheduler) resetVersion(version int64) {
	s.results[version] = &versionResults{byID: make(map[string]int)}

	s.versions = slices.DeleteFunc(s.versions, func(v int64) bool { return v == version })
	s.versions = append(s.versions, version)

	for len(s.versions) > s.cfg.RetainVersions {
		oldest := s.versions[0]
		s.versions = s.versions[1:]
		delete(s.results, oldest)
		slog.Debug("Pruned match results", "version", oldest)
	}
}

// Cancel stops the current run. Results it already committed are kept.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.status == model.JobRunning {
		s.status = model.JobCancelled
		slog.Info("Match job cancelled", "version", s.version, "done", s.progress.Done, "total", s.progress.Total)
	}
}

// Wait blocks until the current run completes, is cancelled or is superseded,
// or until ctx is done.
func (s *Scheduler) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns the job status.
func (s *Scheduler) Status() model.JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Progress returns progress of the current run.
func (s *Scheduler) Progress() model.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Version returns the inventory version of the current or last run.
func (s *Scheduler) Version() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Result returns the stored score for a recipe at an inventory version.
func (s *Scheduler) Result(recipeID string, version int64) (model.RecipeScore, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vr, ok := s.results[version]
	if !ok {
		return model.RecipeScore{}, false
	}
	i, ok := vr.byID[recipeID]
	if !ok {
		return model.RecipeScore{}, false
	}
	return vr.order[i], true
}

// Results returns every stored score for version in scoring order.
func (s *Scheduler) Results(version int64) []model.RecipeScore {
	s.mu.Lock()
	defer s.mu.Unlock()

	vr, ok := s.results[version]
	if !ok {
		return nil
	}
	return slices.Clone(vr.order)
}
