// Package cache memoizes recipe scores against inventory fingerprints.
//
// Entries are keyed by recipe id and fingerprint, so a changed inventory can
// never be served a stale score: a lookup with a new fingerprint simply misses.
// Expired entries are dropped lazily on read and the least recently used entry
// is evicted once the cache is full.
package cache

import (
	"container/list"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Veraticus/larder/internal/common"
	"github.com/Veraticus/larder/internal/model"
)

// Config controls entry lifetime and capacity.
type Config struct {
	TTL        time.Duration
	MaxEntries int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		TTL:        30 * time.Minute,
		MaxEntries: 5000,
	}
}

// Validate checks that TTL and capacity are positive.
func (c Config) Validate() error {
	if c.TTL <= 0 {
		return common.InvalidConfig("cache ttl must be positive, got %s", c.TTL)
	}
	if c.MaxEntries <= 0 {
		return common.InvalidConfig("cache max entries must be positive, got %d", c.MaxEntries)
	}
	return nil
}

// Stats counts cache activity since creation.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Expired   int64 `json:"expired"`
	Entries   int   `json:"entries"`
}

// HitRate returns hits as a fraction of lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

type key struct {
	recipeID    string
	fingerprint model.Fingerprint
}

type entry struct {
	expiresAt time.Time
	result    model.CachedMatchResult
	key       key
}

// Cache is a TTL and LRU bounded score cache. It is safe for concurrent use.
type Cache struct {
	now   func() time.Time
	items map[key]*list.Element
	order *list.List // front is most recently used
	stats Stats
	cfg   Config
	mu    sync.Mutex
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock sets the clock used for entry expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates a Cache.
func New(cfg Config, opts ...Option) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Cache{
		cfg:   cfg,
		now:   time.Now,
		items: make(map[key]*list.Element),
		order: list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get returns the score cached for recipeID under fingerprint.
func (c *Cache) Get(recipeID string, fingerprint model.Fingerprint) (model.CachedMatchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key{recipeID: recipeID, fingerprint: fingerprint}]
	if !ok {
		c.stats.Misses++
		return model.CachedMatchResult{}, false
	}

	e := el.Value.(*entry)
	if !c.now().Before(e.expiresAt) {
		c.remove(el)
		c.stats.Expired++
		c.stats.Misses++
		return model.CachedMatchResult{}, false
	}

	c.order.MoveToFront(el)
	c.stats.Hits++
	return cloneResult(e.result), true
}

// Put stores score for recipeID under fingerprint, replacing any previous entry
// for the same pair.
func (c *Cache) Put(recipeID string, fingerprint model.Fingerprint, score model.RecipeScore) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	k := key{recipeID: recipeID, fingerprint: fingerprint}
	result := model.CachedMatchResult{
		Score:       cloneScore(score),
		Fingerprint: fingerprint,
		CreatedAt:   now,
	}

	if el, ok := c.items[k]; ok {
		e := el.Value.(*entry)
		e.result = result
		e.expiresAt = now.Add(c.cfg.TTL)
		c.order.MoveToFront(el)
		return
	}

	c.items[k] = c.order.PushFront(&entry{
		key:       k,
		result:    result,
		expiresAt: now.Add(c.cfg.TTL),
	})

	for c.order.Len() > c.cfg.MaxEntries {
		oldest := c.order.Back()
		slog.Debug("Evicting cached score", "recipe_id", oldest.Value.(*entry).key.recipeID)
		c.remove(oldest)
		c.stats.Evictions++
	}
}

// InvalidateAll drops every entry. Stats are kept.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[key]*list.Element)
	c.order.Init()
}

// Len returns the number of stored entries, including expired ones not yet read.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Entries = c.order.Len()
	return s
}

func (c *Cache) remove(el *list.Element) {
	delete(c.items, el.Value.(*entry).key)
	c.order.Remove(el)
}

func cloneResult(r model.CachedMatchResult) model.CachedMatchResult {
	r.Score = cloneScore(r.Score)
	return r
}

// cloneScore copies the slices a caller could mutate.
func cloneScore(s model.RecipeScore) model.RecipeScore {
	s.AvailableIngredients = slices.Clone(s.AvailableIngredients)
	s.MissingIngredients = slices.Clone(s.MissingIngredients)
	s.NearExpiryItems = slices.Clone(s.NearExpiryItems)
	s.Matches = slices.Clone(s.Matches)
	return s
}
