package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/I-slam404/Movie-App/internal/catalog"
	"github.com/I-slam404/Movie-App/internal/metrics"
	"github.com/I-slam404/Movie-App/internal/store"
)

// Config carries the freshness thresholds. A stale entry is still
// served but triggers a background revalidation; an expired one is a
// candidate for the prune sweep.
type Config struct {
	StaleAfter  time.Duration
	ExpireAfter time.Duration
}

func (c Config) withDefaults() Config {
	if c.StaleAfter <= 0 {
		c.StaleAfter = 30 * time.Second
	}
	if c.ExpireAfter <= 0 {
		c.ExpireAfter = 5 * time.Minute
	}
	if c.ExpireAfter < c.StaleAfter {
		c.ExpireAfter = c.StaleAfter
	}
	return c
}

// memoryEntry mirrors a persisted record with the payload already
// decoded. Created on Put or when a disk hit is promoted; gone on
// invalidation or restart.
type memoryEntry struct {
	movies      []catalog.Movie
	fetchedAt   time.Time
	contentHash string
	totalPages  int
	hasMore     bool
}

// Result is what a cache lookup hands back: the movies plus how old
// they are relative to the freshness thresholds.
type Result struct {
	Movies    []catalog.Movie
	IsStale   bool
	IsExpired bool
	HasMore   bool
}

// Engine is the two-tier movie cache: a guarded in-process map in front
// of a persistent store. One mutex serializes every operation across
// both tiers, so no caller observes a half-applied write or races a
// disk promotion. The lock is engine-wide, not per key.
type Engine struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	store   store.Store
	cfg     Config
	logger  *zap.Logger
	now     func() time.Time
}

// NewEngine builds the engine on top of the given persistent tier.
func NewEngine(st store.Store, cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		entries: make(map[string]memoryEntry),
		store:   st,
		cfg:     cfg.withDefaults(),
		logger:  logger.Named("cache"),
		now:     time.Now,
	}
}

// Get returns the cached result for a (category, page) listing. A false
// ok is a plain miss. Store read failures and corrupt payloads degrade
// to a miss; a disk hit is promoted into the memory tier.
func (e *Engine) Get(ctx context.Context, category catalog.Category, page int) (Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := keyFor(category, page)

	if entry, ok := e.entries[key]; ok {
		metrics.CacheHitsTotal.WithLabelValues("memory").Inc()
		return e.resultFrom(entry), true
	}

	rec, ok, err := e.store.Get(ctx, key)
	if err != nil {
		e.logger.Warn("store read failed, treating as miss",
			zap.String("cache_key", key),
			zap.Error(err),
		)
		metrics.CacheMissesTotal.Inc()
		return Result{}, false
	}
	if !ok {
		metrics.CacheMissesTotal.Inc()
		return Result{}, false
	}

	movies, err := catalog.Decode(rec.Payload)
	if err != nil {
		// Corrupt payload: evict the record and report a miss.
		e.logger.Warn("corrupt cache payload evicted",
			zap.String("cache_key", key),
			zap.Error(err),
		)
		if delErr := e.store.Delete(ctx, key); delErr != nil {
			e.logger.Warn("evicting corrupt record failed",
				zap.String("cache_key", key),
				zap.Error(delErr),
			)
		}
		metrics.CacheMissesTotal.Inc()
		return Result{}, false
	}

	entry := memoryEntry{
		movies:      movies,
		fetchedAt:   rec.FetchedAt,
		contentHash: rec.ContentHash,
		totalPages:  rec.TotalPages,
		hasMore:     rec.HasMore,
	}
	e.entries[key] = entry

	metrics.CacheHitsTotal.WithLabelValues("disk").Inc()
	return e.resultFrom(entry), true
}

// Put encodes movies and writes both tiers under one lock. Last writer
// wins; there is no merging. The memory tier is updated even when the
// persistent write fails, and only that failure is returned.
func (e *Engine) Put(ctx context.Context, category catalog.Category, page int, movies []catalog.Movie, totalPages int, hasMore bool) error {
	payload, err := catalog.Encode(movies)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	hash := catalog.Hash(payload)

	// Decouple from the caller's slice.
	items := append([]catalog.Movie(nil), movies...)

	e.mu.Lock()
	defer e.mu.Unlock()

	key := keyFor(category, page)
	now := e.now()

	e.entries[key] = memoryEntry{
		movies:      items,
		fetchedAt:   now,
		contentHash: hash,
		totalPages:  totalPages,
		hasMore:     hasMore,
	}

	rec := store.Record{
		CacheKey:    key,
		Category:    string(category),
		Page:        page,
		Payload:     payload,
		FetchedAt:   now,
		ContentHash: hash,
		TotalPages:  totalPages,
		HasMore:     hasMore,
	}
	if err := e.store.Put(ctx, rec); err != nil {
		return fmt.Errorf("persist cache record: %w", err)
	}
	return nil
}

// HasChanged reports whether candidate differs from the cached payload
// for the listing, by content hash. True when nothing is cached.
func (e *Engine) HasChanged(ctx context.Context, category catalog.Category, page int, candidate []catalog.Movie) bool {
	payload, err := catalog.Encode(candidate)
	if err != nil {
		return true
	}
	candidateHash := catalog.Hash(payload)

	e.mu.Lock()
	defer e.mu.Unlock()

	key := keyFor(category, page)
	if entry, ok := e.entries[key]; ok {
		return entry.contentHash != candidateHash
	}

	rec, ok, err := e.store.Get(ctx, key)
	if err != nil || !ok {
		return true
	}
	return rec.ContentHash != candidateHash
}

// Invalidate drops one (category, page) listing from both tiers.
func (e *Engine) Invalidate(ctx context.Context, category catalog.Category, page int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := keyFor(category, page)
	delete(e.entries, key)
	if err := e.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete cache record: %w", err)
	}
	return nil
}

// InvalidateCategory drops every page cached for category. The match is
// on the key's category segment, never a raw prefix, so "popular"
// leaves "popular_extra" untouched.
func (e *Engine) InvalidateCategory(ctx context.Context, category catalog.Category) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for key := range e.entries {
		if categoryOf(key) == string(category) {
			delete(e.entries, key)
		}
	}
	if err := e.store.DeleteCategory(ctx, string(category)); err != nil {
		return fmt.Errorf("delete category records: %w", err)
	}
	return nil
}

// InvalidateAll empties both tiers.
func (e *Engine) InvalidateAll(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.entries = make(map[string]memoryEntry)
	if err := e.store.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear cache records: %w", err)
	}
	return nil
}

// PruneExpired removes entries past the expiry threshold from both
// tiers and reports how many persistent records went away. Run it
// periodically; expired entries are still served until pruned.
func (e *Engine) PruneExpired(ctx context.Context) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cutoff := e.now().Add(-e.cfg.ExpireAfter)
	for key, entry := range e.entries {
		if entry.fetchedAt.Before(cutoff) {
			delete(e.entries, key)
		}
	}

	removed, err := e.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune expired records: %w", err)
	}
	metrics.PrunedRecordsTotal.Add(float64(removed))
	return removed, nil
}

func (e *Engine) resultFrom(entry memoryEntry) Result {
	age := e.now().Sub(entry.fetchedAt)
	return Result{
		Movies:    entry.movies,
		IsStale:   age > e.cfg.StaleAfter,
		IsExpired: age > e.cfg.ExpireAfter,
		HasMore:   entry.hasMore,
	}
}
