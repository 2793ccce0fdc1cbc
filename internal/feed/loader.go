package feed

import (
	"context"

	"go.uber.org/zap"

	"github.com/I-slam404/Movie-App/internal/cache"
	"github.com/I-slam404/Movie-App/internal/catalog"
	"github.com/I-slam404/Movie-App/internal/metrics"
	"github.com/I-slam404/Movie-App/internal/tmdb"
)

// FetchFunc retrieves one page of movies from the remote catalog,
// returning the items and the total page count reported upstream.
type FetchFunc func(ctx context.Context) ([]catalog.Movie, int, error)

// Loader merges cache lookups with remote fetches into the ordered
// state stream consumers render from.
type Loader struct {
	engine *cache.Engine
	logger *zap.Logger
}

// NewLoader builds a Loader on top of the cache engine.
func NewLoader(engine *cache.Engine, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		engine: engine,
		logger: logger.Named("feed"),
	}
}

// Load runs one cache-first load for a (category, page) listing.
//
// States arrive in a fixed order: at most one Success served from
// cache, then at most one Loading while a fetch is in flight, then
// exactly one terminal Success or Error. A fresh cache hit ends the
// stream after the first Success with no fetch at all. The channel is
// closed after the terminal state, or early when ctx is cancelled; a
// cancelled load never writes to the cache.
func (l *Loader) Load(ctx context.Context, category catalog.Category, page int, forceRefresh bool, fetch FetchFunc) <-chan State {
	states := make(chan State, 4)
	go func() {
		defer close(states)
		l.run(ctx, states, category, page, forceRefresh, fetch)
	}()
	return states
}

func (l *Loader) run(ctx context.Context, states chan<- State, category catalog.Category, page int, forceRefresh bool, fetch FetchFunc) {
	logger := l.logger.With(
		zap.String("category", string(category)),
		zap.Int("page", page),
	)

	var cached cache.Result
	var hasCached bool

	if !forceRefresh {
		cached, hasCached = l.engine.Get(ctx, category, page)
		if hasCached {
			if !emit(ctx, states, State{
				Status:  StatusSuccess,
				Movies:  cached.Movies,
				HasMore: cached.HasMore,
				Stale:   cached.IsStale,
			}) {
				return
			}
			if !cached.IsStale {
				logger.Debug("fresh cache satisfied load")
				return
			}
		}
	}

	// A fetch is due: cache miss, stale entry, or explicit refresh.
	loading := State{Status: StatusLoading}
	if hasCached {
		loading.Movies = cached.Movies
		loading.HasMore = cached.HasMore
		loading.Stale = true
	}
	if !emit(ctx, states, loading) {
		return
	}

	metrics.RevalidationsTotal.Inc()

	movies, totalPages, err := fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			// Cancelled mid-fetch: nobody is listening for a terminal
			// state, and the cache was never touched.
			return
		}

		kind := tmdb.KindOf(err)
		metrics.FetchFailuresTotal.WithLabelValues(kind.String()).Inc()
		logger.Warn("fetch failed",
			zap.String("kind", kind.String()),
			zap.Error(err),
		)

		// Re-offer the last good cached data with the error. A forced
		// refresh skipped the cache read, so look it up now.
		if !hasCached && forceRefresh {
			cached, hasCached = l.engine.Get(ctx, category, page)
		}
		errState := State{Status: StatusError, Err: err}
		if hasCached {
			errState.Movies = cached.Movies
			errState.HasMore = cached.HasMore
			errState.Stale = true
		}
		emit(ctx, states, errState)
		return
	}

	hasMore := page < totalPages && len(movies) > 0

	// Change detection runs before the write below overwrites the
	// stored hash. Informational only: the fresh result is emitted
	// either way.
	changed := l.engine.HasChanged(ctx, category, page, movies)
	if !changed {
		metrics.RevalidationsUnchangedTotal.Inc()
	}
	logger.Debug("fetch completed",
		zap.Int("results", len(movies)),
		zap.Int("total_pages", totalPages),
		zap.Bool("content_changed", changed),
	)

	if err := l.engine.Put(ctx, category, page, movies, totalPages, hasMore); err != nil {
		// The memory tier holds the fresh entry regardless, so the
		// load still succeeds.
		logger.Warn("cache write-through failed", zap.Error(err))
	}

	emit(ctx, states, State{
		Status:  StatusSuccess,
		Movies:  movies,
		HasMore: hasMore,
	})
}

// emit delivers one state unless the caller has already gone away.
func emit(ctx context.Context, states chan<- State, s State) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case states <- s:
		return true
	case <-ctx.Done():
		return false
	}
}
