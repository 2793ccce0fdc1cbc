package store

import (
	"context"
	"time"

	"github.com/I-slam404/Movie-App/internal/metrics"
	"github.com/I-slam404/Movie-App/pkg/logging"

	"go.uber.org/zap"
)

// LoggingStore wraps a Store with structured logs and per-op latency
// metrics. The request-scoped logger comes from ctx.
type LoggingStore struct {
	inner Store
}

// NewLoggingStore returns a store that logs and records metrics.
func NewLoggingStore(inner Store) Store {
	return &LoggingStore{inner: inner}
}

func (s *LoggingStore) Get(ctx context.Context, key string) (Record, bool, error) {
	start := time.Now()
	rec, ok, err := s.inner.Get(ctx, key)
	elapsed := time.Since(start)
	metrics.StoreOpSeconds.WithLabelValues("get").Observe(elapsed.Seconds())

	logger := logging.L(ctx)

	result := "miss"
	if err != nil {
		result = "error"
	} else if ok {
		result = "hit"
	}

	fields := []zap.Field{
		zap.String("cache_key", key),
		zap.String("store_result", result), // hit | miss | error
		zap.Float64("latency_ms", latencyMs(elapsed)),
	}
	if ok {
		fields = append(fields,
			zap.String("category", rec.Category),
			zap.Int("page", rec.Page),
		)
	}

	if err != nil {
		logger.Error("store_get", append(fields, zap.Error(err))...)
	} else {
		logger.Debug("store_get", fields...)
	}

	return rec, ok, err
}

func (s *LoggingStore) Put(ctx context.Context, rec Record) error {
	start := time.Now()
	err := s.inner.Put(ctx, rec)
	elapsed := time.Since(start)
	metrics.StoreOpSeconds.WithLabelValues("put").Observe(elapsed.Seconds())

	logger := logging.L(ctx)

	fields := []zap.Field{
		zap.String("cache_key", rec.CacheKey),
		zap.String("category", rec.Category),
		zap.Int("page", rec.Page),
		zap.Float64("latency_ms", latencyMs(elapsed)),
	}

	if err != nil {
		logger.Error("store_put", append(fields, zap.Error(err))...)
	} else {
		logger.Debug("store_put", fields...)
	}

	return err
}

func (s *LoggingStore) Delete(ctx context.Context, key string) error {
	return s.logDelete(ctx, "store_delete", zap.String("cache_key", key), func() error {
		return s.inner.Delete(ctx, key)
	})
}

func (s *LoggingStore) DeleteCategory(ctx context.Context, category string) error {
	return s.logDelete(ctx, "store_delete_category", zap.String("category", category), func() error {
		return s.inner.DeleteCategory(ctx, category)
	})
}

func (s *LoggingStore) DeleteAll(ctx context.Context) error {
	return s.logDelete(ctx, "store_delete_all", zap.Skip(), func() error {
		return s.inner.DeleteAll(ctx)
	})
}

func (s *LoggingStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	start := time.Now()
	removed, err := s.inner.DeleteOlderThan(ctx, cutoff)
	elapsed := time.Since(start)
	metrics.StoreOpSeconds.WithLabelValues("delete_older_than").Observe(elapsed.Seconds())

	logger := logging.L(ctx)
	fields := []zap.Field{
		zap.Time("cutoff", cutoff),
		zap.Int64("removed", removed),
		zap.Float64("latency_ms", latencyMs(elapsed)),
	}

	if err != nil {
		logger.Error("store_prune", append(fields, zap.Error(err))...)
	} else {
		logger.Debug("store_prune", fields...)
	}

	return removed, err
}

func (s *LoggingStore) Close() error {
	return s.inner.Close()
}

func (s *LoggingStore) logDelete(ctx context.Context, msg string, scope zap.Field, op func() error) error {
	start := time.Now()
	err := op()
	elapsed := time.Since(start)
	metrics.StoreOpSeconds.WithLabelValues("delete").Observe(elapsed.Seconds())

	logger := logging.L(ctx)
	fields := []zap.Field{scope, zap.Float64("latency_ms", latencyMs(elapsed))}

	if err != nil {
		logger.Error(msg, append(fields, zap.Error(err))...)
	} else {
		logger.Debug(msg, fields...)
	}

	return err
}

func latencyMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
