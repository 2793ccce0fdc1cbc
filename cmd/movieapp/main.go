package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/I-slam404/Movie-App/internal/cache"
	"github.com/I-slam404/Movie-App/internal/config"
	"github.com/I-slam404/Movie-App/internal/feed"
	"github.com/I-slam404/Movie-App/internal/handlers"
	"github.com/I-slam404/Movie-App/internal/httpserver"
	"github.com/I-slam404/Movie-App/internal/metrics"
	"github.com/I-slam404/Movie-App/internal/store"
	"github.com/I-slam404/Movie-App/internal/tmdb"
	"github.com/I-slam404/Movie-App/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("movieapp exited with error: %v", err)
	}
}

func run() error {
	// ----- Config -----
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// ----- Logger -----
	logger := logging.NewLogger(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	// ----- Metrics -----
	metrics.Register()

	logger.Info("loaded config",
		zap.String("port", cfg.Port),
		zap.String("cache_backend", cfg.CacheBackend),
		zap.String("tmdb_base_url", cfg.TMDBBaseURL),
		zap.Duration("stale_after", cfg.StaleAfter),
		zap.Duration("expire_after", cfg.ExpireAfter),
	)

	// ----- Redis client (only if needed) -----
	var redisClient *redis.Client
	if cfg.CacheBackend == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})

		// Fail fast if Redis is misconfigured
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Error("redis connection failed", zap.Error(err))
			return err
		}
		logger.Info("redis connection established",
			zap.String("addr", cfg.RedisAddr),
		)
	}

	// ----- Persistent tier -----
	st, err := store.New(store.Config{
		Backend:    cfg.CacheBackend,
		SQLitePath: cfg.SQLitePath,
		Prefix:     cfg.RedisPrefix,
	}, redisClient)
	if err != nil {
		logger.Error("store open failed", zap.Error(err))
		return err
	}
	defer st.Close()
	st = store.NewLoggingStore(st)

	// ----- Cache engine -----
	engine := cache.NewEngine(st, cache.Config{
		StaleAfter:  cfg.StaleAfter,
		ExpireAfter: cfg.ExpireAfter,
	}, logger)

	// ----- Catalog client -----
	tmdbClient, err := tmdb.NewClient(tmdb.Config{
		BaseURL: cfg.TMDBBaseURL,
		APIKey:  cfg.TMDBAPIKey,
	}, logger)
	if err != nil {
		return err
	}
	if closer, ok := tmdbClient.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	// ----- Loader + handlers -----
	loader := feed.NewLoader(engine, logger)
	moviesHandler := handlers.NewMoviesHandler(loader, tmdbClient)
	cacheHandler := handlers.NewCacheHandler(engine)

	// ----- Router + middleware -----
	r := chi.NewRouter()
	httpserver.SetupRouter(r, logger, cfg.RequestTimeout, moviesHandler, cacheHandler)

	// ----- HTTP server -----
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("starting movieapp",
		zap.String("addr", srv.Addr),
		zap.String("cache_backend", cfg.CacheBackend),
	)

	// Start server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	// ----- Expiry sweeper -----
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	sweeperDone := make(chan struct{})
	go runSweeper(sweepCtx, engine, cfg.SweepInterval, logger, sweeperDone)

	// ----- Graceful shutdown -----
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info("shutdown signal received")

	stopSweeper()
	<-sweeperDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return err
	}

	logger.Info("server shutdown complete")
	return nil
}

// runSweeper prunes expired cache records on a fixed interval until ctx
// is cancelled.
func runSweeper(ctx context.Context, engine *cache.Engine, interval time.Duration, logger *zap.Logger, done chan<- struct{}) {
	defer close(done)

	if interval <= 0 {
		interval = 10 * time.Minute
	}

	logger = logger.Named("sweeper")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("sweeper stopped")
			return
		case <-ticker.C:
			removed, err := engine.PruneExpired(ctx)
			if err != nil {
				logger.Warn("prune sweep failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				logger.Info("prune sweep completed", zap.Int64("removed", removed))
			}
		}
	}
}
