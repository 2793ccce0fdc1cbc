package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full service configuration, read once at startup.
type Config struct {
	Env      string `env:"ENV" envDefault:"production"`
	LogLevel string `env:"LOG_LEVEL"`
	Port     string `env:"PORT" envDefault:"8080"`

	CacheBackend string `env:"CACHE_BACKEND" envDefault:"sqlite"` // sqlite, redis or memory
	SQLitePath   string `env:"SQLITE_PATH" envDefault:"movieapp.db"`
	RedisAddr    string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPrefix  string `env:"REDIS_PREFIX" envDefault:"movieapp"`

	TMDBBaseURL string `env:"TMDB_BASE_URL" envDefault:"https://api.themoviedb.org/3"`
	TMDBAPIKey  string `env:"TMDB_API_KEY"`

	StaleAfter     time.Duration `env:"CACHE_STALE_AFTER" envDefault:"30s"`
	ExpireAfter    time.Duration `env:"CACHE_EXPIRE_AFTER" envDefault:"5m"`
	SweepInterval  time.Duration `env:"CACHE_SWEEP_INTERVAL" envDefault:"10m"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
}

// Load reads and validates configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot run with.
func (c Config) Validate() error {
	switch c.CacheBackend {
	case "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q (want sqlite, redis or memory)", c.CacheBackend)
	}
	if c.TMDBAPIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is required")
	}
	if c.StaleAfter <= 0 {
		return fmt.Errorf("CACHE_STALE_AFTER must be positive")
	}
	if c.ExpireAfter < c.StaleAfter {
		return fmt.Errorf("CACHE_EXPIRE_AFTER (%s) must be at least CACHE_STALE_AFTER (%s)",
			c.ExpireAfter, c.StaleAfter)
	}
	return nil
}
