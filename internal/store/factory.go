package store

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Backend    string // "sqlite", "redis" or "memory"
	SQLitePath string
	Prefix     string
}

// New builds the persistent tier named by cfg.Backend.
func New(cfg Config, redisClient *redis.Client) (Store, error) {
	switch cfg.Backend {
	case "redis":
		if redisClient == nil {
			return nil, fmt.Errorf("redis backend requires a client")
		}
		return NewRedisStore(redisClient, RedisConfig{Prefix: cfg.Prefix}), nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return OpenSQLite(cfg.SQLitePath)
	}
}
