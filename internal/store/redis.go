package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps cache records in Redis: one JSON document per cache
// key, a fetched_at-scored index set driving DeleteOlderThan, and a
// member set per category driving DeleteCategory. Records carry no
// Redis TTL; expiry is the cache engine's prune sweep, so both backends
// age records the same way.
type RedisStore struct {
	client *redis.Client
	prefix string
}

type RedisConfig struct {
	Prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed store. An empty prefix falls back
// to "movieapp" so scans can never touch keys outside this app.
func NewRedisStore(client *redis.Client, cfg RedisConfig) *RedisStore {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "movieapp"
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

// wire shape of one record document.
type redisRecord struct {
	CacheKey    string `json:"cache_key"`
	Category    string `json:"category"`
	Page        int    `json:"page"`
	Payload     string `json:"payload"`
	FetchedAt   int64  `json:"fetched_at"`
	ContentHash string `json:"content_hash"`
	TotalPages  int    `json:"total_pages"`
	HasMore     bool   `json:"has_more"`
}

func (s *RedisStore) key(k string) string {
	return s.prefix + ":rec:" + k
}

func (s *RedisStore) indexKey() string {
	return s.prefix + ":index"
}

func (s *RedisStore) categoryKey(category string) string {
	return s.prefix + ":cat:" + category
}

func (s *RedisStore) Get(ctx context.Context, key string) (Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, false, fmt.Errorf("context error: %w", err)
	}

	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err == redis.Nil {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("redis get failed: %w", err)
	}

	var doc redisRecord
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Record{}, false, fmt.Errorf("unmarshal cache record: %w", err)
	}

	return Record{
		CacheKey:    doc.CacheKey,
		Category:    doc.Category,
		Page:        doc.Page,
		Payload:     doc.Payload,
		FetchedAt:   unixMillisToTime(doc.FetchedAt),
		ContentHash: doc.ContentHash,
		TotalPages:  doc.TotalPages,
		HasMore:     doc.HasMore,
	}, true, nil
}

func (s *RedisStore) Put(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	fetchedAt := timeToUnixMillis(rec.FetchedAt)
	raw, err := json.Marshal(redisRecord{
		CacheKey:    rec.CacheKey,
		Category:    rec.Category,
		Page:        rec.Page,
		Payload:     rec.Payload,
		FetchedAt:   fetchedAt,
		ContentHash: rec.ContentHash,
		TotalPages:  rec.TotalPages,
		HasMore:     rec.HasMore,
	})
	if err != nil {
		return fmt.Errorf("marshal cache record: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(rec.CacheKey), raw, 0)
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{Score: float64(fetchedAt), Member: rec.CacheKey})
		pipe.SAdd(ctx, s.categoryKey(rec.Category), rec.CacheKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis put failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(key))
		pipe.ZRem(ctx, s.indexKey(), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteCategory(ctx context.Context, category string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	members, err := s.client.SMembers(ctx, s.categoryKey(category)).Result()
	if err != nil {
		return fmt.Errorf("redis list category failed: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, member := range members {
			pipe.Del(ctx, s.key(member))
			pipe.ZRem(ctx, s.indexKey(), member)
		}
		pipe.Del(ctx, s.categoryKey(category))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete category failed: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+":*", 256).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete all failed: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (s *RedisStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	// Exclusive bound: a record fetched exactly at the cutoff survives.
	max := "(" + strconv.FormatInt(timeToUnixMillis(cutoff), 10)
	members, err := s.client.ZRangeByScore(ctx, s.indexKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: max,
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("redis range index failed: %w", err)
	}
	if len(members) == 0 {
		return 0, nil
	}

	docKeys := make([]string, 0, len(members))
	for _, member := range members {
		docKeys = append(docKeys, s.key(member))
	}

	removed, err := s.client.Del(ctx, docKeys...).Result()
	if err != nil {
		return 0, fmt.Errorf("redis delete expired failed: %w", err)
	}
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", max).Err(); err != nil {
		return removed, fmt.Errorf("redis trim index failed: %w", err)
	}
	return removed, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
