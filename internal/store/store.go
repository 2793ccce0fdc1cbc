package store

import (
	"context"
	"time"
)

// Record is one persisted cache row: the encoded payload for a
// (category, page) listing plus the metadata needed to judge freshness.
type Record struct {
	CacheKey    string
	Category    string
	Page        int
	Payload     string
	FetchedAt   time.Time
	ContentHash string
	TotalPages  int
	HasMore     bool
}

// Store is the persistent cache tier. CacheKey is the primary key and
// Put is a full overwrite of any prior record for that key.
// Implemented by the SQLite store (default), Redis (shared deployments)
// and an in-process map (dev and tests).
type Store interface {
	// Get returns the record for key. A false ok is a clean miss.
	Get(ctx context.Context, key string) (Record, bool, error)
	// Put overwrites the record stored under rec.CacheKey.
	Put(ctx context.Context, rec Record) error
	// Delete removes one record. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// DeleteCategory removes every record whose category matches exactly.
	DeleteCategory(ctx context.Context, category string) error
	// DeleteAll empties the store.
	DeleteAll(ctx context.Context) error
	// DeleteOlderThan removes records fetched strictly before cutoff and
	// reports how many went away.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	Close() error
}
