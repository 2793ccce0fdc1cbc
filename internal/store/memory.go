package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps records in a process-local map. It backs the
// "memory" cache backend, where restarts start cold, and most tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[key]
	return rec, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.CacheKey] = rec
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
	return nil
}

func (s *MemoryStore) DeleteCategory(_ context.Context, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, rec := range s.records {
		if rec.Category == category {
			delete(s.records, key)
		}
	}
	return nil
}

func (s *MemoryStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]Record)
	return nil
}

func (s *MemoryStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for key, rec := range s.records {
		if rec.FetchedAt.Before(cutoff) {
			delete(s.records, key)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Len returns the number of stored records. Useful in tests.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
