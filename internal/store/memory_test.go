package store

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	rec := testRecord("popular_page_1", "popular", 1, time.UnixMilli(5000))
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := s.Get(ctx, "popular_page_1")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got != rec {
		t.Fatalf("record drifted: %#v vs %#v", got, rec)
	}

	if _, ok, _ := s.Get(ctx, "absent_page_1"); ok {
		t.Fatalf("expected miss for absent key")
	}
}

func TestMemoryStoreDeleteCategory(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	_ = s.Put(ctx, testRecord("popular_page_1", "popular", 1, now))
	_ = s.Put(ctx, testRecord("popular_extra_page_1", "popular_extra", 1, now))

	if err := s.DeleteCategory(ctx, "popular"); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	if _, ok, _ := s.Get(ctx, "popular_page_1"); ok {
		t.Fatalf("popular record survived")
	}
	if _, ok, _ := s.Get(ctx, "popular_extra_page_1"); !ok {
		t.Fatalf("popular_extra record was wrongly deleted")
	}
}

func TestMemoryStoreDeleteOlderThan(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Put(ctx, testRecord("popular_page_1", "popular", 1, time.UnixMilli(1000)))
	_ = s.Put(ctx, testRecord("popular_page_2", "popular", 2, time.UnixMilli(9000)))

	removed, err := s.DeleteOlderThan(ctx, time.UnixMilli(5000))
	if err != nil {
		t.Fatalf("DeleteOlderThan: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 remaining record, got %d", s.Len())
	}
}
