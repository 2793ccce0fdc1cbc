package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := OpenSQLite(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(key, category string, page int, fetchedAt time.Time) Record {
	return Record{
		CacheKey:    key,
		Category:    category,
		Page:        page,
		Payload:     `[{"id":1,"title":"The Matrix"}]`,
		FetchedAt:   fetchedAt,
		ContentHash: "00000000deadbeef",
		TotalPages:  10,
		HasMore:     true,
	}
}

func TestSQLiteOpenRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	if _, err := OpenSQLite("  "); err == nil {
		t.Fatalf("expected error for blank path")
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()

	s := openTestSQLite(t)
	ctx := context.Background()

	// The column stores unix millis, so start from that precision.
	fetchedAt := time.UnixMilli(time.Now().UnixMilli())
	rec := testRecord("popular_page_1", "popular", 1, fetchedAt)

	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := s.Get(ctx, "popular_page_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected record after Put")
	}
	if got.CacheKey != rec.CacheKey || got.Category != "popular" || got.Page != 1 {
		t.Fatalf("unexpected record identity: %#v", got)
	}
	if got.Payload != rec.Payload || got.ContentHash != rec.ContentHash {
		t.Fatalf("payload fields drifted: %#v", got)
	}
	if !got.FetchedAt.Equal(fetchedAt) {
		t.Fatalf("fetched_at drifted: %v vs %v", got.FetchedAt, fetchedAt)
	}
	if got.TotalPages != 10 || !got.HasMore {
		t.Fatalf("pagination metadata lost: %#v", got)
	}
}

func TestSQLiteGetMiss(t *testing.T) {
	t.Parallel()

	s := openTestSQLite(t)

	_, ok, err := s.Get(context.Background(), "absent_page_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("expected a clean miss")
	}
}

func TestSQLitePutOverwrites(t *testing.T) {
	t.Parallel()

	s := openTestSQLite(t)
	ctx := context.Background()

	first := testRecord("popular_page_1", "popular", 1, time.UnixMilli(1000))
	if err := s.Put(ctx, first); err != nil {
		t.Fatalf("Put: %v", err)
	}

	second := first
	second.Payload = `[]`
	second.ContentHash = "00000000cafebabe"
	second.FetchedAt = time.UnixMilli(2000)
	second.HasMore = false
	if err := s.Put(ctx, second); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}

	got, ok, err := s.Get(ctx, "popular_page_1")
	if err != nil || !ok {
		t.Fatalf("Get after overwrite: ok=%v err=%v", ok, err)
	}
	if got.Payload != `[]` || got.ContentHash != "00000000cafebabe" || got.HasMore {
		t.Fatalf("overwrite did not replace all fields: %#v", got)
	}
	if !got.FetchedAt.Equal(time.UnixMilli(2000)) {
		t.Fatalf("overwrite kept the old timestamp: %v", got.FetchedAt)
	}
}

func TestSQLiteDelete(t *testing.T) {
	t.Parallel()

	s := openTestSQLite(t)
	ctx := context.Background()

	if err := s.Put(ctx, testRecord("popular_page_1", "popular", 1, time.Now())); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, "popular_page_1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "popular_page_1"); ok {
		t.Fatalf("record survived Delete")
	}

	// Deleting a missing key is not an error.
	if err := s.Delete(ctx, "absent_page_9"); err != nil {
		t.Fatalf("Delete missing key: %v", err)
	}
}

func TestSQLiteDeleteCategoryExactMatch(t *testing.T) {
	t.Parallel()

	s := openTestSQLite(t)
	ctx := context.Background()

	now := time.Now()
	seed := []Record{
		testRecord("popular_page_1", "popular", 1, now),
		testRecord("popular_page_2", "popular", 2, now),
		testRecord("popular_extra_page_1", "popular_extra", 1, now),
		testRecord("top_rated_page_1", "top_rated", 1, now),
	}
	for _, rec := range seed {
		if err := s.Put(ctx, rec); err != nil {
			t.Fatalf("Put %s: %v", rec.CacheKey, err)
		}
	}

	if err := s.DeleteCategory(ctx, "popular"); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	for _, key := range []string{"popular_page_1", "popular_page_2"} {
		if _, ok, _ := s.Get(ctx, key); ok {
			t.Fatalf("%s survived DeleteCategory", key)
		}
	}
	for _, key := range []string{"popular_extra_page_1", "top_rated_page_1"} {
		if _, ok, _ := s.Get(ctx, key); !ok {
			t.Fatalf("%s was wrongly deleted", key)
		}
	}
}

func TestSQLiteDeleteAll(t *testing.T) {
	t.Parallel()

	s := openTestSQLite(t)
	ctx := context.Background()

	now := time.Now()
	if err := s.Put(ctx, testRecord("popular_page_1", "popular", 1, now)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, testRecord("upcoming_page_4", "upcoming", 4, now)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := s.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}

	for _, key := range []string{"popular_page_1", "upcoming_page_4"} {
		if _, ok, _ := s.Get(ctx, key); ok {
			t.Fatalf("%s survived DeleteAll", key)
		}
	}
}

func TestSQLiteDeleteOlderThan(t *testing.T) {
	t.Parallel()

	s := openTestSQLite(t)
	ctx := context.Background()

	old := time.UnixMilli(10_000)
	fresh := time.UnixMilli(90_000)
	if err := s.Put(ctx, testRecord("popular_page_1", "popular", 1, old)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, testRecord("popular_page_2", "popular", 2, fresh)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	removed, err := s.DeleteOlderThan(ctx, time.UnixMilli(50_000))
	if err != nil {
		t.Fatalf("DeleteOlderThan: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed record, got %d", removed)
	}

	if _, ok, _ := s.Get(ctx, "popular_page_1"); ok {
		t.Fatalf("expired record survived")
	}
	if _, ok, _ := s.Get(ctx, "popular_page_2"); !ok {
		t.Fatalf("fresh record was removed")
	}

	// The cutoff bound is exclusive.
	removed, err = s.DeleteOlderThan(ctx, fresh)
	if err != nil {
		t.Fatalf("DeleteOlderThan at boundary: %v", err)
	}
	if removed != 0 {
		t.Fatalf("record at the cutoff must survive, removed %d", removed)
	}
}
