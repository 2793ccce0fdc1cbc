package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/I-slam404/Movie-App/internal/store/migrations"
)

// SQLiteStore keeps cache records in a local SQLite database. It is the
// default backend: an embedded, file-backed store that survives
// restarts without external infrastructure.
type SQLiteStore struct {
	sqlDB *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens and migrates the cache database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (Record, bool, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT cache_key, category, page, payload, fetched_at, content_hash, total_pages, has_more
		 FROM cache_records
		 WHERE cache_key = ?`,
		key,
	)

	var rec Record
	var fetchedAt int64
	var hasMore int64
	if err := row.Scan(
		&rec.CacheKey,
		&rec.Category,
		&rec.Page,
		&rec.Payload,
		&fetchedAt,
		&rec.ContentHash,
		&rec.TotalPages,
		&hasMore,
	); err != nil {
		if err == sql.ErrNoRows {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("get cache record: %w", err)
	}

	rec.FetchedAt = unixMillisToTime(fetchedAt)
	rec.HasMore = hasMore != 0
	return rec, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, rec Record) error {
	if strings.TrimSpace(rec.CacheKey) == "" {
		return fmt.Errorf("cache key is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO cache_records (
		    cache_key, category, page, payload, fetched_at, content_hash, total_pages, has_more
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
		    category = excluded.category,
		    page = excluded.page,
		    payload = excluded.payload,
		    fetched_at = excluded.fetched_at,
		    content_hash = excluded.content_hash,
		    total_pages = excluded.total_pages,
		    has_more = excluded.has_more`,
		rec.CacheKey,
		rec.Category,
		rec.Page,
		rec.Payload,
		timeToUnixMillis(rec.FetchedAt),
		rec.ContentHash,
		rec.TotalPages,
		boolToInt(rec.HasMore),
	)
	if err != nil {
		return fmt.Errorf("put cache record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM cache_records WHERE cache_key = ?`, key); err != nil {
		return fmt.Errorf("delete cache record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteCategory(ctx context.Context, category string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM cache_records WHERE category = ?`, category); err != nil {
		return fmt.Errorf("delete category records: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteAll(ctx context.Context) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM cache_records`); err != nil {
		return fmt.Errorf("delete all cache records: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM cache_records WHERE fetched_at < ?`,
		timeToUnixMillis(cutoff),
	)
	if err != nil {
		return 0, fmt.Errorf("delete expired records: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count expired records: %w", err)
	}
	return removed, nil
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}
