package migrations

import "embed"

// FS contains the embedded SQLite migrations for the cache store.
//
//go:embed *.sql
var FS embed.FS
