// Package sqlite adapts the shared database/sql repository to SQLite via the
// pure-Go modernc.org driver. Handy for local runs and container-free tests.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"silverpipe/internal/storage"
)

var dialect = storage.Dialect{
	Name:        "sqlite",
	QuoteIdent:  storage.QuoteDouble,
	Placeholder: storage.PlaceholderQuestion,
}

func init() {
	storage.Register("sqlite", New)
}

// New opens a SQLite-backed repository. The options key "pragmas" may list
// statements to run at open ("PRAGMA journal_mode=WAL" and friends).
func New(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	for _, pragma := range cfg.Options.StringSlice("pragmas") {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: pragma %q: %w", pragma, err)
		}
	}
	return &storage.SQLRepo{DB: db, D: dialect, BatchSize: cfg.BatchSize}, nil
}
