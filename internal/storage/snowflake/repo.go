// Package snowflake adapts the shared database/sql repository to Snowflake,
// the usual warehouse target for the gold layer downstream.
package snowflake

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/snowflakedb/gosnowflake"

	"silverpipe/internal/storage"
)

var dialect = storage.Dialect{
	Name:        "snowflake",
	QuoteIdent:  storage.QuoteDouble,
	Placeholder: storage.PlaceholderQuestion,
}

func init() {
	storage.Register("snowflake", New)
}

// New opens a Snowflake-backed repository. The options key
// "session_statements" may list statements to run at open (ALTER SESSION
// and the like).
func New(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
	db, err := sql.Open("snowflake", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("snowflake: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("snowflake: ping: %w", err)
	}
	for _, stmt := range cfg.Options.StringSlice("session_statements") {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("snowflake: session statement %q: %w", stmt, err)
		}
	}
	return &storage.SQLRepo{DB: db, D: dialect, BatchSize: cfg.BatchSize}, nil
}
