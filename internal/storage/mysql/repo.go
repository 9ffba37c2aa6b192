// Package mysql adapts the shared database/sql repository to MySQL/MariaDB.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"silverpipe/internal/storage"
)

var dialect = storage.Dialect{
	Name:        "mysql",
	QuoteIdent:  storage.QuoteBacktick,
	Placeholder: storage.PlaceholderQuestion,
}

func init() {
	storage.Register("mysql", New)
}

// New opens a MySQL-backed repository. The DSN must include parseTime=true
// so DATE columns scan as time.Time.
func New(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mysql: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mysql: ping: %w", err)
	}
	return &storage.SQLRepo{DB: db, D: dialect, BatchSize: cfg.BatchSize}, nil
}
