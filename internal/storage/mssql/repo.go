// Package mssql adapts the shared database/sql repository to SQL Server.
package mssql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/microsoft/go-mssqldb"

	"silverpipe/internal/storage"
)

var dialect = storage.Dialect{
	Name:        "mssql",
	QuoteIdent:  storage.QuoteBracket,
	Placeholder: storage.PlaceholderAt,
}

// SQL Server caps a statement at 2100 bind parameters; with the widest
// silver table at ten columns, 180 rows per INSERT stays comfortably under.
const defaultBatchRows = 180

func init() {
	storage.Register("mssql", New)
}

// New opens a SQL Server-backed repository.
func New(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
	db, err := sql.Open("sqlserver", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mssql: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mssql: ping: %w", err)
	}
	batch := cfg.BatchSize
	if batch <= 0 || batch > defaultBatchRows {
		batch = defaultBatchRows
	}
	return &storage.SQLRepo{DB: db, D: dialect, BatchSize: batch}, nil
}
