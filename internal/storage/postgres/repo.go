// Package postgres provides a Postgres-backed storage.Repository using the
// pgx native protocol: reads via pool queries, writes via TRUNCATE + COPY
// inside a single transaction. It registers itself with the storage factory
// at init time so callers stay backend-agnostic.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"silverpipe/internal/storage"
	"silverpipe/pkg/records"
)

var dialect = storage.Dialect{
	Name:        "postgres",
	QuoteIdent:  storage.QuoteDouble,
	Placeholder: storage.PlaceholderDollar,
}

// newPool is a test hook pointing at pgxpool.New by default.
var newPool = pgxpool.New

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		pool, err := newPool(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("postgres: connect: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("postgres: ping: %w", err)
		}
		return &Repository{pool: pool}, nil
	})
}

// Repository implements storage.Repository over a pgx pool.
type Repository struct {
	pool *pgxpool.Pool
}

var _ storage.Repository = (*Repository)(nil)

// Query reads the named columns of every row in table.
func (r *Repository) Query(ctx context.Context, table string, columns []string) ([]records.Record, error) {
	rows, err := r.pool.Query(ctx, storage.BuildSelectSQL(dialect, table, columns))
	if err != nil {
		return nil, fmt.Errorf("postgres: query %s: %w", table, err)
	}
	defer rows.Close()

	var out []records.Record
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("postgres: scan %s: %w", table, err)
		}
		rec := make(records.Record, len(columns))
		for i, col := range columns {
			rec[col] = vals[i]
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate %s: %w", table, err)
	}
	return out, nil
}

// ReplaceAll truncates table and COPYs rows in one transaction. Postgres
// allows TRUNCATE inside a transaction, so a COPY failure rolls the clear
// back too.
func (r *Repository) ReplaceAll(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("postgres: begin %s: %w", table, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE "+dialect.FQN(table)); err != nil {
		return 0, fmt.Errorf("postgres: clear %s: %w", table, err)
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier(strings.Split(table, ".")), columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("postgres: copy %s: %w", table, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return n, fmt.Errorf("postgres: commit %s: %w", table, err)
	}
	return n, nil
}

// Exec runs one statement on the pool.
func (r *Repository) Exec(ctx context.Context, query string, args ...any) error {
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("postgres: exec: %w", err)
	}
	return nil
}

// Dialect returns the postgres SQL spelling.
func (r *Repository) Dialect() storage.Dialect { return dialect }

// Close releases the pool.
func (r *Repository) Close() { r.pool.Close() }
