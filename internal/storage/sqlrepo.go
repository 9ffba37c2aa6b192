// This file implements Repository on top of database/sql, shared by every
// backend except postgres (which uses the pgx native protocol for COPY).
// ReplaceAll runs DELETE-then-batched-INSERT inside a single transaction, so
// a mid-write failure leaves the destination untouched. TRUNCATE is avoided
// on purpose: MySQL treats it as DDL with an implicit commit, which would
// break the one-unit-of-work contract.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"silverpipe/pkg/records"
)

// defaultBatchRows bounds one multi-row INSERT when the backend does not
// override it. SQL Server callers should stay well under its 2100-parameter
// statement limit.
const defaultBatchRows = 500

// SQLRepo is a Repository over a database/sql handle.
type SQLRepo struct {
	DB        *sql.DB
	D         Dialect
	BatchSize int
}

var _ Repository = (*SQLRepo)(nil)

// Query reads the named columns of every row in table.
func (r *SQLRepo) Query(ctx context.Context, table string, columns []string) ([]records.Record, error) {
	rows, err := r.DB.QueryContext(ctx, BuildSelectSQL(r.D, table, columns))
	if err != nil {
		return nil, fmt.Errorf("%s: query %s: %w", r.D.Name, table, err)
	}
	defer rows.Close()

	var out []records.Record
	vals := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%s: scan %s: %w", r.D.Name, table, err)
		}
		rec := make(records.Record, len(columns))
		for i, col := range columns {
			rec[col] = vals[i]
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate %s: %w", r.D.Name, table, err)
	}
	return out, nil
}

// ReplaceAll clears table and writes rows in one transaction.
func (r *SQLRepo) ReplaceAll(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	batchSize := r.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchRows
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: begin %s: %w", r.D.Name, table, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+r.D.FQN(table)); err != nil {
		return 0, fmt.Errorf("%s: clear %s: %w", r.D.Name, table, err)
	}

	total, err := insertBatches(ctx, tx, r.D, table, columns, rows, batchSize)
	if err != nil {
		return total, fmt.Errorf("%s: write %s: %w", r.D.Name, table, err)
	}
	if err := tx.Commit(); err != nil {
		return total, fmt.Errorf("%s: commit %s: %w", r.D.Name, table, err)
	}
	return total, nil
}

// Exec runs one statement outside any transaction.
func (r *SQLRepo) Exec(ctx context.Context, query string, args ...any) error {
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: exec: %w", r.D.Name, err)
	}
	return nil
}

// Dialect returns the backend's SQL spelling.
func (r *SQLRepo) Dialect() Dialect { return r.D }

// Close releases the connection pool.
func (r *SQLRepo) Close() { _ = r.DB.Close() }

// BuildSelectSQL renders "SELECT cols FROM table" with dialect quoting.
func BuildSelectSQL(d Dialect, table string, columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = d.QuoteIdent(c)
	}
	return "SELECT " + strings.Join(quoted, ", ") + " FROM " + d.FQN(table)
}

// BuildInsertSQL renders one multi-row INSERT for rowCount rows.
func BuildInsertSQL(d Dialect, table string, columns []string, rowCount int) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = d.QuoteIdent(c)
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(d.FQN(table))
	b.WriteString(" (")
	b.WriteString(strings.Join(quoted, ", "))
	b.WriteString(") VALUES ")

	n := 1
	for row := 0; row < rowCount; row++ {
		if row > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for col := range columns {
			if col > 0 {
				b.WriteString(", ")
			}
			b.WriteString(d.Placeholder(n))
			n++
		}
		b.WriteByte(')')
	}
	return b.String()
}

// insertBatches drains rows in batchSize chunks and executes one multi-row
// INSERT per chunk, returning the total row count written.
func insertBatches(ctx context.Context, tx *sql.Tx, d Dialect, table string, columns []string, rows [][]any, batchSize int) (int64, error) {
	var total int64
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		args := make([]any, 0, len(chunk)*len(columns))
		for _, row := range chunk {
			if len(row) != len(columns) {
				return total, fmt.Errorf("row has %d values for %d columns", len(row), len(columns))
			}
			args = append(args, row...)
		}
		if _, err := tx.ExecContext(ctx, BuildInsertSQL(d, table, columns, len(chunk)), args...); err != nil {
			return total, err
		}
		total += int64(len(chunk))
	}
	return total, nil
}
