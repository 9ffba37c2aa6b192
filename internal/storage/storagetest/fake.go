// Package storagetest provides an in-memory Repository double for tests
// that exercise the pipeline without a real database.
package storagetest

import (
	"context"
	"fmt"
	"sync"

	"silverpipe/internal/storage"
	"silverpipe/pkg/records"
)

// FakeRepo is an in-memory storage.Repository. Tables hold column-keyed
// records; ReplaceAll snapshots positional rows back into records so Query
// round-trips. Errors can be injected per table.
type FakeRepo struct {
	mu sync.Mutex

	// Tables maps a (qualified) table name to its current rows.
	Tables map[string][]records.Record

	// QueryErr and ReplaceErr inject failures keyed by table name.
	QueryErr   map[string]error
	ReplaceErr map[string]error

	// ReplacedOrder records the sequence of ReplaceAll calls.
	ReplacedOrder []string

	Closed bool
}

var _ storage.Repository = (*FakeRepo)(nil)

// NewFakeRepo returns an empty fake.
func NewFakeRepo() *FakeRepo {
	return &FakeRepo{
		Tables:     map[string][]records.Record{},
		QueryErr:   map[string]error{},
		ReplaceErr: map[string]error{},
	}
}

// Seed installs rows for a table.
func (f *FakeRepo) Seed(table string, rows []records.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Tables[table] = rows
}

// Query returns the named columns of the stored rows.
func (f *FakeRepo) Query(_ context.Context, table string, columns []string) ([]records.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.QueryErr[table]; err != nil {
		return nil, err
	}
	stored, ok := f.Tables[table]
	if !ok {
		return nil, fmt.Errorf("storagetest: no such table %q", table)
	}
	out := make([]records.Record, len(stored))
	for i, row := range stored {
		rec := make(records.Record, len(columns))
		for _, col := range columns {
			rec[col] = row[col]
		}
		out[i] = rec
	}
	return out, nil
}

// ReplaceAll swaps the table contents for the given positional rows.
func (f *FakeRepo) ReplaceAll(_ context.Context, table string, columns []string, rows [][]any) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ReplacedOrder = append(f.ReplacedOrder, table)
	if err := f.ReplaceErr[table]; err != nil {
		return 0, err
	}
	stored := make([]records.Record, len(rows))
	for i, row := range rows {
		rec := make(records.Record, len(columns))
		for j, col := range columns {
			rec[col] = row[j]
		}
		stored[i] = rec
	}
	f.Tables[table] = stored
	return int64(len(rows)), nil
}

// Exec is a no-op that records nothing.
func (f *FakeRepo) Exec(context.Context, string, ...any) error { return nil }

// Dialect returns an ANSI-quoting dialect.
func (f *FakeRepo) Dialect() storage.Dialect {
	return storage.Dialect{
		Name:        "fake",
		QuoteIdent:  storage.QuoteDouble,
		Placeholder: storage.PlaceholderQuestion,
	}
}

// Close marks the repo closed.
func (f *FakeRepo) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
}
