// Package storage contains the storage-agnostic contracts for the pipeline:
// the Repository interface, the backend factory registry, and shared SQL
// assembly helpers. Callers obtain a Repository via New without importing
// any backend or driver package directly; backends register themselves at
// init time (see internal/storage/all).
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"silverpipe/internal/config"
	"silverpipe/pkg/records"
)

// Config selects and parameterizes a backend.
type Config struct {
	// Kind names a registered backend: "postgres", "mysql", "mssql",
	// "sqlite", or "snowflake".
	Kind string
	DSN  string
	// BatchSize bounds each bulk write chunk; zero means the backend
	// default.
	BatchSize int
	// Options carries backend-specific settings from the pipeline config.
	Options config.Options
}

// Repository is the storage abstraction the pipeline runs against. Table
// arguments may be schema-qualified ("silver.crm_cust_info"); each backend
// quotes the segments for its dialect.
type Repository interface {
	// Query reads the named columns of every row in the table, as a
	// read-only snapshot.
	Query(ctx context.Context, table string, columns []string) ([]records.Record, error)

	// ReplaceAll clears the table and writes the given rows as one logical
	// unit of work. Either the table ends up holding exactly rows, or the
	// backend reports an error and the table is untouched.
	ReplaceAll(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	// Exec runs one arbitrary statement (DDL, session setup).
	Exec(ctx context.Context, query string, args ...any) error

	// Dialect exposes the backend's SQL spelling, for callers that
	// assemble DDL.
	Dialect() Dialect

	Close()
}

// Factory builds a Repository for one backend kind.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs a backend factory under kind. Backends call this from
// init; a duplicate registration panics because it is a programming error.
func Register(kind string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	if _, dup := factories[kind]; dup {
		panic(fmt.Sprintf("storage: backend %q registered twice", kind))
	}
	factories[kind] = f
}

// New constructs the Repository for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	f, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown backend %q (registered: %v)", cfg.Kind, Kinds())
	}
	return f(ctx, cfg)
}

// Kinds returns the registered backend names, sorted.
func Kinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
