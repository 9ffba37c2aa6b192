// Package loadrun orchestrates one silver load: for each of the six tables,
// clear → transform-and-write → count-and-report, followed by the read-only
// data-quality audits. A failure in any step ends the run; tables already
// reloaded stay reloaded (there is no cross-table rollback, by contract).
package loadrun

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"silverpipe/internal/bronze"
	"silverpipe/internal/quality"
	"silverpipe/internal/schema"
	"silverpipe/internal/silver"
	"silverpipe/internal/storage"
)

// Status is the terminal state of a run.
type Status string

const (
	StatusComplete Status = "COMPLETE"
	StatusFailed   Status = "FAILED"
)

// TableResult reports one table's load.
type TableResult struct {
	Table    string
	Rows     int64
	Duration time.Duration
}

// Result is the full run report.
type Result struct {
	RunID       string
	Job         string
	StartedAt   time.Time
	Duration    time.Duration
	Status      Status
	FailedTable string
	Err         error
	Tables      []TableResult
	Findings    []quality.Finding
}

// Runner executes the batch. Source and Target may be the same repository
// with different schemas, or two different backends entirely.
type Runner struct {
	Source       storage.Repository
	Target       storage.Repository
	SourceSchema string
	TargetSchema string

	// AutoCreate creates missing destination tables before loading.
	AutoCreate bool
	// BlockOnViolation promotes audit findings to a run failure. The data
	// stays loaded either way; only the verdict changes.
	BlockOnViolation bool

	Job string
	Log *zap.SugaredLogger

	// nowFn is a clock seam for tests; nil means time.Now.
	nowFn func() time.Time
}

func (r *Runner) now() time.Time {
	if r.nowFn != nil {
		return r.nowFn()
	}
	return time.Now()
}

type tableStep struct {
	def   schema.TableDef
	build func(ctx context.Context, loadedAt time.Time) ([][]any, error)
}

// steps wires the six table transformations in load order.
func (r *Runner) steps() []tableStep {
	reader := bronze.NewReader(r.Source, r.SourceSchema)
	return []tableStep{
		{schema.CRMCustInfo, func(ctx context.Context, at time.Time) ([][]any, error) {
			raws, err := reader.Customers(ctx)
			if err != nil {
				return nil, err
			}
			return silver.CustomerRows(silver.BuildCustomers(raws), at), nil
		}},
		{schema.CRMPrdInfo, func(ctx context.Context, at time.Time) ([][]any, error) {
			raws, err := reader.Products(ctx)
			if err != nil {
				return nil, err
			}
			return silver.ProductRows(silver.BuildProducts(raws), at), nil
		}},
		{schema.CRMSalesDetails, func(ctx context.Context, at time.Time) ([][]any, error) {
			raws, err := reader.Sales(ctx)
			if err != nil {
				return nil, err
			}
			return silver.SalesRows(silver.BuildSales(raws), at), nil
		}},
		{schema.ERPCustAZ12, func(ctx context.Context, at time.Time) ([][]any, error) {
			raws, err := reader.ErpCustomers(ctx)
			if err != nil {
				return nil, err
			}
			return silver.ErpCustomerRows(silver.BuildErpCustomers(raws, at), at), nil
		}},
		{schema.ERPLocA101, func(ctx context.Context, at time.Time) ([][]any, error) {
			raws, err := reader.ErpLocations(ctx)
			if err != nil {
				return nil, err
			}
			return silver.ErpLocationRows(silver.BuildErpLocations(raws), at), nil
		}},
		{schema.ERPPxCatG1V2, func(ctx context.Context, at time.Time) ([][]any, error) {
			raws, err := reader.ErpCategories(ctx)
			if err != nil {
				return nil, err
			}
			return silver.ErpCategoryRows(silver.BuildErpCategories(raws), at), nil
		}},
	}
}

// Run executes the whole batch and returns the report. The returned error
// is non-nil exactly when Result.Status is StatusFailed.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	res := Result{
		RunID:     xid.New().String(),
		Job:       r.Job,
		StartedAt: r.now(),
		Status:    StatusComplete,
	}
	log := r.Log.With("run_id", res.RunID, "job", res.Job)
	log.Infow("run started",
		"source_schema", r.SourceSchema, "target_schema", r.TargetSchema)

	fail := func(table string, err error) (Result, error) {
		res.Status = StatusFailed
		res.FailedTable = table
		res.Err = err
		res.Duration = r.now().Sub(res.StartedAt)
		log.Errorw("run failed", "table", table, "error", err)
		return res, err
	}

	if r.AutoCreate {
		if err := r.ensureTables(ctx); err != nil {
			return fail("", err)
		}
	}

	for _, step := range r.steps() {
		start := r.now()
		rows, err := step.build(ctx, res.StartedAt)
		if err != nil {
			return fail(step.def.Name, fmt.Errorf("transform %s: %w", step.def.Name, err))
		}

		dest := schema.Qualified(r.TargetSchema, step.def.Name)
		n, err := r.Target.ReplaceAll(ctx, dest, step.def.ColumnNames(), rows)
		if err != nil {
			return fail(step.def.Name, fmt.Errorf("load %s: %w", step.def.Name, err))
		}

		elapsed := r.now().Sub(start).Truncate(time.Millisecond)
		res.Tables = append(res.Tables, TableResult{Table: step.def.Name, Rows: n, Duration: elapsed})
		log.Infow("table loaded", "table", step.def.Name, "rows", n, "elapsed", elapsed.String())
	}

	auditor := &quality.Auditor{Repo: r.Target, Schema: r.TargetSchema}
	findings, err := auditor.Run(ctx)
	if err != nil {
		return fail("", fmt.Errorf("audit: %w", err))
	}
	res.Findings = findings
	for _, f := range findings {
		log.Warnw("data-quality finding",
			"check", f.Check, "table", f.Table, "key", f.Key, "reason", f.Reason)
	}
	if r.BlockOnViolation && len(findings) > 0 {
		return fail("", fmt.Errorf("audit: %d data-quality findings with blocking policy enabled", len(findings)))
	}

	res.Duration = r.now().Sub(res.StartedAt)
	log.Infow("run complete",
		"tables", len(res.Tables), "findings", len(findings),
		"elapsed", res.Duration.Truncate(time.Millisecond).String())
	return res, nil
}

// ensureTables creates any missing destination table using the target
// backend's dialect.
func (r *Runner) ensureTables(ctx context.Context) error {
	quote := r.Target.Dialect().QuoteIdent
	for _, def := range schema.SilverTables {
		ddl, err := schema.BuildCreateTableSQL(schema.Qualified(r.TargetSchema, def.Name), def, quote)
		if err != nil {
			return fmt.Errorf("ddl %s: %w", def.Name, err)
		}
		if err := r.Target.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("create %s: %w", def.Name, err)
		}
	}
	return nil
}
