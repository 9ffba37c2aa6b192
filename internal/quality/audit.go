// Package quality implements the post-load data-quality audits: surrogate
// key uniqueness in the dimension feeds and referential integrity of the
// sales feed. Audits are read-only; findings are reported, never repaired,
// and block a run only when the pipeline is configured to promote them.
package quality

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"silverpipe/internal/schema"
	"silverpipe/internal/storage"
)

// Check names.
const (
	CheckUniqueness  = "key_uniqueness"
	CheckReferential = "referential_integrity"
)

// Tagged reasons attached to findings.
const (
	ReasonDuplicateKey    = "duplicate surrogate key"
	ReasonMissingProduct  = "missing product reference"
	ReasonMissingCustomer = "missing customer reference"
)

// Finding is one data-quality defect. It identifies the offending table and
// key and carries a tagged reason; it never implies the row was dropped.
type Finding struct {
	Check  string
	Table  string
	Key    string
	Reason string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s key=%s: %s", f.Check, f.Table, f.Key, f.Reason)
}

// DuplicateKeys reports every key value appearing more than once, one
// finding per distinct duplicated value, sorted by key for stable output.
func DuplicateKeys(table string, keys []string) []Finding {
	counts := make(map[string]int, len(keys))
	for _, k := range keys {
		counts[k]++
	}
	var dups []string
	for k, n := range counts {
		if n > 1 {
			dups = append(dups, k)
		}
	}
	sort.Strings(dups)

	findings := make([]Finding, len(dups))
	for i, k := range dups {
		findings[i] = Finding{Check: CheckUniqueness, Table: table, Key: k, Reason: ReasonDuplicateKey}
	}
	return findings
}

// SalesReference is the slice of a sales row the referential audit needs.
type SalesReference struct {
	OrderNumber string
	ProductKey  string
	CustomerID  string
}

// DanglingReferences reports every sales row whose product key or customer
// id has no matching dimension row. Rows can earn both findings. Order
// follows the input.
func DanglingReferences(table string, sales []SalesReference, productKeys, customerIDs map[string]bool) []Finding {
	var findings []Finding
	for _, s := range sales {
		if !productKeys[s.ProductKey] {
			findings = append(findings, Finding{
				Check: CheckReferential, Table: table,
				Key: s.OrderNumber, Reason: ReasonMissingProduct,
			})
		}
		if !customerIDs[s.CustomerID] {
			findings = append(findings, Finding{
				Check: CheckReferential, Table: table,
				Key: s.OrderNumber, Reason: ReasonMissingCustomer,
			})
		}
	}
	return findings
}

// Auditor reads the freshly loaded silver tables back and runs the checks.
type Auditor struct {
	Repo   storage.Repository
	Schema string
}

// Run executes all audits against the silver destination. The three table
// snapshots are read concurrently; the checks themselves are cheap. Errors
// here are structural (table unreadable), not data-quality findings.
func (a *Auditor) Run(ctx context.Context) ([]Finding, error) {
	var (
		custIDs   []string
		prodIDs   []string
		prodKeys  map[string]bool
		salesRefs []SalesReference
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := a.Repo.Query(ctx, a.qualified("crm_cust_info"), []string{"cst_id"})
		if err != nil {
			return fmt.Errorf("audit: read customers: %w", err)
		}
		custIDs = make([]string, len(rows))
		for i, r := range rows {
			custIDs[i] = r.String("cst_id")
		}
		return nil
	})
	g.Go(func() error {
		rows, err := a.Repo.Query(ctx, a.qualified("crm_prd_info"), []string{"prd_id", "prd_key"})
		if err != nil {
			return fmt.Errorf("audit: read products: %w", err)
		}
		prodIDs = make([]string, len(rows))
		prodKeys = make(map[string]bool, len(rows))
		for i, r := range rows {
			prodIDs[i] = r.String("prd_id")
			prodKeys[r.String("prd_key")] = true
		}
		return nil
	})
	g.Go(func() error {
		rows, err := a.Repo.Query(ctx, a.qualified("crm_sales_details"),
			[]string{"sls_ord_num", "sls_prd_key", "sls_cust_id"})
		if err != nil {
			return fmt.Errorf("audit: read sales: %w", err)
		}
		salesRefs = make([]SalesReference, len(rows))
		for i, r := range rows {
			salesRefs[i] = SalesReference{
				OrderNumber: r.String("sls_ord_num"),
				ProductKey:  r.String("sls_prd_key"),
				CustomerID:  r.String("sls_cust_id"),
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	custSet := make(map[string]bool, len(custIDs))
	for _, id := range custIDs {
		custSet[id] = true
	}

	var findings []Finding
	findings = append(findings, DuplicateKeys("crm_cust_info", custIDs)...)
	// Product versions share prd_key by design; uniqueness applies to the
	// surrogate prd_id.
	findings = append(findings, DuplicateKeys("crm_prd_info", prodIDs)...)
	findings = append(findings, DanglingReferences("crm_sales_details", salesRefs, prodKeys, custSet)...)
	return findings, nil
}

func (a *Auditor) qualified(table string) string {
	return schema.Qualified(a.Schema, table)
}
