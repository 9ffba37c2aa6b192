// Package bronze reads the six raw source tables as read-only snapshots.
// Bronze rows arrive exactly as the ingestion stage landed them; no
// transformation happens here.
package bronze

import (
	"context"
	"fmt"

	"silverpipe/internal/schema"
	"silverpipe/internal/storage"
	"silverpipe/pkg/records"
)

// Raw column sets of the bronze tables. The sales date columns are the raw
// integer YYYYMMDD payloads; silver repairs them into real dates.
var (
	CustInfoColumns = []string{
		"cst_id", "cst_key", "cst_firstname", "cst_lastname",
		"cst_marital_status", "cst_gndr", "cst_create_date",
	}
	PrdInfoColumns = []string{
		"prd_id", "prd_key", "prd_nm", "prd_cost", "prd_line",
		"prd_start_dt", "prd_end_dt",
	}
	SalesDetailsColumns = []string{
		"sls_ord_num", "sls_prd_key", "sls_cust_id",
		"sls_order_dt", "sls_ship_dt", "sls_due_dt",
		"sls_sales", "sls_quantity", "sls_price",
	}
	ErpCustColumns     = []string{"cid", "bdate", "gen"}
	ErpLocColumns      = []string{"cid", "cntry"}
	ErpCategoryColumns = []string{"id", "cat", "subcat", "maintenance"}
)

// Reader reads bronze snapshots through a storage repository.
type Reader struct {
	repo   storage.Repository
	schema string
}

// NewReader wraps repo; schemaName qualifies the bronze tables ("bronze"
// typically, empty for unqualified names).
func NewReader(repo storage.Repository, schemaName string) *Reader {
	return &Reader{repo: repo, schema: schemaName}
}

func (r *Reader) read(ctx context.Context, table string, columns []string) ([]records.Record, error) {
	rows, err := r.repo.Query(ctx, schema.Qualified(r.schema, table), columns)
	if err != nil {
		return nil, fmt.Errorf("bronze: read %s: %w", table, err)
	}
	return rows, nil
}

// Customers reads crm_cust_info.
func (r *Reader) Customers(ctx context.Context) ([]records.Record, error) {
	return r.read(ctx, "crm_cust_info", CustInfoColumns)
}

// Products reads crm_prd_info.
func (r *Reader) Products(ctx context.Context) ([]records.Record, error) {
	return r.read(ctx, "crm_prd_info", PrdInfoColumns)
}

// Sales reads crm_sales_details.
func (r *Reader) Sales(ctx context.Context) ([]records.Record, error) {
	return r.read(ctx, "crm_sales_details", SalesDetailsColumns)
}

// ErpCustomers reads erp_cust_az12.
func (r *Reader) ErpCustomers(ctx context.Context) ([]records.Record, error) {
	return r.read(ctx, "erp_cust_az12", ErpCustColumns)
}

// ErpLocations reads erp_loc_a101.
func (r *Reader) ErpLocations(ctx context.Context) ([]records.Record, error) {
	return r.read(ctx, "erp_loc_a101", ErpLocColumns)
}

// ErpCategories reads erp_px_cat_g1v2.
func (r *Reader) ErpCategories(ctx context.Context) ([]records.Record, error) {
	return r.read(ctx, "erp_px_cat_g1v2", ErpCategoryColumns)
}
