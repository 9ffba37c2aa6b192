// Package schema describes the six silver destination tables and generates
// their DDL. Column order here is the write-order contract: the silver row
// serializers emit positional values aligned with these definitions.
package schema

// ColumnDef is a minimal description of a DB column.
type ColumnDef struct {
	Name     string // e.g. "cst_id"
	SQLType  string // e.g. "BIGINT", "DATE", "VARCHAR(50)"
	Nullable bool
	Default  string // raw SQL default
}

// TableDef describes a table to (optionally) create.
type TableDef struct {
	// Name is the bare table name; schema qualification happens at the
	// call site so the same definition serves bronze reads and silver
	// writes.
	Name    string
	Columns []ColumnDef
}

// ColumnNames returns the column names in definition order.
func (t TableDef) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// dwh_create_date is appended to every silver table: the wall-clock instant
// the load wrote the row. It is metadata, not sourced data.
var dwhCreateDate = ColumnDef{Name: "dwh_create_date", SQLType: "TIMESTAMP", Nullable: true}

// CRMCustInfo is the cleansed CRM customer master.
var CRMCustInfo = TableDef{
	Name: "crm_cust_info",
	Columns: []ColumnDef{
		{Name: "cst_id", SQLType: "BIGINT"},
		{Name: "cst_key", SQLType: "VARCHAR(50)", Nullable: true},
		{Name: "cst_firstname", SQLType: "VARCHAR(50)", Nullable: true},
		{Name: "cst_lastname", SQLType: "VARCHAR(50)", Nullable: true},
		{Name: "cst_marital_status", SQLType: "VARCHAR(20)", Nullable: true},
		{Name: "cst_gndr", SQLType: "VARCHAR(20)", Nullable: true},
		{Name: "cst_create_date", SQLType: "DATE", Nullable: true},
		dwhCreateDate,
	},
}

// CRMPrdInfo is the cleansed CRM product catalog with derived category id,
// clean key, and effective-dating columns.
var CRMPrdInfo = TableDef{
	Name: "crm_prd_info",
	Columns: []ColumnDef{
		{Name: "prd_id", SQLType: "BIGINT"},
		{Name: "cat_id", SQLType: "VARCHAR(50)", Nullable: true},
		{Name: "prd_key", SQLType: "VARCHAR(50)", Nullable: true},
		{Name: "prd_nm", SQLType: "VARCHAR(100)", Nullable: true},
		{Name: "prd_cost", SQLType: "BIGINT", Nullable: true},
		{Name: "prd_line", SQLType: "VARCHAR(20)", Nullable: true},
		{Name: "prd_start_dt", SQLType: "DATE", Nullable: true},
		{Name: "prd_end_dt", SQLType: "DATE", Nullable: true},
		dwhCreateDate,
	},
}

// CRMSalesDetails is the cleansed and repaired CRM sales fact feed.
var CRMSalesDetails = TableDef{
	Name: "crm_sales_details",
	Columns: []ColumnDef{
		{Name: "sls_ord_num", SQLType: "VARCHAR(50)"},
		{Name: "sls_prd_key", SQLType: "VARCHAR(50)", Nullable: true},
		{Name: "sls_cust_id", SQLType: "BIGINT", Nullable: true},
		{Name: "sls_order_dt", SQLType: "DATE", Nullable: true},
		{Name: "sls_ship_dt", SQLType: "DATE", Nullable: true},
		{Name: "sls_due_dt", SQLType: "DATE", Nullable: true},
		{Name: "sls_sales", SQLType: "BIGINT", Nullable: true},
		{Name: "sls_quantity", SQLType: "BIGINT", Nullable: true},
		{Name: "sls_price", SQLType: "BIGINT", Nullable: true},
		dwhCreateDate,
	},
}

// ERPCustAZ12 is the cleansed ERP customer demographics snapshot.
var ERPCustAZ12 = TableDef{
	Name: "erp_cust_az12",
	Columns: []ColumnDef{
		{Name: "cid", SQLType: "VARCHAR(50)"},
		{Name: "bdate", SQLType: "DATE", Nullable: true},
		{Name: "gen", SQLType: "VARCHAR(20)", Nullable: true},
		dwhCreateDate,
	},
}

// ERPLocA101 is the cleansed ERP location snapshot.
var ERPLocA101 = TableDef{
	Name: "erp_loc_a101",
	Columns: []ColumnDef{
		{Name: "cid", SQLType: "VARCHAR(50)"},
		{Name: "cntry", SQLType: "VARCHAR(50)", Nullable: true},
		dwhCreateDate,
	},
}

// ERPPxCatG1V2 is the ERP category reference table, passed through.
var ERPPxCatG1V2 = TableDef{
	Name: "erp_px_cat_g1v2",
	Columns: []ColumnDef{
		{Name: "id", SQLType: "VARCHAR(50)"},
		{Name: "cat", SQLType: "VARCHAR(50)", Nullable: true},
		{Name: "subcat", SQLType: "VARCHAR(50)", Nullable: true},
		{Name: "maintenance", SQLType: "VARCHAR(50)", Nullable: true},
		dwhCreateDate,
	},
}

// SilverTables lists every destination table in load order.
var SilverTables = []TableDef{
	CRMCustInfo,
	CRMPrdInfo,
	CRMSalesDetails,
	ERPCustAZ12,
	ERPLocA101,
	ERPPxCatG1V2,
}
