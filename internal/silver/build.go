package silver

import (
	"time"

	"silverpipe/pkg/records"
)

// BuildCustomers runs the full customer transformation: latest-per-key
// deduplication over the raw rows, then per-row normalization.
func BuildCustomers(raws []records.Record) []CustomerRecord {
	deduped := LatestPerKey(raws, "cst_id", "cst_create_date")
	out := make([]CustomerRecord, len(deduped))
	for i, raw := range deduped {
		out[i] = NormalizeCustomer(raw)
	}
	return out
}

// BuildProducts normalizes every raw product row and derives the
// effective-dating chain across versions.
func BuildProducts(raws []records.Record) []ProductRecord {
	recs := make([]ProductRecord, len(raws))
	for i, raw := range raws {
		recs[i] = NormalizeProduct(raw)
	}
	return ChainEndDates(recs)
}

// BuildSales normalizes and repairs every raw sales row. No rows are
// dropped; referential problems are the audit layer's concern.
func BuildSales(raws []records.Record) []SalesRecord {
	out := make([]SalesRecord, len(raws))
	for i, raw := range raws {
		out[i] = NormalizeSales(raw)
	}
	return out
}

// BuildErpCustomers normalizes the ERP customer demographics snapshot.
func BuildErpCustomers(raws []records.Record, now time.Time) []ErpCustomerRecord {
	out := make([]ErpCustomerRecord, len(raws))
	for i, raw := range raws {
		out[i] = NormalizeErpCustomer(raw, now)
	}
	return out
}

// BuildErpLocations normalizes the ERP location snapshot.
func BuildErpLocations(raws []records.Record) []ErpLocationRecord {
	out := make([]ErpLocationRecord, len(raws))
	for i, raw := range raws {
		out[i] = NormalizeErpLocation(raw)
	}
	return out
}

// BuildErpCategories passes the ERP category reference table through.
func BuildErpCategories(raws []records.Record) []ErpCategoryRecord {
	out := make([]ErpCategoryRecord, len(raws))
	for i, raw := range raws {
		out[i] = NormalizeErpCategory(raw)
	}
	return out
}

// The *Rows functions serialize typed records into positional value rows
// aligned with the silver table definitions in internal/schema (including
// the trailing dwh_create_date load-audit column). Pointer fields serialize
// as SQL NULL when nil.

func CustomerRows(recs []CustomerRecord, loadedAt time.Time) [][]any {
	rows := make([][]any, len(recs))
	for i, r := range recs {
		rows[i] = []any{
			r.ID, r.Key, r.FirstName, r.LastName,
			string(r.MaritalStatus), string(r.Gender),
			nilIfZeroTime(r.CreatedAt), loadedAt,
		}
	}
	return rows
}

func ProductRows(recs []ProductRecord, loadedAt time.Time) [][]any {
	rows := make([][]any, len(recs))
	for i, r := range recs {
		rows[i] = []any{
			r.ID, r.CategoryID, r.Key, r.Name, r.Cost,
			string(r.Line), nilIfZeroTime(r.StartDate), nilIfNilTime(r.EndDate), loadedAt,
		}
	}
	return rows
}

func SalesRows(recs []SalesRecord, loadedAt time.Time) [][]any {
	rows := make([][]any, len(recs))
	for i, r := range recs {
		rows[i] = []any{
			r.OrderNumber, r.ProductKey, r.CustomerID,
			nilIfNilTime(r.OrderDate), nilIfNilTime(r.ShipDate), nilIfNilTime(r.DueDate),
			nilIfNilInt(r.Sales), r.Quantity, nilIfNilInt(r.Price), loadedAt,
		}
	}
	return rows
}

func ErpCustomerRows(recs []ErpCustomerRecord, loadedAt time.Time) [][]any {
	rows := make([][]any, len(recs))
	for i, r := range recs {
		rows[i] = []any{r.ID, nilIfNilTime(r.BirthDate), string(r.Gender), loadedAt}
	}
	return rows
}

func ErpLocationRows(recs []ErpLocationRecord, loadedAt time.Time) [][]any {
	rows := make([][]any, len(recs))
	for i, r := range recs {
		rows[i] = []any{r.ID, r.Country, loadedAt}
	}
	return rows
}

func ErpCategoryRows(recs []ErpCategoryRecord, loadedAt time.Time) [][]any {
	rows := make([][]any, len(recs))
	for i, r := range recs {
		rows[i] = []any{r.ID, r.Category, r.Subcategory, r.Maintenance, loadedAt}
	}
	return rows
}

func nilIfZeroTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func nilIfNilTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nilIfNilInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
