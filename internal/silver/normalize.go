package silver

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"silverpipe/pkg/records"
)

// fold performs full Unicode case folding so code comparison is
// case-insensitive regardless of source-system casing.
var fold = cases.Fold()

// Exhaustive code → label tables. Keys are case-folded, values are the only
// labels the silver layer emits; anything absent resolves to the Unknown
// sentinel via mapCode.
var (
	maritalCodes = map[string]MaritalStatus{
		"s": MaritalSingle,
		"m": MaritalMarried,
	}
	genderCodes = map[string]Gender{
		"f":      GenderFemale,
		"female": GenderFemale,
		"m":      GenderMale,
		"male":   GenderMale,
	}
	lineCodes = map[string]ProductLine{
		"m": LineMountain,
		"r": LineRoad,
		"s": LineOtherSales,
		"t": LineTouring,
	}
	countryCodes = map[string]string{
		"de":  "Germany",
		"us":  "United States",
		"usa": "United States",
	}
)

func normKey(code string) string {
	return fold.String(strings.TrimSpace(code))
}

// ParseMaritalStatus maps a raw marital-status code to its label.
func ParseMaritalStatus(code string) MaritalStatus {
	if v, ok := maritalCodes[normKey(code)]; ok {
		return v
	}
	return MaritalUnknown
}

// ParseGender maps a raw gender code to its label.
func ParseGender(code string) Gender {
	if v, ok := genderCodes[normKey(code)]; ok {
		return v
	}
	return GenderUnknown
}

// ParseProductLine maps a raw product-line code to its label.
func ParseProductLine(code string) ProductLine {
	if v, ok := lineCodes[normKey(code)]; ok {
		return v
	}
	return LineUnknown
}

// ExpandCountry expands a raw country code to a full country name. Blank
// input yields the Unknown sentinel; unmapped non-blank input is kept as
// entered, trimmed.
func ExpandCountry(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Unknown
	}
	if v, ok := countryCodes[fold.String(trimmed)]; ok {
		return v
	}
	return trimmed
}

// NormalizeCustomer cleanses one raw crm_cust_info row. Deduplication happens
// separately; this is a pure per-row transformation.
func NormalizeCustomer(raw records.Record) CustomerRecord {
	id, _ := raw.Int64("cst_id")
	created, _ := raw.Time("cst_create_date")
	return CustomerRecord{
		ID:            id,
		Key:           strings.TrimSpace(raw.String("cst_key")),
		FirstName:     strings.TrimSpace(raw.String("cst_firstname")),
		LastName:      strings.TrimSpace(raw.String("cst_lastname")),
		MaritalStatus: ParseMaritalStatus(raw.String("cst_marital_status")),
		Gender:        ParseGender(raw.String("cst_gndr")),
		CreatedAt:     created,
	}
}

// NormalizeProduct cleanses one raw crm_prd_info row: key split, cost
// defaulting, and line mapping. EndDate chaining is applied afterwards over
// the whole set (see ChainEndDates).
func NormalizeProduct(raw records.Record) ProductRecord {
	id, _ := raw.Int64("prd_id")
	cost, ok := raw.Int64("prd_cost")
	if !ok || cost < 0 {
		cost = 0
	}
	start, _ := raw.Time("prd_start_dt")
	catID, key := SplitProductKey(raw.String("prd_key"))
	return ProductRecord{
		ID:         id,
		CategoryID: catID,
		Key:        key,
		Name:       strings.TrimSpace(raw.String("prd_nm")),
		Cost:       cost,
		Line:       ParseProductLine(raw.String("prd_line")),
		StartDate:  start,
	}
}

// NormalizeSales cleanses one raw crm_sales_details row, applying the date
// and numeric repair policies.
func NormalizeSales(raw records.Record) SalesRecord {
	custID, _ := raw.Int64("sls_cust_id")
	qty, _ := raw.Int64("sls_quantity")

	rec := SalesRecord{
		OrderNumber: strings.TrimSpace(raw.String("sls_ord_num")),
		ProductKey:  strings.TrimSpace(raw.String("sls_prd_key")),
		CustomerID:  custID,
		OrderDate:   RepairDate(raw["sls_order_dt"]),
		ShipDate:    RepairDate(raw["sls_ship_dt"]),
		DueDate:     RepairDate(raw["sls_due_dt"]),
		Quantity:    qty,
	}
	rec.Sales = nullableInt64(raw, "sls_sales")
	rec.Price = nullableInt64(raw, "sls_price")
	rec.Sales, rec.Price = RepairSalesAmounts(rec.Sales, rec.Quantity, rec.Price)
	return rec
}

// NormalizeErpCustomer cleanses one raw erp_cust_az12 row. now anchors the
// future-birth-date check so runs are reproducible in tests.
func NormalizeErpCustomer(raw records.Record, now time.Time) ErpCustomerRecord {
	id := strings.TrimSpace(raw.String("cid"))
	// Some feeds prefix the customer id with the source-system tag "NAS".
	if len(id) >= 3 && strings.EqualFold(id[:3], "NAS") {
		id = id[3:]
	}
	rec := ErpCustomerRecord{
		ID:     id,
		Gender: ParseGender(raw.String("gen")),
	}
	if bd, ok := raw.Time("bdate"); ok && !bd.After(now) {
		rec.BirthDate = &bd
	}
	return rec
}

// NormalizeErpLocation cleanses one raw erp_loc_a101 row.
func NormalizeErpLocation(raw records.Record) ErpLocationRecord {
	return ErpLocationRecord{
		ID:      strings.ReplaceAll(strings.TrimSpace(raw.String("cid")), "-", ""),
		Country: ExpandCountry(raw.String("cntry")),
	}
}

// NormalizeErpCategory passes one raw erp_px_cat_g1v2 row through with
// whitespace trimmed.
func NormalizeErpCategory(raw records.Record) ErpCategoryRecord {
	return ErpCategoryRecord{
		ID:          strings.TrimSpace(raw.String("id")),
		Category:    strings.TrimSpace(raw.String("cat")),
		Subcategory: strings.TrimSpace(raw.String("subcat")),
		Maintenance: strings.TrimSpace(raw.String("maintenance")),
	}
}

func nullableInt64(raw records.Record, key string) *int64 {
	if v, ok := raw.Int64(key); ok {
		return &v
	}
	return nil
}
