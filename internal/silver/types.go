// Package silver implements the silver-layer transformation rules: field
// normalization, latest-record deduplication, derived attributes, and the
// numeric/date repair policy applied to the six bronze source tables before
// they are written to the silver destinations.
package silver

import "time"

// Unknown is the sentinel label every unmapped code resolves to. Mapping
// never fails; it falls back here.
const Unknown = "n/a"

// MaritalStatus is the normalized marital-status label.
type MaritalStatus string

const (
	MaritalSingle  MaritalStatus = "Single"
	MaritalMarried MaritalStatus = "Married"
	MaritalUnknown MaritalStatus = Unknown
)

// Gender is the normalized gender label.
type Gender string

const (
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderUnknown Gender = Unknown
)

// ProductLine is the normalized product-line label.
type ProductLine string

const (
	LineMountain   ProductLine = "Mountain"
	LineRoad       ProductLine = "Road"
	LineOtherSales ProductLine = "Other Sales"
	LineTouring    ProductLine = "Touring"
	LineUnknown    ProductLine = Unknown
)

// CustomerRecord is one cleansed CRM customer. Exactly one record per ID
// survives a load: the raw row with the latest CreatedAt.
type CustomerRecord struct {
	ID            int64
	Key           string
	FirstName     string
	LastName      string
	MaritalStatus MaritalStatus
	Gender        Gender
	CreatedAt     time.Time
}

// ProductRecord is one cleansed CRM product version. CategoryID and Key are
// derived by splitting the raw composite key; EndDate is derived by chaining
// against the next version's StartDate and is nil for the current (open)
// version.
type ProductRecord struct {
	ID         int64
	CategoryID string
	Key        string
	Name       string
	Cost       int64
	Line       ProductLine
	StartDate  time.Time
	EndDate    *time.Time
}

// SalesRecord is one cleansed CRM sales order line. Sales and Price are
// pointers because the repair policy may resolve them to NULL rather than
// invent a value.
type SalesRecord struct {
	OrderNumber string
	ProductKey  string
	CustomerID  int64
	OrderDate   *time.Time
	ShipDate    *time.Time
	DueDate     *time.Time
	Sales       *int64
	Quantity    int64
	Price       *int64
}

// ErpCustomerRecord is one cleansed ERP customer demographic row. The NAS
// prefix carried by the source system is stripped from ID; future birth
// dates are resolved to nil.
type ErpCustomerRecord struct {
	ID        string
	BirthDate *time.Time
	Gender    Gender
}

// ErpLocationRecord is one cleansed ERP location row. Hyphens are stripped
// from ID so it joins against CustomerRecord.Key; country codes are expanded
// to full names.
type ErpLocationRecord struct {
	ID      string
	Country string
}

// ErpCategoryRecord is the ERP category reference table, passed through
// unchanged.
type ErpCategoryRecord struct {
	ID          string
	Category    string
	Subcategory string
	Maintenance string
}
