package schema

import (
	"fmt"
	"strings"
)

// QuoteFunc quotes a single identifier for a target dialect. The storage
// backends each provide one.
type QuoteFunc func(string) string

// BuildCreateTableSQL emits a CREATE TABLE IF NOT EXISTS statement for the
// given table. fqn is the possibly schema-qualified destination name
// ("silver.crm_cust_info"); each dotted segment is quoted with quote.
//
// The emitted SQL sticks to the type names in the TableDef, which are chosen
// to be portable across the supported backends. SQL Server targets do not
// accept IF NOT EXISTS and should pre-create their schema instead of using
// auto_create_table.
func BuildCreateTableSQL(fqn string, t TableDef, quote QuoteFunc) (string, error) {
	if fqn == "" {
		return "", fmt.Errorf("table name required")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("at least one column required")
	}
	if quote == nil {
		quote = func(s string) string { return s }
	}

	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.Name == "" || c.SQLType == "" {
			return "", fmt.Errorf("column name and type required")
		}
		def := quote(c.Name) + " " + c.SQLType
		if c.Default != "" {
			def += " DEFAULT " + c.Default
		}
		if !c.Nullable {
			def += " NOT NULL"
		}
		cols = append(cols, def)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		QualifyFQN(fqn, quote), strings.Join(cols, ",\n  ")), nil
}

// QualifyFQN quotes each dot-separated segment of a fully qualified name.
func QualifyFQN(fqn string, quote QuoteFunc) string {
	parts := strings.Split(fqn, ".")
	for i := range parts {
		parts[i] = quote(parts[i])
	}
	return strings.Join(parts, ".")
}

// Qualified joins an optional schema and a table name.
func Qualified(schemaName, table string) string {
	if schemaName == "" {
		return table
	}
	return schemaName + "." + table
}
