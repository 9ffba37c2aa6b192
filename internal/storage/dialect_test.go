// Tests for the SQL assembly helpers shared by the database/sql backends.
package storage

import (
	"testing"
)

// TestQuoting verifies identifier quoting per dialect, including escaping of
// embedded quote characters by doubling.
func TestQuoting(t *testing.T) {
	cases := []struct {
		fn       func(string) string
		in, want string
	}{
		{QuoteDouble, "simple", `"simple"`},
		{QuoteDouble, `odd"name`, `"odd""name"`},
		{QuoteBacktick, "simple", "`simple`"},
		{QuoteBacktick, "tick`name", "`tick``name`"},
		{QuoteBracket, "simple", "[simple]"},
		{QuoteBracket, "odd]name", "[odd]]name]"},
	}
	for _, tc := range cases {
		if got := tc.fn(tc.in); got != tc.want {
			t.Fatalf("quote(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

// TestDialectFQN verifies that schema-qualified names quote each dotted
// segment separately.
func TestDialectFQN(t *testing.T) {
	d := Dialect{Name: "test", QuoteIdent: QuoteDouble, Placeholder: PlaceholderDollar}
	cases := []struct{ in, want string }{
		{"table", `"table"`},
		{"silver.table", `"silver"."table"`},
	}
	for _, tc := range cases {
		if got := d.FQN(tc.in); got != tc.want {
			t.Fatalf("FQN(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

// TestPlaceholders verifies the three placeholder spellings.
func TestPlaceholders(t *testing.T) {
	if got := PlaceholderQuestion(5); got != "?" {
		t.Fatalf("question placeholder = %q", got)
	}
	if got := PlaceholderDollar(3); got != "$3" {
		t.Fatalf("dollar placeholder = %q", got)
	}
	if got := PlaceholderAt(2); got != "@p2" {
		t.Fatalf("at placeholder = %q", got)
	}
}

// TestBuildSelectSQL verifies column quoting and table qualification in the
// generated SELECT.
func TestBuildSelectSQL(t *testing.T) {
	d := Dialect{Name: "mysql", QuoteIdent: QuoteBacktick, Placeholder: PlaceholderQuestion}
	got := BuildSelectSQL(d, "bronze.crm_cust_info", []string{"cst_id", "cst_key"})
	want := "SELECT `cst_id`, `cst_key` FROM `bronze`.`crm_cust_info`"
	if got != want {
		t.Fatalf("BuildSelectSQL = %q; want %q", got, want)
	}
}

// TestBuildInsertSQL verifies multi-row VALUES generation with positional
// placeholders numbered across rows.
func TestBuildInsertSQL(t *testing.T) {
	pg := Dialect{Name: "postgres", QuoteIdent: QuoteDouble, Placeholder: PlaceholderDollar}
	got := BuildInsertSQL(pg, "silver.t", []string{"a", "b"}, 2)
	want := `INSERT INTO "silver"."t" ("a", "b") VALUES ($1, $2), ($3, $4)`
	if got != want {
		t.Fatalf("BuildInsertSQL(pg) = %q; want %q", got, want)
	}

	ms := Dialect{Name: "mssql", QuoteIdent: QuoteBracket, Placeholder: PlaceholderAt}
	got = BuildInsertSQL(ms, "t", []string{"a"}, 3)
	want = "INSERT INTO [t] ([a]) VALUES (@p1), (@p2), (@p3)"
	if got != want {
		t.Fatalf("BuildInsertSQL(mssql) = %q; want %q", got, want)
	}
}
