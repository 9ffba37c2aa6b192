package storage

import (
	"strconv"
	"strings"
)

// Dialect captures the per-backend SQL spelling differences the shared
// helpers need: identifier quoting and bind-parameter placeholders.
type Dialect struct {
	Name string
	// QuoteIdent quotes a single identifier segment.
	QuoteIdent func(string) string
	// Placeholder renders the n-th bind parameter, 1-based.
	Placeholder func(n int) string
}

// FQN quotes each dot-separated segment of a possibly schema-qualified name.
func (d Dialect) FQN(fqn string) string {
	parts := strings.Split(fqn, ".")
	for i := range parts {
		parts[i] = d.QuoteIdent(parts[i])
	}
	return strings.Join(parts, ".")
}

// QuoteDouble quotes with ANSI double quotes, doubling embedded quotes.
// Used by postgres, snowflake, and sqlite.
func QuoteDouble(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// QuoteBacktick quotes with MySQL backticks, doubling embedded backticks.
func QuoteBacktick(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// QuoteBracket quotes with SQL Server brackets, doubling embedded closers.
func QuoteBracket(s string) string {
	return "[" + strings.ReplaceAll(s, "]", "]]") + "]"
}

// PlaceholderQuestion renders "?" irrespective of position (mysql, sqlite,
// snowflake).
func PlaceholderQuestion(int) string { return "?" }

// PlaceholderDollar renders "$n" (postgres wire protocol).
func PlaceholderDollar(n int) string { return "$" + strconv.Itoa(n) }

// PlaceholderAt renders "@pn" (SQL Server).
func PlaceholderAt(n int) string { return "@p" + strconv.Itoa(n) }
