// Package records defines the generic row representation exchanged between
// the bronze reader, the silver transformers, and the storage backends.
//
// A Record is a column-name → value map. Values come straight from the
// database driver, so the accessors are deliberately forgiving about the
// concrete Go type: integers may arrive as int64, float64, or []byte
// depending on the backend, dates as time.Time or as raw numeric YYYYMMDD
// payloads, and so on.
package records

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Record is one raw row keyed by column name.
type Record map[string]any

// String returns the value under key rendered as a string, with surrounding
// whitespace preserved. Missing keys and SQL NULLs yield "".
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case time.Time:
		return s.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", s)
	}
}

// Int64 returns the value under key as an int64 together with a presence
// flag. NULLs, missing keys, and unparseable values report ok=false.
func (r Record) Int64(key string) (int64, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	case []byte:
		i, err := strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64)
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// Time returns the value under key as a time.Time together with a presence
// flag. Drivers that return DATE columns as text are handled via the ISO
// layout.
func (r Record) Time(key string) (time.Time, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	case string:
		return parseISO(t)
	case []byte:
		return parseISO(string(t))
	default:
		return time.Time{}, false
	}
}

func parseISO(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Canonical renders the record as a stable "k=v" line with keys sorted
// lexicographically. Two records with equal content always produce the same
// canonical form regardless of map iteration order; the deduplicator hashes
// this form for its tie-break.
func (r Record) Canonical() string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(fmt.Sprintf("%v", r[k]))
	}
	return b.String()
}
