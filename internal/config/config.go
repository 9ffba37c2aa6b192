// Package config loads and validates the pipeline configuration.
//
// The binary itself takes no flags; the JSON config file is located via the
// SILVERPIPE_CONFIG environment variable (default configs/pipeline.json) and
// a handful of values may be overridden through environment variables,
// 12-factor style. A .env file is honored when present.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// DefaultPath is used when SILVERPIPE_CONFIG is not set.
const DefaultPath = "configs/pipeline.json"

// Options is a free-form JSON object carrying backend-specific settings
// (for example a session parameter for Snowflake or a pragmas list for
// SQLite). The typed getters never fail; they return the supplied default
// when the key is missing or holds a value of the wrong type.
type Options map[string]any

// String returns the string under key, or def.
func (o Options) String(key, def string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return def
}

// Bool returns the bool under key, or def.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return def
}

// Int returns the int under key, or def. JSON numbers decode as float64 and
// are truncated toward zero.
func (o Options) Int(key string, def int) int {
	switch v := o[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

// StringSlice returns the string elements of the array under key, preserving
// order and skipping non-string elements. Missing or non-array values yield
// nil.
func (o Options) StringSlice(key string) []string {
	switch v := o[key].(type) {
	case []string:
		return v
	case []any:
		var out []string
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// UnmarshalJSON decodes a JSON object into the map; null or empty input
// yields a non-nil empty map so callers never need a nil check.
func (o *Options) UnmarshalJSON(b []byte) error {
	*o = Options{}
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	m := map[string]any{}
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*o = m
	return nil
}

// Endpoint describes one side of the pipeline: where bronze rows are read
// from, or where silver rows are written to.
type Endpoint struct {
	// Kind selects the registered storage backend: "postgres", "mysql",
	// "mssql", "sqlite", or "snowflake".
	Kind string `json:"kind"`
	DSN  string `json:"dsn"`
	// Schema is the namespace prefix for the six tables (e.g. "bronze",
	// "silver"). Empty means unqualified table names.
	Schema string `json:"schema,omitempty"`
	// AutoCreateTable creates missing destination tables before the load.
	AutoCreateTable bool    `json:"auto_create_table,omitempty"`
	Options         Options `json:"options,omitempty"`
}

// Pipeline is the full run specification.
type Pipeline struct {
	Job    string   `json:"job"`
	Source Endpoint `json:"source"`
	Target Endpoint `json:"target"`

	Runtime struct {
		// BatchSize bounds each bulk INSERT/COPY chunk. Zero means the
		// backend default.
		BatchSize int `json:"batch_size,omitempty"`
	} `json:"runtime"`

	Audit struct {
		// BlockOnViolation promotes data-quality findings from report-only
		// to run-failing. Default false: findings are reported, the load
		// stands.
		BlockOnViolation bool `json:"block_on_violation,omitempty"`
	} `json:"audit"`
}

// Severity classifies a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one problem found while validating a Pipeline.
type Issue struct {
	Severity Severity
	Path     string
	Message  string
}

// Path resolves the config file location: SILVERPIPE_CONFIG wins, otherwise
// DefaultPath.
func Path() string {
	if p := os.Getenv("SILVERPIPE_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads and decodes the pipeline config at path and applies environment
// overrides (SILVERPIPE_SOURCE_DSN, SILVERPIPE_TARGET_DSN,
// SILVERPIPE_BATCH_SIZE).
func Load(path string) (Pipeline, error) {
	var p Pipeline
	f, err := os.Open(path)
	if err != nil {
		return p, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("decode config %s: %w", path, err)
	}

	if dsn := os.Getenv("SILVERPIPE_SOURCE_DSN"); dsn != "" {
		p.Source.DSN = dsn
	}
	if dsn := os.Getenv("SILVERPIPE_TARGET_DSN"); dsn != "" {
		p.Target.DSN = dsn
	}
	p.Runtime.BatchSize = pickInt(getenvInt("SILVERPIPE_BATCH_SIZE", 0), p.Runtime.BatchSize)
	return p, nil
}

// Validate reports structural problems with the pipeline config. Errors make
// the config unusable; warnings are advisory.
func Validate(p Pipeline) []Issue {
	var issues []Issue

	checkEndpoint := func(path string, e Endpoint) {
		if e.Kind == "" {
			issues = append(issues, Issue{SeverityError, path + ".kind", "backend kind is required"})
		}
		if e.DSN == "" {
			issues = append(issues, Issue{SeverityError, path + ".dsn", "DSN is required"})
		}
	}
	checkEndpoint("source", p.Source)
	checkEndpoint("target", p.Target)

	if p.Job == "" {
		issues = append(issues, Issue{SeverityWarning, "job", "job name is empty; logs will use \"silverpipe\""})
	}
	if p.Runtime.BatchSize < 0 {
		issues = append(issues, Issue{SeverityError, "runtime.batch_size", "batch size must be >= 0"})
	}
	if p.Source.Kind != "" && p.Source.Kind == p.Target.Kind && p.Source.DSN == p.Target.DSN && p.Source.Schema == p.Target.Schema {
		issues = append(issues, Issue{SeverityError, "target.schema",
			"source and target resolve to the same schema; the load would truncate its own input"})
	}
	return issues
}

// HasError reports whether any issue is error-severity.
func HasError(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// pickInt returns a when non-zero, otherwise b.
func pickInt(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}

// getenvInt parses an integer environment variable, returning def when the
// variable is unset or malformed.
func getenvInt(name string, def int) int {
	s := os.Getenv(name)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
