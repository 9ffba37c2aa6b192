// Package config tests exercise the JSON configuration helpers: the Options
// typed getters, the custom unmarshaling semantics, file loading with
// environment overrides, and pipeline validation.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

/*
TestOptionsGetters verifies that the typed Options getters return:
 1. the stored value when present and of the correct type,
 2. the provided default when the key is missing or holds the wrong type.
*/
func TestOptionsGetters(t *testing.T) {
	o := Options{
		"s":       "ok",
		"n":       float64(3.9), // typical encoding/json number
		"i":       7,
		"b":       true,
		"arr_any": []any{"a", 2, "c"},
		"arr_str": []string{"x", "y"},
	}

	if got := o.String("s", "zzz"); got != "ok" {
		t.Fatalf("String(s) = %q; want ok", got)
	}
	if got := o.String("n", "def"); got != "def" {
		t.Fatalf("String(n) = %q; want default", got)
	}
	if got := o.Bool("b", false); got != true {
		t.Fatalf("Bool(b) = %v; want true", got)
	}
	if got := o.Bool("s", true); got != true {
		t.Fatalf("Bool(s) = %v; want default true", got)
	}
	if got := o.Int("n", -1); got != 3 {
		t.Fatalf("Int(n) = %d; want 3 (truncated)", got)
	}
	if got := o.Int("i", -1); got != 7 {
		t.Fatalf("Int(i) = %d; want 7", got)
	}
	if got := o.Int("missing", 99); got != 99 {
		t.Fatalf("Int(missing) = %d; want 99", got)
	}

	gotAny := o.StringSlice("arr_any")
	if len(gotAny) != 2 || gotAny[0] != "a" || gotAny[1] != "c" {
		t.Fatalf("StringSlice(arr_any) = %#v; want [a c]", gotAny)
	}
	gotStr := o.StringSlice("arr_str")
	if len(gotStr) != 2 || gotStr[0] != "x" || gotStr[1] != "y" {
		t.Fatalf("StringSlice(arr_str) = %#v; want [x y]", gotStr)
	}
	if got := o.StringSlice("missing"); got != nil {
		t.Fatalf("StringSlice(missing) = %#v; want nil", got)
	}
}

/*
TestOptionsUnmarshalJSON verifies the custom json.Unmarshaler:
  - null or empty input results in a non-nil, empty map,
  - a valid object decodes into the map,
  - non-object JSON returns an error.
*/
func TestOptionsUnmarshalJSON(t *testing.T) {
	var o1 Options
	if err := o1.UnmarshalJSON([]byte("null")); err != nil {
		t.Fatalf("UnmarshalJSON(null) error: %v", err)
	}
	if o1 == nil || len(o1) != 0 {
		t.Fatalf("UnmarshalJSON(null) => %#v; want empty non-nil map", o1)
	}

	var o2 Options
	if err := o2.UnmarshalJSON(nil); err != nil {
		t.Fatalf("UnmarshalJSON(empty) error: %v", err)
	}
	if o2 == nil || len(o2) != 0 {
		t.Fatalf("UnmarshalJSON(empty) => %#v; want empty non-nil map", o2)
	}

	var o3 Options
	if err := json.Unmarshal([]byte(`{"a":"b","n":1}`), &o3); err != nil {
		t.Fatalf("Unmarshal(object) error: %v", err)
	}
	if len(o3) != 2 || o3["a"] != "b" {
		t.Fatalf("Unmarshal(object) unexpected content: %#v", o3)
	}

	var o4 Options
	if err := o4.UnmarshalJSON([]byte(`123`)); err == nil {
		t.Fatal("UnmarshalJSON(123) expected error, got nil")
	}
}

/*
TestLoad_EnvOverrides writes a minimal config file and verifies that:
  - the JSON fields decode into the Pipeline,
  - SILVERPIPE_TARGET_DSN and SILVERPIPE_BATCH_SIZE override file values,
  - unknown fields are rejected.
*/
func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.json")
	body := `{
		"job": "dwh_silver",
		"source": {"kind": "postgres", "dsn": "postgres://src", "schema": "bronze"},
		"target": {"kind": "postgres", "dsn": "postgres://dst", "schema": "silver", "auto_create_table": true},
		"runtime": {"batch_size": 500},
		"audit": {"block_on_violation": true}
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SILVERPIPE_TARGET_DSN", "postgres://override")
	t.Setenv("SILVERPIPE_BATCH_SIZE", "2000")

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Job != "dwh_silver" || p.Source.Schema != "bronze" || !p.Target.AutoCreateTable {
		t.Fatalf("unexpected pipeline: %+v", p)
	}
	if p.Target.DSN != "postgres://override" {
		t.Fatalf("target DSN = %q; want env override", p.Target.DSN)
	}
	if p.Runtime.BatchSize != 2000 {
		t.Fatalf("batch size = %d; want 2000 (env override)", p.Runtime.BatchSize)
	}
	if !p.Audit.BlockOnViolation {
		t.Fatal("audit.block_on_violation not decoded")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"job":"x","mystery":1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatal("Load(bad) expected error for unknown field")
	}
}

/*
TestValidate covers the validation rules:
  - missing kind/DSN are errors,
  - empty job is only a warning,
  - identical source and target schema is an error (self-truncation guard).
*/
func TestValidate(t *testing.T) {
	var p Pipeline
	issues := Validate(p)
	if !HasError(issues) {
		t.Fatalf("empty pipeline should produce errors; got %#v", issues)
	}

	p.Source = Endpoint{Kind: "postgres", DSN: "dsn", Schema: "bronze"}
	p.Target = Endpoint{Kind: "postgres", DSN: "dsn", Schema: "silver"}
	issues = Validate(p)
	if HasError(issues) {
		t.Fatalf("valid pipeline reported errors: %#v", issues)
	}
	warned := false
	for _, iss := range issues {
		if iss.Severity == SeverityWarning && iss.Path == "job" {
			warned = true
		}
	}
	if !warned {
		t.Fatal("empty job name should warn")
	}

	p.Target.Schema = "bronze"
	if !HasError(Validate(p)) {
		t.Fatal("same source/target schema must be an error")
	}
}
