package silver

import (
	"reflect"
	"testing"
	"time"

	"silverpipe/pkg/records"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

/*
TestLatestPerKey verifies the deduplication contract:
  - exactly one row survives per business key,
  - the survivor is the row with the maximum creation timestamp,
  - zero, one, and many duplicates are handled uniformly,
  - rows with a missing business key are dropped,
  - output is ordered by ascending key.
*/
func TestLatestPerKey(t *testing.T) {
	in := []records.Record{
		{"cst_id": int64(2), "tag": "only", "cst_create_date": day(2025, 3, 1)},
		{"cst_id": int64(1), "tag": "old", "cst_create_date": day(2025, 1, 1)},
		{"cst_id": int64(1), "tag": "new", "cst_create_date": day(2025, 2, 1)},
		{"cst_id": int64(1), "tag": "mid", "cst_create_date": day(2025, 1, 15)},
		{"tag": "keyless", "cst_create_date": day(2025, 9, 9)},
		{"cst_id": int64(3), "tag": "undated"},
	}

	out := LatestPerKey(in, "cst_id", "cst_create_date")
	if len(out) != 3 {
		t.Fatalf("rows = %d; want 3 (one per key, keyless dropped)", len(out))
	}
	if out[0].String("tag") != "new" {
		t.Fatalf("key 1 survivor = %q; want the latest row", out[0].String("tag"))
	}
	if out[1].String("tag") != "only" || out[2].String("tag") != "undated" {
		t.Fatalf("unexpected order/content: %v %v", out[1], out[2])
	}
}

/*
TestLatestPerKey_TieBreakStable verifies that when two rows share the key and
the creation timestamp, the same row wins regardless of input order. The rule
(lowest hash of the canonical serialization) is arbitrary but must be stable.
*/
func TestLatestPerKey_TieBreakStable(t *testing.T) {
	ts := day(2025, 5, 5)
	a := records.Record{"cst_id": int64(7), "tag": "a", "cst_create_date": ts}
	b := records.Record{"cst_id": int64(7), "tag": "b", "cst_create_date": ts}

	first := LatestPerKey([]records.Record{a, b}, "cst_id", "cst_create_date")
	second := LatestPerKey([]records.Record{b, a}, "cst_id", "cst_create_date")

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected single survivor; got %d and %d", len(first), len(second))
	}
	if !reflect.DeepEqual(first[0], second[0]) {
		t.Fatalf("tie-break depends on input order: %v vs %v", first[0], second[0])
	}
}

/*
TestLatestPerKey_UndatedNeverBeatsDated verifies that a row missing its
creation timestamp cannot displace a dated row for the same key.
*/
func TestLatestPerKey_UndatedNeverBeatsDated(t *testing.T) {
	in := []records.Record{
		{"cst_id": int64(4), "tag": "dated", "cst_create_date": day(2020, 1, 1)},
		{"cst_id": int64(4), "tag": "undated"},
	}
	out := LatestPerKey(in, "cst_id", "cst_create_date")
	if len(out) != 1 || out[0].String("tag") != "dated" {
		t.Fatalf("survivor = %v; want the dated row", out)
	}

	// Same input reversed.
	out = LatestPerKey([]records.Record{in[1], in[0]}, "cst_id", "cst_create_date")
	if len(out) != 1 || out[0].String("tag") != "dated" {
		t.Fatalf("survivor (reversed) = %v; want the dated row", out)
	}
}
