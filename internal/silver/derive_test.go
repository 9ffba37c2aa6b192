package silver

import (
	"testing"
	"time"
)

/*
TestSplitProductKey verifies the composite-key split: the 5-character prefix
becomes the category id with '-' rewritten to '_', and the clean key is the
substring from position 7. Short keys degrade gracefully.
*/
func TestSplitProductKey(t *testing.T) {
	cases := []struct {
		in      string
		wantCat string
		wantKey string
	}{
		{"AB-CD-1234", "AB_CD", "1234"},
		{"CO-RF-FR-R92B-58", "CO_RF", "FR-R92B-58"},
		{" AB-CD-1234 ", "AB_CD", "1234"}, // trimmed before split
		{"AB-CD", "AB_CD", ""},            // no remainder
		{"AB-C", "AB_C", ""},              // shorter than the prefix
		{"", "", ""},
	}
	for _, tc := range cases {
		cat, key := SplitProductKey(tc.in)
		if cat != tc.wantCat || key != tc.wantKey {
			t.Fatalf("SplitProductKey(%q) = (%q, %q); want (%q, %q)",
				tc.in, cat, key, tc.wantCat, tc.wantKey)
		}
	}
}

/*
TestChainEndDates verifies effective-dating derivation:
  - each version ends the day before the next version starts,
  - the last version stays open (nil end date),
  - versions are returned ordered by start date within each key.
*/
func TestChainEndDates(t *testing.T) {
	in := []ProductRecord{
		{Key: "P1", StartDate: day(2021, 6, 1)},
		{Key: "P1", StartDate: day(2021, 1, 1)},
		{Key: "P1", StartDate: day(2022, 1, 1)},
	}
	out := ChainEndDates(in)
	if len(out) != 3 {
		t.Fatalf("rows = %d; want 3", len(out))
	}

	wantStarts := []time.Time{day(2021, 1, 1), day(2021, 6, 1), day(2022, 1, 1)}
	wantEnds := []*time.Time{ptr(day(2021, 5, 31)), ptr(day(2021, 12, 31)), nil}
	for i := range out {
		if !out[i].StartDate.Equal(wantStarts[i]) {
			t.Fatalf("row %d start = %v; want %v", i, out[i].StartDate, wantStarts[i])
		}
		switch {
		case wantEnds[i] == nil && out[i].EndDate != nil:
			t.Fatalf("row %d end = %v; want open interval", i, out[i].EndDate)
		case wantEnds[i] != nil && (out[i].EndDate == nil || !out[i].EndDate.Equal(*wantEnds[i])):
			t.Fatalf("row %d end = %v; want %v", i, out[i].EndDate, *wantEnds[i])
		}
	}
}

/*
TestChainEndDates_SingleAndMultiKey verifies that a single-version product
gets an open-ended interval and that chaining never crosses product keys.
*/
func TestChainEndDates_SingleAndMultiKey(t *testing.T) {
	out := ChainEndDates([]ProductRecord{
		{Key: "B", StartDate: day(2023, 1, 1)},
		{Key: "A", StartDate: day(2020, 1, 1)},
		{Key: "A", StartDate: day(2021, 1, 1)},
	})
	if len(out) != 3 {
		t.Fatalf("rows = %d; want 3", len(out))
	}
	// Output grouped by ascending key.
	if out[0].Key != "A" || out[1].Key != "A" || out[2].Key != "B" {
		t.Fatalf("unexpected grouping: %v", out)
	}
	if out[0].EndDate == nil || !out[0].EndDate.Equal(day(2020, 12, 31)) {
		t.Fatalf("A v1 end = %v; want 2020-12-31", out[0].EndDate)
	}
	if out[1].EndDate != nil {
		t.Fatalf("A v2 must stay open; got %v", out[1].EndDate)
	}
	if out[2].EndDate != nil {
		t.Fatalf("single-version B must stay open; got %v", out[2].EndDate)
	}
}

/*
TestChainEndDates_DuplicateStartDates pins down the documented tie-break for
versions sharing a start date: the sort is stable, so the earlier input row
comes first and receives an inverted one-day interval (start − 1 day), while
the later twin chains normally. The point is determinism, not intent
recovery.
*/
func TestChainEndDates_DuplicateStartDates(t *testing.T) {
	in := []ProductRecord{
		{ID: 1, Key: "P", StartDate: day(2021, 3, 1)},
		{ID: 2, Key: "P", StartDate: day(2021, 3, 1)},
		{ID: 3, Key: "P", StartDate: day(2021, 9, 1)},
	}
	out := ChainEndDates(in)
	if out[0].ID != 1 || out[1].ID != 2 {
		t.Fatalf("stable sort violated: got order %d,%d", out[0].ID, out[1].ID)
	}
	if out[0].EndDate == nil || !out[0].EndDate.Equal(day(2021, 2, 28)) {
		t.Fatalf("duplicate-start row end = %v; want 2021-02-28", out[0].EndDate)
	}
	if out[1].EndDate == nil || !out[1].EndDate.Equal(day(2021, 8, 31)) {
		t.Fatalf("second twin end = %v; want 2021-08-31", out[1].EndDate)
	}
	if out[2].EndDate != nil {
		t.Fatalf("last version must stay open; got %v", out[2].EndDate)
	}
}

func ptr(t time.Time) *time.Time { return &t }
