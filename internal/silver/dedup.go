package silver

import (
	"sort"

	"github.com/zeebo/xxh3"

	"silverpipe/pkg/records"
)

// LatestPerKey resolves duplicate raw rows down to one current row per
// business key: the row with the maximum value in createdCol wins. Rows with
// a missing or NULL key are dropped entirely; they cannot be joined
// downstream.
//
// Tie-break: when two rows share both the key and the creation timestamp,
// the row whose canonical serialization hashes lowest (xxh3) is kept. The
// rule is arbitrary but stable across runs and input orderings.
//
// Output rows are ordered by ascending business key so downstream writes are
// deterministic.
func LatestPerKey(rows []records.Record, keyCol, createdCol string) []records.Record {
	type candidate struct {
		key  int64
		rec  records.Record
		hash uint64
	}

	best := make(map[int64]candidate)
	for _, raw := range rows {
		key, ok := raw.Int64(keyCol)
		if !ok {
			continue
		}
		cand := candidate{key: key, rec: raw, hash: xxh3.HashString(raw.Canonical())}

		cur, seen := best[key]
		if !seen {
			best[key] = cand
			continue
		}
		curCreated, curOK := cur.rec.Time(createdCol)
		newCreated, newOK := raw.Time(createdCol)
		switch {
		case newOK && !curOK:
			best[key] = cand
		case newOK && curOK && newCreated.After(curCreated):
			best[key] = cand
		case newOK == curOK && newCreated.Equal(curCreated) && cand.hash < cur.hash:
			best[key] = cand
		}
	}

	keys := make([]int64, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]records.Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, best[k].rec)
	}
	return out
}
