package silver

import (
	"sort"
	"strings"
)

// SplitProductKey splits the raw composite product key into the derived
// category id and the clean product key.
//
// The first five characters form the category id with the internal '-'
// separator rewritten to '_' (matching the ERP category table's id format);
// everything from position seven onward is the clean key. "AB-CD-1234"
// yields ("AB_CD", "1234").
//
// Composite keys shorter than the fixed prefix produce an empty clean key;
// the prefix conversion still applies to whatever is present.
func SplitProductKey(raw string) (categoryID, key string) {
	raw = strings.TrimSpace(raw)
	prefix := raw
	if len(raw) > 5 {
		prefix = raw[:5]
	}
	categoryID = strings.ReplaceAll(prefix, "-", "_")
	if len(raw) > 6 {
		key = raw[6:]
	}
	return categoryID, key
}

// ChainEndDates derives the effective-dating interval for every product
// version: within each clean product key, versions are ordered by ascending
// StartDate and each version ends the day before the next one starts. The
// last version stays open (EndDate nil).
//
// The sort is stable, so versions sharing a StartDate keep their input order
// and the earlier twin receives StartDate minus one day, an inverted
// one-day interval rather than a guess at which duplicate is current.
//
// The input slice is modified in place and returned grouped by key, versions
// in effective order.
func ChainEndDates(products []ProductRecord) []ProductRecord {
	byKey := make(map[string][]int)
	order := make([]string, 0)
	for i, p := range products {
		if _, seen := byKey[p.Key]; !seen {
			order = append(order, p.Key)
		}
		byKey[p.Key] = append(byKey[p.Key], i)
	}
	sort.Strings(order)

	out := make([]ProductRecord, 0, len(products))
	for _, key := range order {
		idx := byKey[key]
		group := make([]ProductRecord, len(idx))
		for i, j := range idx {
			group[i] = products[j]
		}
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].StartDate.Before(group[j].StartDate)
		})
		for i := range group {
			if i+1 < len(group) {
				end := group[i+1].StartDate.AddDate(0, 0, -1)
				group[i].EndDate = &end
			} else {
				group[i].EndDate = nil
			}
		}
		out = append(out, group...)
	}
	return out
}
