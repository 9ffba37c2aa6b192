package silver

import (
	"fmt"
	"strings"
	"time"
)

// RepairSalesAmounts applies the numeric repair policy to one sales row and
// returns the repaired (sales, price) pair. It never fails; every outcome is
// a defined value or nil.
//
// Precedence:
//  1. sales is recomputed as quantity × |price| when it is NULL, ≤ 0, or
//     inconsistent with that product (the consistency check only fires when
//     a raw price exists to compare against). A NULL price makes the
//     recomputed sales NULL as well.
//  2. price is recomputed as sales ÷ quantity when it is NULL or ≤ 0. The
//     sales value from step 1 is used, which keeps the policy idempotent.
//     Division by zero quantity yields NULL, never a panic.
func RepairSalesAmounts(sales *int64, quantity int64, price *int64) (*int64, *int64) {
	needSales := sales == nil || *sales <= 0 ||
		(price != nil && *sales != quantity*abs64(*price))
	if needSales {
		if price == nil {
			sales = nil
		} else {
			v := quantity * abs64(*price)
			sales = &v
		}
	}

	if price == nil || *price <= 0 {
		if sales == nil || quantity == 0 {
			price = nil
		} else {
			v := *sales / quantity
			price = &v
		}
	}
	return sales, price
}

// RepairDate validates a raw bronze date payload and returns the parsed
// date, or nil when the payload is unusable. A payload is accepted only when
// it renders as a non-zero, exactly-8-digit numeric string (YYYYMMDD) that
// the date parser accepts; shape-valid strings naming an impossible
// calendar date (month 13 and the like) fail the parse and also resolve to
// nil. Dates already materialized as time.Time pass through.
func RepairDate(v any) *time.Time {
	var digits string
	switch raw := v.(type) {
	case nil:
		return nil
	case time.Time:
		if raw.IsZero() {
			return nil
		}
		t := raw
		return &t
	case int64:
		digits = fmt.Sprintf("%d", raw)
	case int:
		digits = fmt.Sprintf("%d", raw)
	case int32:
		digits = fmt.Sprintf("%d", raw)
	case float64:
		digits = fmt.Sprintf("%d", int64(raw))
	case []byte:
		digits = strings.TrimSpace(string(raw))
	case string:
		digits = strings.TrimSpace(raw)
	default:
		return nil
	}

	if len(digits) != 8 || digits == "00000000" {
		return nil
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return nil
		}
	}
	t, err := time.Parse("20060102", digits)
	if err != nil {
		return nil
	}
	return &t
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
