package stock

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dikaipan/rocdashboard-sub001/internal/csvutil"
)

// Mode selects how submitted location counts combine with the stored ones.
type Mode string

const (
	ModeSet    Mode = "set"    // submitted value replaces the stored one
	ModeAdd    Mode = "add"    // stored + submitted
	ModeRemove Mode = "remove" // stored - submitted, floored at zero
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSet, "":
		return ModeSet, nil
	case ModeAdd:
		return ModeAdd, nil
	case ModeRemove:
		return ModeRemove, nil
	}
	return "", fmt.Errorf("unknown adjustment mode %q", s)
}

// IsLocationColumn reports whether a record key is a per-location stock
// count. Location columns are the idfsl_* warehouse counts plus the idccw_*
// central warehouse counts.
func IsLocationColumn(key string) bool {
	return strings.HasPrefix(key, "idfsl_") || strings.HasPrefix(key, "idccw_")
}

// Count coerces a record value into a non-negative stock count. Records pass
// through JSON and CSV, so values show up as float64, int or string.
func Count(v any) int {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		if n < 0 {
			return 0
		}
		return n
	case int64:
		if n < 0 {
			return 0
		}
		return int(n)
	case float64:
		if n < 0 {
			return 0
		}
		return int(n)
	case string:
		return csvutil.ParseCount(n)
	default:
		return 0
	}
}

// GrandTotal sums every location column on the record.
func GrandTotal(rec map[string]any) int {
	total := 0
	for k, v := range rec {
		if IsLocationColumn(k) {
			total += Count(v)
		}
	}
	return total
}

// Reconcile applies one edit submission to the stored record and returns the
// merged result. Location columns combine under the given mode, other
// submitted fields overwrite, and fields absent from the submission carry
// forward unchanged. The grand_total field is always recomputed from the
// merged location columns and never taken from the submission.
func Reconcile(original, submitted map[string]any, mode Mode) map[string]any {
	result := make(map[string]any, len(original)+len(submitted))
	for k, v := range original {
		result[k] = v
	}

	for k, v := range submitted {
		if k == "grand_total" {
			continue
		}
		if !IsLocationColumn(k) {
			result[k] = v
			continue
		}
		current := Count(original[k])
		incoming := Count(v)
		switch mode {
		case ModeAdd:
			result[k] = current + incoming
		case ModeRemove:
			next := current - incoming
			if next < 0 {
				next = 0
			}
			result[k] = next
		default:
			result[k] = incoming
		}
	}

	result["grand_total"] = GrandTotal(result)
	return result
}

// ColumnDelta records one location column changed by a reconciliation.
type ColumnDelta struct {
	Column string `json:"column"`
	Before int    `json:"before"`
	After  int    `json:"after"`
}

// Diff lists the location columns whose counts differ between two records,
// sorted by column name so output is stable.
func Diff(before, after map[string]any) []ColumnDelta {
	seen := make(map[string]bool)
	for k := range before {
		if IsLocationColumn(k) {
			seen[k] = true
		}
	}
	for k := range after {
		if IsLocationColumn(k) {
			seen[k] = true
		}
	}

	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	deltas := make([]ColumnDelta, 0, len(columns))
	for _, col := range columns {
		b := Count(before[col])
		a := Count(after[col])
		if a != b {
			deltas = append(deltas, ColumnDelta{Column: col, Before: b, After: a})
		}
	}
	return deltas
}
