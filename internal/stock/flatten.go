package stock

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dikaipan/rocdashboard-sub001/internal/models"

	"gorm.io/datatypes"
)

// Flatten renders a stored part in the wire shape the dashboard works with:
// every location count as a top-level column next to the fixed fields.
func Flatten(p models.StockPart) map[string]any {
	rec := map[string]any{
		"part_number":  p.PartNumber,
		"part_name":    p.PartName,
		"type_of_part": p.TypeOfPart,
		"top20_usage":  p.Top20Usage,
	}
	for k, v := range p.Locations {
		if IsLocationColumn(k) {
			rec[k] = Count(v)
		}
	}
	rec["grand_total"] = GrandTotal(rec)
	return rec
}

// Collect lifts a flat wire record back into the stored model, recomputing
// the grand total on the way in.
func Collect(rec map[string]any) models.StockPart {
	p := models.StockPart{
		PartNumber: Text(rec["part_number"]),
		PartName:   Text(rec["part_name"]),
		TypeOfPart: Text(rec["type_of_part"]),
		Top20Usage: Flag(rec["top20_usage"]),
		Locations:  datatypes.JSONMap{},
	}
	for k, v := range rec {
		if IsLocationColumn(k) {
			p.Locations[k] = Count(v)
		}
	}
	p.GrandTotal = GrandTotal(rec)
	return p
}

// Text coerces a record value to a trimmed string.
func Text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Flag coerces the loose truthy encodings the spreadsheets use.
func Flag(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "y", "1":
			return true
		}
		return false
	case float64:
		return b != 0
	case int:
		return b != 0
	default:
		return false
	}
}

// BuildHistoryEntry captures the per-column deltas of one reconciliation.
// Returns nil when nothing actually changed, so no-op edits leave no trail.
func BuildHistoryEntry(before, after map[string]any, mode Mode, reason, notes, actor string, at time.Time) (*models.StockHistoryEntry, error) {
	deltas := Diff(before, after)
	totalBefore := GrandTotal(before)
	totalAfter := GrandTotal(after)
	if len(deltas) == 0 && totalBefore == totalAfter {
		return nil, nil
	}

	raw, err := json.Marshal(deltas)
	if err != nil {
		return nil, fmt.Errorf("marshal deltas: %w", err)
	}

	partNumber := Text(after["part_number"])
	if partNumber == "" {
		partNumber = Text(before["part_number"])
	}

	return &models.StockHistoryEntry{
		ID:               fmt.Sprintf("%s_%d", partNumber, at.UnixMilli()),
		PartNumber:       partNumber,
		PartName:         Text(after["part_name"]),
		Mode:             string(mode),
		Reason:           reason,
		Notes:            notes,
		Actor:            actor,
		Changes:          datatypes.JSON(raw),
		GrandTotalBefore: totalBefore,
		GrandTotalAfter:  totalAfter,
		CreatedAt:        at,
	}, nil
}
