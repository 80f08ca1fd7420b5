package stock

import (
	"testing"
	"time"
)

func original() map[string]any {
	return map[string]any{
		"part_number":     "PN-100",
		"part_name":       "Pick Roller",
		"type_of_part":    "consumable",
		"top20_usage":     true,
		"idfsl_jakarta_1": 5,
		"idfsl_surabaya":  3,
		"idccw_main":      10,
		"grand_total":     18,
	}
}

func TestReconcileSetMode(t *testing.T) {
	got := Reconcile(original(), map[string]any{"idfsl_jakarta_1": 2}, ModeSet)
	if got["idfsl_jakarta_1"] != 2 {
		t.Fatalf("set mode: got %v, want 2", got["idfsl_jakarta_1"])
	}
	if got["grand_total"] != 2+3+10 {
		t.Fatalf("grand total: got %v, want 15", got["grand_total"])
	}
}

func TestReconcileAddMode(t *testing.T) {
	got := Reconcile(original(), map[string]any{"idfsl_jakarta_1": 7}, ModeAdd)
	if got["idfsl_jakarta_1"] != 12 {
		t.Fatalf("add mode: got %v, want 12", got["idfsl_jakarta_1"])
	}
	if got["grand_total"] != 12+3+10 {
		t.Fatalf("grand total: got %v, want 25", got["grand_total"])
	}
}

func TestReconcileRemoveFloorsAtZero(t *testing.T) {
	got := Reconcile(original(), map[string]any{"idfsl_surabaya": 10}, ModeRemove)
	if got["idfsl_surabaya"] != 0 {
		t.Fatalf("remove mode must floor at zero, got %v", got["idfsl_surabaya"])
	}
	if got["grand_total"] != 5+0+10 {
		t.Fatalf("grand total: got %v, want 15", got["grand_total"])
	}
}

func TestReconcileIgnoresSubmittedGrandTotal(t *testing.T) {
	got := Reconcile(original(), map[string]any{
		"idccw_main":  4,
		"grand_total": 9999,
	}, ModeSet)
	if got["grand_total"] != 5+3+4 {
		t.Fatalf("submitted grand_total must be ignored, got %v", got["grand_total"])
	}
}

func TestReconcilePreservesUntouchedFields(t *testing.T) {
	got := Reconcile(original(), map[string]any{"idfsl_jakarta_1": 1}, ModeSet)
	if got["part_name"] != "Pick Roller" {
		t.Fatalf("part_name not preserved: %v", got["part_name"])
	}
	if got["top20_usage"] != true {
		t.Fatalf("top20_usage not preserved: %v", got["top20_usage"])
	}
	if got["idccw_main"] != 10 {
		t.Fatalf("untouched location changed: %v", got["idccw_main"])
	}
}

func TestReconcileOverlaysNonLocationFields(t *testing.T) {
	got := Reconcile(original(), map[string]any{"part_name": "Pick Roller B"}, ModeAdd)
	if got["part_name"] != "Pick Roller B" {
		t.Fatalf("non-location field not overlaid: %v", got["part_name"])
	}
	if got["grand_total"] != 18 {
		t.Fatalf("grand total drifted on metadata edit: %v", got["grand_total"])
	}
}

func TestReconcileCoercesStringCounts(t *testing.T) {
	got := Reconcile(original(), map[string]any{"idfsl_jakarta_1": "7"}, ModeAdd)
	if got["idfsl_jakarta_1"] != 12 {
		t.Fatalf("string count not coerced: %v", got["idfsl_jakarta_1"])
	}
}

func TestGrandTotalInvariantAcrossModes(t *testing.T) {
	for _, mode := range []Mode{ModeSet, ModeAdd, ModeRemove} {
		got := Reconcile(original(), map[string]any{
			"idfsl_jakarta_1": 4,
			"idccw_main":      2,
		}, mode)
		sum := 0
		for k, v := range got {
			if IsLocationColumn(k) {
				sum += Count(v)
			}
		}
		if got["grand_total"] != sum {
			t.Fatalf("mode %s: grand_total %v != column sum %d", mode, got["grand_total"], sum)
		}
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(" ADD "); err != nil || m != ModeAdd {
		t.Fatalf("ParseMode add: %v %v", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != ModeSet {
		t.Fatalf("empty mode should default to set, got %v %v", m, err)
	}
	if _, err := ParseMode("subtract"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestDiff(t *testing.T) {
	before := original()
	after := Reconcile(before, map[string]any{
		"idfsl_jakarta_1": 2,
		"idfsl_surabaya":  3,
	}, ModeSet)

	deltas := Diff(before, after)
	if len(deltas) != 1 {
		t.Fatalf("expected 1 delta, got %d: %+v", len(deltas), deltas)
	}
	d := deltas[0]
	if d.Column != "idfsl_jakarta_1" || d.Before != 5 || d.After != 2 {
		t.Fatalf("unexpected delta %+v", d)
	}
}

func TestBuildHistoryEntry(t *testing.T) {
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	before := original()
	after := Reconcile(before, map[string]any{"idccw_main": 3}, ModeRemove)

	entry, err := BuildHistoryEntry(before, after, ModeRemove, "cycle count", "", "budi", at)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if entry == nil {
		t.Fatalf("expected an entry")
	}
	wantID := "PN-100_" + "1748772000000"
	if entry.ID != wantID {
		t.Fatalf("id = %q, want %q", entry.ID, wantID)
	}
	if entry.GrandTotalBefore != 18 || entry.GrandTotalAfter != 15 {
		t.Fatalf("totals = %d -> %d", entry.GrandTotalBefore, entry.GrandTotalAfter)
	}
	if entry.Mode != "remove" || entry.Reason != "cycle count" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestBuildHistoryEntryNoChanges(t *testing.T) {
	before := original()
	after := Reconcile(before, map[string]any{}, ModeSet)
	entry, err := BuildHistoryEntry(before, after, ModeSet, "reason", "", "", time.Now())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if entry != nil {
		t.Fatalf("no-op edit must not produce an entry, got %+v", entry)
	}
}
