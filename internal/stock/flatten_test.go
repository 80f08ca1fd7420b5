package stock

import (
	"testing"

	"github.com/dikaipan/rocdashboard-sub001/internal/models"

	"gorm.io/datatypes"
)

func TestFlatten(t *testing.T) {
	p := models.StockPart{
		PartNumber: "PN-7",
		PartName:   "Feed Belt",
		TypeOfPart: "consumable",
		Top20Usage: true,
		// JSON decoding hands back float64, CSV import hands back strings
		Locations: datatypes.JSONMap{
			"idfsl_jakarta_1": float64(5),
			"idccw_main":      "3",
		},
		GrandTotal: 999, // stale on purpose
	}

	rec := Flatten(p)
	if rec["part_number"] != "PN-7" || rec["part_name"] != "Feed Belt" {
		t.Fatalf("fixed fields missing: %#v", rec)
	}
	if rec["idfsl_jakarta_1"] != 5 || rec["idccw_main"] != 3 {
		t.Fatalf("location counts not coerced: %#v", rec)
	}
	if rec["grand_total"] != 8 {
		t.Fatalf("grand total must be recomputed, got %v", rec["grand_total"])
	}
}

func TestCollect(t *testing.T) {
	rec := map[string]any{
		"part_number":     "PN-8",
		"part_name":       " Separator Pad ",
		"type_of_part":    "spare",
		"top20_usage":     "yes",
		"idfsl_jakarta_1": float64(4),
		"idccw_main":      1,
		"grand_total":     42, // ignored
		"unrelated":       "x",
	}

	p := Collect(rec)
	if p.PartNumber != "PN-8" || p.PartName != "Separator Pad" {
		t.Fatalf("unexpected part %+v", p)
	}
	if !p.Top20Usage {
		t.Fatalf("top20_usage flag not coerced")
	}
	if len(p.Locations) != 2 {
		t.Fatalf("expected 2 location columns, got %#v", p.Locations)
	}
	if p.Locations["idfsl_jakarta_1"] != 4 {
		t.Fatalf("location count = %v", p.Locations["idfsl_jakarta_1"])
	}
	if p.GrandTotal != 5 {
		t.Fatalf("grand total = %d, want 5", p.GrandTotal)
	}
}

func TestFlattenCollectRoundTrip(t *testing.T) {
	rec := Flatten(models.StockPart{
		PartNumber: "PN-9",
		PartName:   "Stacker Wheel",
		Locations:  datatypes.JSONMap{"idfsl_medan": 6},
	})
	p := Collect(rec)
	if p.PartNumber != "PN-9" || p.GrandTotal != 6 {
		t.Fatalf("round trip lost data: %+v", p)
	}
	if p.Locations["idfsl_medan"] != 6 {
		t.Fatalf("round trip lost location: %#v", p.Locations)
	}
}

func TestFlagCoercions(t *testing.T) {
	truthy := []any{true, "true", "YES", "1", float64(1), 2}
	for _, v := range truthy {
		if !Flag(v) {
			t.Fatalf("Flag(%#v) should be true", v)
		}
	}
	falsy := []any{false, "", "no", "0", float64(0), nil}
	for _, v := range falsy {
		if Flag(v) {
			t.Fatalf("Flag(%#v) should be false", v)
		}
	}
}
