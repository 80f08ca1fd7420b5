package dataclient

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dikaipan/rocdashboard-sub001/internal/models"
	"github.com/dikaipan/rocdashboard-sub001/internal/stock"
)

func TestAdjustStockRecordsAndMirrorsHistory(t *testing.T) {
	mirrored := make(chan models.StockHistoryEntry, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/stock-parts/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	})
	mux.HandleFunc("/api/stock-history", func(w http.ResponseWriter, r *http.Request) {
		var entry models.StockHistoryEntry
		if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mirrored <- entry
		w.WriteHeader(http.StatusCreated)
	})

	history, err := NewHistoryLog(NewMemoryStorage(), "", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}

	c, _ := newTestClient(t, mux)
	c.history = history
	api := c.API("/stock-parts", "stock-updated")

	original := map[string]any{
		"part_number":     "PN-100",
		"part_name":       "Pick Roller",
		"idfsl_jakarta_1": 5,
		"idccw_main":      2,
		"grand_total":     7,
	}

	updated, err := api.AdjustStock(context.Background(), original, StockAdjustment{
		Mode:   stock.ModeAdd,
		Fields: map[string]any{"idfsl_jakarta_1": 3},
		Reason: "replenishment",
		Actor:  "budi",
	})
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if updated["idfsl_jakarta_1"] != 8 || updated["grand_total"] != 10 {
		t.Fatalf("unexpected reconciliation %v", updated)
	}

	entries := history.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(entries))
	}
	e := entries[0]
	if !strings.HasPrefix(e.ID, "PN-100_") || e.Reason != "replenishment" || e.Actor != "budi" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if e.GrandTotalBefore != 7 || e.GrandTotalAfter != 10 {
		t.Fatalf("totals %d -> %d", e.GrandTotalBefore, e.GrandTotalAfter)
	}
	var deltas []stock.ColumnDelta
	if err := json.Unmarshal(e.Changes, &deltas); err != nil {
		t.Fatalf("decode deltas: %v", err)
	}
	if len(deltas) != 1 || deltas[0].Column != "idfsl_jakarta_1" || deltas[0].After != 8 {
		t.Fatalf("unexpected deltas %+v", deltas)
	}

	select {
	case m := <-mirrored:
		if m.PartNumber != "PN-100" {
			t.Fatalf("mirrored wrong entry %+v", m)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("history was never mirrored")
	}
}

func TestAdjustStockWithoutReasonSkipsHistory(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	history, _ := NewHistoryLog(NewMemoryStorage(), "", 0)
	c.history = history

	api := c.API("/stock-parts", "")
	original := map[string]any{"part_number": "PN-1", "idfsl_medan": 4, "grand_total": 4}

	if _, err := api.AdjustStock(context.Background(), original, StockAdjustment{
		Mode:   stock.ModeRemove,
		Fields: map[string]any{"idfsl_medan": 1},
	}); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if history.Len() != 0 {
		t.Fatalf("history must stay empty without a reason")
	}
}

func TestAdjustStockNoOpLeavesNoTrail(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"no_changes":true}`))
	}))
	history, _ := NewHistoryLog(NewMemoryStorage(), "", 0)
	c.history = history

	api := c.API("/stock-parts", "")
	original := map[string]any{"part_number": "PN-1", "idfsl_medan": 4, "grand_total": 4}

	updated, err := api.AdjustStock(context.Background(), original, StockAdjustment{
		Mode:   stock.ModeSet,
		Fields: map[string]any{"idfsl_medan": 4},
		Reason: "audit",
	})
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if updated["grand_total"] != 4 {
		t.Fatalf("unexpected result %v", updated)
	}
	if history.Len() != 0 {
		t.Fatalf("no-op adjustment must not record history")
	}
}

func TestAdjustStockUpdateFailureSurfaces(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"part is locked"}`))
	}))
	history, _ := NewHistoryLog(NewMemoryStorage(), "", 0)
	c.history = history

	api := c.API("/stock-parts", "")
	original := map[string]any{"part_number": "PN-1", "idfsl_medan": 4, "grand_total": 4}

	_, err := api.AdjustStock(context.Background(), original, StockAdjustment{
		Mode:   stock.ModeAdd,
		Fields: map[string]any{"idfsl_medan": 2},
		Reason: "restock",
	})
	if err == nil || err.Error() != "part is locked" {
		t.Fatalf("expected backend message, got %v", err)
	}
	if history.Len() != 0 {
		t.Fatalf("failed update must not record history")
	}
}
