package dataclient

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/dikaipan/rocdashboard-sub001/internal/models"
	"github.com/dikaipan/rocdashboard-sub001/internal/stock"
)

// StockAdjustment is one submitted stock edit from the adjustment form.
type StockAdjustment struct {
	Mode   stock.Mode
	Fields map[string]any // location counts plus any edited metadata
	Reason string
	Notes  string
	Actor  string
}

// AdjustStock reconciles the submission against the stored record, pushes
// the merged result to the backend and, when a reason was given, records
// the per-column deltas in the local trail and mirrors them to the
// history endpoint. The mirror is fire-and-forget.
func (a *API) AdjustStock(ctx context.Context, original map[string]any, adj StockAdjustment) (map[string]any, error) {
	mode := adj.Mode
	if mode == "" {
		mode = stock.ModeSet
	}

	updated := stock.Reconcile(original, adj.Fields, mode)
	id := stock.Text(original["part_number"])
	if _, err := a.Update(ctx, id, updated); err != nil {
		return nil, err
	}

	if adj.Reason == "" {
		return updated, nil
	}

	entry, err := stock.BuildHistoryEntry(original, updated, mode, adj.Reason, adj.Notes, adj.Actor, time.Now())
	if err != nil {
		log.Printf("[WARN] dataclient: history entry not recorded: %v", err)
		return updated, nil
	}
	if entry == nil {
		// nothing actually moved
		return updated, nil
	}

	if a.c.history != nil {
		if err := a.c.history.Append(*entry); err != nil {
			log.Printf("[WARN] dataclient: history append failed: %v", err)
		}
	}
	go a.c.mirrorHistory(*entry)

	return updated, nil
}

// mirrorHistory posts the entry to the backend trail. Failures are logged
// only; the local log is the durable copy.
func (c *Client) mirrorHistory(entry models.StockHistoryEntry) {
	if _, err := c.send(context.Background(), http.MethodPost, "/api/stock-history", "mirror", entry); err != nil {
		log.Printf("[WARN] dataclient: history mirror failed: %v", err)
	}
}
