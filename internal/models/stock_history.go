package models

import (
	"time"

	"gorm.io/datatypes"
)

// StockHistoryEntry is shared verbatim between the backend table, the
// client-side log file and the mirror endpoint, so it carries json tags
// unlike the other models.
type StockHistoryEntry struct {
	ID               string         `gorm:"primaryKey;size:96" json:"id"` // <part_number>_<unix millis>
	PartNumber       string         `gorm:"size:64;index;not null" json:"part_number"`
	PartName         string         `gorm:"size:160" json:"part_name"`
	Mode             string         `gorm:"size:10" json:"mode"` // set / add / remove
	Reason           string         `gorm:"size:120" json:"reason"`
	Notes            string         `gorm:"size:255" json:"notes"`
	Actor            string         `gorm:"size:120" json:"actor"`
	Changes          datatypes.JSON `gorm:"type:jsonb" json:"changes"` // per-column before/after deltas
	GrandTotalBefore int            `json:"grand_total_before"`
	GrandTotalAfter  int            `json:"grand_total_after"`
	CreatedAt        time.Time      `json:"created_at"`
}
