package stockparts

import (
	"strings"
	"time"

	"github.com/dikaipan/rocdashboard-sub001/internal/database"
	"github.com/dikaipan/rocdashboard-sub001/internal/metrics"
	"github.com/dikaipan/rocdashboard-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
)

// The table mirrors the client-side edit log, so reads cap at the same
// 1000 entries the client keeps.
const historyLimit = 1000

func ListStockHistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Order("created_at DESC").Limit(historyLimit)
		if part := strings.TrimSpace(c.Query("part")); part != "" {
			q = q.Where("part_number = ?", part)
		}

		var entries []models.StockHistoryEntry
		if err := q.Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list stock history")
		}
		return c.JSON(entries)
	}
}

// MirrorStockHistoryHandler accepts the client's fire-and-forget copy of a
// local history entry. Replays of an already-mirrored id are not errors.
func MirrorStockHistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entry models.StockHistoryEntry
		if err := c.BodyParser(&entry); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No data provided")
		}
		if entry.ID == "" || entry.PartNumber == "" {
			return fiber.NewError(fiber.StatusBadRequest, "id and part_number are required")
		}

		var exist models.StockHistoryEntry
		if err := database.DB.First(&exist, "id = ?", entry.ID).Error; err == nil {
			return c.JSON(fiber.Map{"ok": true, "message": "Entry already mirrored"})
		}

		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = time.Now()
		}
		if err := database.DB.Create(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to record history entry")
		}
		metrics.HistoryAppends.Inc()
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "message": "Entry mirrored"})
	}
}
