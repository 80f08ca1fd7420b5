package stockparts

import (
	"fmt"
	"log"
	"time"

	"github.com/dikaipan/rocdashboard-sub001/internal/database"
	"github.com/dikaipan/rocdashboard-sub001/internal/metrics"
	"github.com/dikaipan/rocdashboard-sub001/internal/models"
	"github.com/dikaipan/rocdashboard-sub001/internal/query"
	"github.com/dikaipan/rocdashboard-sub001/internal/stock"

	"github.com/gofiber/fiber/v2"
)

// Stock part records travel as flat maps: every location count is a
// first-class column, so fixed request structs cannot name them up front.
// The edit dialog sends its control fields inline with the record; they are
// popped off before reconciliation.

func popText(rec map[string]any, key string) string {
	v, ok := rec[key]
	if !ok {
		return ""
	}
	delete(rec, key)
	return stock.Text(v)
}

func stripServerFields(rec map[string]any) {
	for _, k := range []string{"id", "created_at", "updated_at"} {
		delete(rec, k)
	}
}

func samePart(a, b models.StockPart) bool {
	if a.PartName != b.PartName || a.TypeOfPart != b.TypeOfPart || a.Top20Usage != b.Top20Usage || a.GrandTotal != b.GrandTotal {
		return false
	}
	if len(a.Locations) != len(b.Locations) {
		return false
	}
	for k, v := range a.Locations {
		if stock.Count(v) != stock.Count(b.Locations[k]) {
			return false
		}
	}
	return true
}

// ----------------------------------------
// STOCK PART CRUD
// ----------------------------------------

func ListStockPartsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var parts []models.StockPart
		if err := database.DB.Order("part_number").Find(&parts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list stock parts")
		}

		p := query.Parse(c)
		res := make([]map[string]any, 0, len(parts))
		for _, part := range parts {
			if !query.Matches(p.Search, part.PartNumber, part.PartName, part.TypeOfPart) {
				continue
			}
			res = append(res, stock.Flatten(part))
		}

		if p.Paged() {
			lo, hi := p.Window(len(res))
			return c.JSON(query.Page{
				Items:      res[lo:hi],
				Page:       p.Page,
				PerPage:    p.PerPage,
				Total:      len(res),
				TotalPages: p.TotalPages(len(res)),
			})
		}
		return c.JSON(res)
	}
}

func CreateStockPartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec := map[string]any{}
		if err := c.BodyParser(&rec); err != nil || len(rec) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No data provided")
		}
		for _, k := range []string{"mode", "reason", "notes", "actor"} {
			delete(rec, k)
		}
		stripServerFields(rec)

		part := stock.Collect(rec)
		if part.PartNumber == "" || part.PartName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "part_number and part_name are required")
		}

		var exist models.StockPart
		if err := database.DB.First(&exist, "part_number = ?", part.PartNumber).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Stock part with part_number '%s' already exists", part.PartNumber))
		}

		if err := database.DB.Create(&part).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create stock part")
		}
		return c.Status(fiber.StatusCreated).JSON(stock.Flatten(part))
	}
}

func GetStockPartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		partNumber := query.PathParam(c, "part_number")

		var part models.StockPart
		if err := database.DB.First(&part, "part_number = ?", partNumber).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Stock part with part_number '%s' not found", partNumber))
		}
		return c.JSON(stock.Flatten(part))
	}
}

// UpdateStockPartHandler applies one reconciled edit. The submitted record
// carries the mode plus whichever columns the dialog touched; location math
// runs against the stored values and grand_total is recomputed server-side,
// whatever the client claimed.
func UpdateStockPartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		partNumber := query.PathParam(c, "part_number")

		var part models.StockPart
		if err := database.DB.First(&part, "part_number = ?", partNumber).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Stock part with part_number '%s' not found", partNumber))
		}

		rec := map[string]any{}
		if err := c.BodyParser(&rec); err != nil || len(rec) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No data provided")
		}

		mode, err := stock.ParseMode(popText(rec, "mode"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		reason := popText(rec, "reason")
		notes := popText(rec, "notes")
		actor := popText(rec, "actor")
		stripServerFields(rec)

		before := stock.Flatten(part)
		after := stock.Reconcile(before, rec, mode)

		next := stock.Collect(after)
		next.PartNumber = part.PartNumber // the key never changes on update
		next.CreatedAt = part.CreatedAt

		if samePart(part, next) {
			return c.JSON(fiber.Map{
				"ok":         true,
				"message":    "No changes detected",
				"no_changes": true,
			})
		}

		if err := database.DB.Save(&next).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update stock part")
		}

		if reason != "" {
			entry, buildErr := stock.BuildHistoryEntry(before, stock.Flatten(next), mode, reason, notes, actor, time.Now())
			if buildErr != nil {
				log.Printf("[WARN] stock history entry not built: %v", buildErr)
			} else if entry != nil {
				if err := database.DB.Create(entry).Error; err != nil {
					log.Printf("[WARN] stock history write failed: %v", err)
				} else {
					metrics.HistoryAppends.Inc()
				}
			}
		}

		return c.JSON(stock.Flatten(next))
	}
}

func DeleteStockPartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		partNumber := query.PathParam(c, "part_number")

		var part models.StockPart
		if err := database.DB.First(&part, "part_number = ?", partNumber).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Stock part with part_number '%s' not found", partNumber))
		}

		if err := database.DB.Delete(&part).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete stock part")
		}
		return c.JSON(fiber.Map{"ok": true, "message": "Stock part deleted"})
	}
}
