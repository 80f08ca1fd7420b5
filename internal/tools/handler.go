package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dikaipan/rocdashboard-sub001/internal/database"
	"github.com/dikaipan/rocdashboard-sub001/internal/models"
	"github.com/dikaipan/rocdashboard-sub001/internal/query"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var errPartNameRequired = errors.New("Part Name is required")

// ToolResponse is the wire shape the dashboard's tools page consumes. The
// id doubles the part name and description doubles the detail text, both
// kept for the existing frontend.
type ToolResponse struct {
	ID           string `json:"id"`
	ToolsName    string `json:"tools_name"`
	CurrentStock int    `json:"current_stock"`
	StockNew     int    `json:"stock_new"`
	StockOld     int    `json:"stock_old"`
	StockDetail  string `json:"stock_detail"`
	Photo        string `json:"photo"`
	UOM          string `json:"uom"`
	Remark       string `json:"remark"`
	Description  string `json:"description"`
}

type ToolRequest struct {
	ToolsName    string `json:"tools_name"`
	StockDetail  string `json:"stock_detail"`
	Description  string `json:"description"`
	Photo        string `json:"photo"`
	CurrentStock int    `json:"current_stock"`
	StockNew     int    `json:"stock_new"`
	StockOld     int    `json:"stock_old"`
	UOM          string `json:"uom"`
	Remark       string `json:"remark"`
}

func toResponse(t models.Tool) ToolResponse {
	return ToolResponse{
		ID:           t.PartName,
		ToolsName:    t.PartName,
		CurrentStock: t.Total,
		StockNew:     t.StockNew,
		StockOld:     t.StockOld,
		StockDetail:  t.DetailSpec,
		Photo:        t.Photo,
		UOM:          t.UOM,
		Remark:       t.Remark,
		Description:  t.DetailSpec,
	}
}

// fromRequest coerces a request body to the stored model. Absent numeric
// fields become zero and an absent uom becomes Pcs, so a PUT without a
// field clears it rather than keeping the old value.
func fromRequest(body ToolRequest) models.Tool {
	detail := strings.TrimSpace(body.StockDetail)
	if detail == "" {
		detail = strings.TrimSpace(body.Description)
	}
	t := models.Tool{
		PartName:   strings.TrimSpace(body.ToolsName),
		DetailSpec: detail,
		Photo:      strings.TrimSpace(body.Photo),
		Total:      body.CurrentStock,
		StockNew:   body.StockNew,
		StockOld:   body.StockOld,
		UOM:        strings.TrimSpace(body.UOM),
		Remark:     strings.TrimSpace(body.Remark),
	}
	if t.UOM == "" {
		t.UOM = "Pcs"
	}
	return t
}

// findTool resolves a tool by part name, falling back to a
// case-insensitive match the way the dashboard's search box expects.
func findTool(name string) (models.Tool, error) {
	var tool models.Tool
	err := database.DB.First(&tool, "part_name = ?", name).Error
	if err == nil {
		return tool, nil
	}
	err = database.DB.First(&tool, "LOWER(part_name) = LOWER(?)", name).Error
	return tool, err
}

func sameTool(a, b models.Tool) bool {
	return a.PartName == b.PartName &&
		a.DetailSpec == b.DetailSpec &&
		a.Photo == b.Photo &&
		a.Total == b.Total &&
		a.StockNew == b.StockNew &&
		a.StockOld == b.StockOld &&
		a.UOM == b.UOM &&
		a.Remark == b.Remark
}

// ----------------------------------------
// TOOL CRUD
// ----------------------------------------

func ListToolsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tools []models.Tool
		if err := database.DB.Order("part_name").Find(&tools).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list tools")
		}

		p := query.Parse(c)
		res := make([]ToolResponse, 0, len(tools))
		for _, t := range tools {
			if !query.Matches(p.Search, t.PartName, t.DetailSpec, t.Remark) {
				continue
			}
			res = append(res, toResponse(t))
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

func CreateToolHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ToolRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No data provided")
		}

		tool := fromRequest(body)
		if tool.PartName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Part Name is required")
		}

		var exist models.Tool
		if err := database.DB.First(&exist, "part_name = ?", tool.PartName).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Tool with part_name '%s' already exists", tool.PartName))
		}

		if err := database.DB.Create(&tool).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create tool")
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(tool))
	}
}

func GetToolHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := query.PathParam(c, "tools_name")

		tool, err := findTool(name)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Tool with part_name '%s' not found", name))
		}
		return c.JSON(toResponse(tool))
	}
}

func UpdateToolHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := query.PathParam(c, "tools_name")

		tool, err := findTool(name)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Tool with part_name '%s' not found", name))
		}

		var body ToolRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No data provided")
		}

		next := fromRequest(body)
		if next.PartName == "" {
			// A PUT without tools_name keeps the current name.
			next.PartName = tool.PartName
		}

		if sameTool(tool, next) {
			return c.JSON(fiber.Map{
				"ok":         true,
				"message":    "No changes detected",
				"no_changes": true,
			})
		}

		// Updates by the stored key so a changed tools_name renames the row.
		updates := map[string]any{
			"part_name":   next.PartName,
			"detail_spec": next.DetailSpec,
			"photo":       next.Photo,
			"total":       next.Total,
			"stock_new":   next.StockNew,
			"stock_old":   next.StockOld,
			"uom":         next.UOM,
			"remark":      next.Remark,
		}
		if err := database.DB.Model(&models.Tool{}).Where("part_name = ?", tool.PartName).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update tool")
		}
		return c.JSON(toResponse(next))
	}
}

func DeleteToolHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := query.PathParam(c, "tools_name")

		tool, err := findTool(name)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Tool with part_name '%s' not found", name))
		}

		if err := database.DB.Delete(&tool).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete tool")
		}
		return c.JSON(fiber.Map{"ok": true, "message": "Tool deleted"})
	}
}

// BulkUpsertToolsHandler takes the rows of an imported tools sheet and
// inserts or refreshes each one inside a single transaction.
func BulkUpsertToolsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []ToolRequest
		if err := c.BodyParser(&rows); err != nil || len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Expected array of tools")
		}

		created, updated := 0, 0
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			for _, row := range rows {
				tool := fromRequest(row)
				if tool.PartName == "" {
					return errPartNameRequired
				}

				var exist models.Tool
				if err := tx.First(&exist, "part_name = ?", tool.PartName).Error; err != nil {
					if err := tx.Create(&tool).Error; err != nil {
						return err
					}
					created++
					continue
				}

				tool.CreatedAt = exist.CreatedAt
				if err := tx.Save(&tool).Error; err != nil {
					return err
				}
				updated++
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, errPartNameRequired) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to bulk upsert tools")
		}

		return c.JSON(fiber.Map{"ok": true, "created": created, "updated": updated})
	}
}
