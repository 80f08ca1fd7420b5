package babyparts

import (
	"fmt"
	"strings"

	"github.com/dikaipan/rocdashboard-sub001/internal/database"
	"github.com/dikaipan/rocdashboard-sub001/internal/models"
	"github.com/dikaipan/rocdashboard-sub001/internal/query"

	"github.com/gofiber/fiber/v2"
)

type BabyPartResponse struct {
	Name string `json:"baby_parts"`
	Qty  int    `json:"qty"`
}

type BabyPartRequest struct {
	Name string `json:"baby_parts"`
	Qty  int    `json:"qty"`
}

type UpdateBabyPartRequest struct {
	Qty *int `json:"qty"`
}

// ----------------------------------------
// BABY PART CRUD
// ----------------------------------------

func ListBabyPartsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var parts []models.BabyPart
		if err := database.DB.Order("baby_parts").Find(&parts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list baby parts")
		}

		p := query.Parse(c)
		res := make([]BabyPartResponse, 0, len(parts))
		for _, b := range parts {
			if !query.Matches(p.Search, b.Name) {
				continue
			}
			res = append(res, BabyPartResponse{Name: b.Name, Qty: b.Qty})
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

func CreateBabyPartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BabyPartRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No data provided")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Baby Parts name is required")
		}
		if body.Qty < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantity must be a number")
		}

		var exist models.BabyPart
		if err := database.DB.First(&exist, "baby_parts = ?", body.Name).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Baby part with name '%s' already exists", body.Name))
		}

		part := models.BabyPart{Name: body.Name, Qty: body.Qty}
		if err := database.DB.Create(&part).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create baby part")
		}
		return c.Status(fiber.StatusCreated).JSON(BabyPartResponse{Name: part.Name, Qty: part.Qty})
	}
}

func GetBabyPartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := query.PathParam(c, "name")

		var part models.BabyPart
		if err := database.DB.First(&part, "baby_parts = ?", name).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Baby part with name '%s' not found", name))
		}
		return c.JSON(BabyPartResponse{Name: part.Name, Qty: part.Qty})
	}
}

func UpdateBabyPartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := query.PathParam(c, "name")

		var part models.BabyPart
		if err := database.DB.First(&part, "baby_parts = ?", name).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Baby part with name '%s' not found", name))
		}

		var body UpdateBabyPartRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No data provided")
		}

		if body.Qty == nil || *body.Qty == part.Qty {
			return c.JSON(fiber.Map{
				"ok":         true,
				"message":    "No changes detected",
				"no_changes": true,
			})
		}
		if *body.Qty < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantity must be a number")
		}

		part.Qty = *body.Qty
		if err := database.DB.Save(&part).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update baby part")
		}
		return c.JSON(BabyPartResponse{Name: part.Name, Qty: part.Qty})
	}
}

func DeleteBabyPartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := query.PathParam(c, "name")

		var part models.BabyPart
		if err := database.DB.First(&part, "baby_parts = ?", name).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Baby part with name '%s' not found", name))
		}

		if err := database.DB.Delete(&part).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete baby part")
		}
		return c.JSON(fiber.Map{"ok": true, "message": "Baby part deleted"})
	}
}
