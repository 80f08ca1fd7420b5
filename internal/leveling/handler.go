package leveling

import (
	"sort"

	"github.com/dikaipan/rocdashboard-sub001/internal/database"
	"github.com/dikaipan/rocdashboard-sub001/internal/models"
	"github.com/dikaipan/rocdashboard-sub001/internal/query"

	"github.com/gofiber/fiber/v2"
)

// Reporting window order, not alphabetical.
var monthIndex = map[string]int{"apr": 0, "may": 1, "jun": 2, "jul": 3, "aug": 4, "sep": 5}

type LevelingResponse struct {
	ID            uint   `json:"id"`
	EngineerID    string `json:"engineer_id"`
	EngineerName  string `json:"engineer_name"`
	Region        string `json:"region"`
	MachineModule string `json:"machine_module"`
	Level         int    `json:"level"`
}

type MonthlyMachineResponse struct {
	Month       string `json:"month"`
	MachineType string `json:"machine_type"`
	Total       int    `json:"total"`
	Active      int    `json:"active"`
}

// ----------------------------------------
// READ-ONLY CERTIFICATION / FLEET DATASETS
// ----------------------------------------

func ListLevelingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var records []models.LevelingRecord
		if err := database.DB.Order("engineer_id, machine_module").Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list leveling records")
		}

		p := query.Parse(c)
		res := make([]LevelingResponse, 0, len(records))
		for _, r := range records {
			if !query.Matches(p.Search, r.EngineerID, r.EngineerName, r.Region, r.MachineModule) {
				continue
			}
			res = append(res, LevelingResponse{
				ID:            r.ID,
				EngineerID:    r.EngineerID,
				EngineerName:  r.EngineerName,
				Region:        r.Region,
				MachineModule: r.MachineModule,
				Level:         r.Level,
			})
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

func ListMonthlyMachinesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var counts []models.MonthlyMachineCount
		if err := database.DB.Find(&counts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list monthly machine counts")
		}

		res := make([]MonthlyMachineResponse, 0, len(counts))
		for _, m := range counts {
			res = append(res, MonthlyMachineResponse{
				Month:       m.Month,
				MachineType: m.MachineType,
				Total:       m.Total,
				Active:      m.Active,
			})
		}
		sort.SliceStable(res, func(i, j int) bool {
			if monthIndex[res[i].Month] != monthIndex[res[j].Month] {
				return monthIndex[res[i].Month] < monthIndex[res[j].Month]
			}
			return res[i].MachineType < res[j].MachineType
		})
		return c.JSON(res)
	}
}
