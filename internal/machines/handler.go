package machines

import (
	"fmt"
	"strings"

	"github.com/dikaipan/rocdashboard-sub001/internal/database"
	"github.com/dikaipan/rocdashboard-sub001/internal/models"
	"github.com/dikaipan/rocdashboard-sub001/internal/query"

	"github.com/gofiber/fiber/v2"
)

type MachineResponse struct {
	WSID          string `json:"wsid"`
	BranchName    string `json:"branch_name"`
	Customer      string `json:"customer"`
	Region        string `json:"region"`
	AreaGroup     string `json:"area_group"`
	City          string `json:"city"`
	MachineType   string `json:"machine_type"`
	MachineStatus string `json:"machine_status"`
	InstallYear   int    `json:"install_year"`
}

type CreateMachineRequest struct {
	WSID          string `json:"wsid"`
	BranchName    string `json:"branch_name"`
	Customer      string `json:"customer"`
	Region        string `json:"region"`
	AreaGroup     string `json:"area_group"`
	City          string `json:"city"`
	MachineType   string `json:"machine_type"`
	MachineStatus string `json:"machine_status"`
	InstallYear   int    `json:"install_year"`
}

type UpdateMachineRequest struct {
	BranchName    *string `json:"branch_name"`
	Customer      *string `json:"customer"`
	Region        *string `json:"region"`
	AreaGroup     *string `json:"area_group"`
	City          *string `json:"city"`
	MachineType   *string `json:"machine_type"`
	MachineStatus *string `json:"machine_status"`
	InstallYear   *int    `json:"install_year"`
}

func toResponse(m models.Machine) MachineResponse {
	return MachineResponse{
		WSID:          m.WSID,
		BranchName:    m.BranchName,
		Customer:      m.Customer,
		Region:        m.Region,
		AreaGroup:     m.AreaGroup,
		City:          m.City,
		MachineType:   m.MachineType,
		MachineStatus: m.MachineStatus,
		InstallYear:   m.InstallYear,
	}
}

// ----------------------------------------
// MACHINE CRUD
// ----------------------------------------

func ListMachinesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var machines []models.Machine
		if err := database.DB.Order("ws_id").Find(&machines).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list machines")
		}

		p := query.Parse(c)
		res := make([]MachineResponse, 0, len(machines))
		for _, m := range machines {
			if !query.Matches(p.Search, m.WSID, m.BranchName, m.Customer, m.Region, m.AreaGroup, m.City, m.MachineType, m.MachineStatus) {
				continue
			}
			res = append(res, toResponse(m))
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

func CreateMachineHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMachineRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No data provided")
		}

		body.WSID = strings.TrimSpace(body.WSID)
		body.BranchName = strings.TrimSpace(body.BranchName)
		if body.WSID == "" || body.BranchName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "wsid and branch_name are required")
		}

		var exist models.Machine
		if err := database.DB.First(&exist, "ws_id = ?", body.WSID).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Machine with wsid '%s' already exists", body.WSID))
		}

		m := models.Machine{
			WSID:          body.WSID,
			BranchName:    body.BranchName,
			Customer:      strings.TrimSpace(body.Customer),
			Region:        strings.TrimSpace(body.Region),
			AreaGroup:     strings.TrimSpace(body.AreaGroup),
			City:          strings.TrimSpace(body.City),
			MachineType:   strings.TrimSpace(body.MachineType),
			MachineStatus: strings.TrimSpace(body.MachineStatus),
			InstallYear:   body.InstallYear,
		}
		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create machine")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(m))
	}
}

func GetMachineHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		wsid := query.PathParam(c, "wsid")

		var m models.Machine
		if err := database.DB.First(&m, "ws_id = ?", wsid).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Machine with wsid '%s' not found", wsid))
		}
		return c.JSON(toResponse(m))
	}
}

func UpdateMachineHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		wsid := query.PathParam(c, "wsid")

		var m models.Machine
		if err := database.DB.First(&m, "ws_id = ?", wsid).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Machine with wsid '%s' not found", wsid))
		}

		var body UpdateMachineRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No data provided")
		}

		changed := false
		if body.BranchName != nil {
			name := strings.TrimSpace(*body.BranchName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "branch_name cannot be empty")
			}
			if name != m.BranchName {
				m.BranchName = name
				changed = true
			}
		}
		if body.Customer != nil && strings.TrimSpace(*body.Customer) != m.Customer {
			m.Customer = strings.TrimSpace(*body.Customer)
			changed = true
		}
		if body.Region != nil && strings.TrimSpace(*body.Region) != m.Region {
			m.Region = strings.TrimSpace(*body.Region)
			changed = true
		}
		if body.AreaGroup != nil && strings.TrimSpace(*body.AreaGroup) != m.AreaGroup {
			m.AreaGroup = strings.TrimSpace(*body.AreaGroup)
			changed = true
		}
		if body.City != nil && strings.TrimSpace(*body.City) != m.City {
			m.City = strings.TrimSpace(*body.City)
			changed = true
		}
		if body.MachineType != nil && strings.TrimSpace(*body.MachineType) != m.MachineType {
			m.MachineType = strings.TrimSpace(*body.MachineType)
			changed = true
		}
		if body.MachineStatus != nil && strings.TrimSpace(*body.MachineStatus) != m.MachineStatus {
			m.MachineStatus = strings.TrimSpace(*body.MachineStatus)
			changed = true
		}
		if body.InstallYear != nil && *body.InstallYear != m.InstallYear {
			m.InstallYear = *body.InstallYear
			changed = true
		}

		if !changed {
			return c.JSON(fiber.Map{
				"ok":         true,
				"message":    "No changes detected",
				"no_changes": true,
			})
		}

		if err := database.DB.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update machine")
		}
		return c.JSON(toResponse(m))
	}
}

func DeleteMachineHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		wsid := query.PathParam(c, "wsid")

		var m models.Machine
		if err := database.DB.First(&m, "ws_id = ?", wsid).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Machine with wsid '%s' not found", wsid))
		}

		if err := database.DB.Delete(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete machine")
		}
		return c.JSON(fiber.Map{"ok": true, "message": "Machine deleted"})
	}
}
