package engineers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dikaipan/rocdashboard-sub001/internal/database"
	"github.com/dikaipan/rocdashboard-sub001/internal/models"
	"github.com/dikaipan/rocdashboard-sub001/internal/query"

	"github.com/gofiber/fiber/v2"
)

// Engineer ids come from the HR export as IDH + 5 digits.
var idPattern = regexp.MustCompile(`^IDH\d{5}$`)

type EngineerResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Region          string  `json:"region"`
	Vendor          string  `json:"vendor"`
	AreaGroup       string  `json:"area_group"`
	YearsExperience float64 `json:"years_experience"`
	Skills          string  `json:"skills"`
	TrainingStatus  string  `json:"training_status"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
}

type CreateEngineerRequest struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Region          string  `json:"region"`
	Vendor          string  `json:"vendor"`
	AreaGroup       string  `json:"area_group"`
	YearsExperience float64 `json:"years_experience"`
	Skills          string  `json:"skills"`
	TrainingStatus  string  `json:"training_status"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
}

type UpdateEngineerRequest struct {
	Name            *string  `json:"name"`
	Region          *string  `json:"region"`
	Vendor          *string  `json:"vendor"`
	AreaGroup       *string  `json:"area_group"`
	YearsExperience *float64 `json:"years_experience"`
	Skills          *string  `json:"skills"`
	TrainingStatus  *string  `json:"training_status"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

func toResponse(e models.Engineer) EngineerResponse {
	return EngineerResponse{
		ID:              e.ID,
		Name:            e.Name,
		Region:          e.Region,
		Vendor:          e.Vendor,
		AreaGroup:       e.AreaGroup,
		YearsExperience: e.YearsExperience,
		Skills:          e.Skills,
		TrainingStatus:  e.TrainingStatus,
		Latitude:        e.Latitude,
		Longitude:       e.Longitude,
	}
}

// ----------------------------------------
// ENGINEER CRUD
// ----------------------------------------

func ListEngineersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var engineers []models.Engineer
		if err := database.DB.Order("id").Find(&engineers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list engineers")
		}

		p := query.Parse(c)
		res := make([]EngineerResponse, 0, len(engineers))
		for _, e := range engineers {
			if !query.Matches(p.Search, e.ID, e.Name, e.Region, e.Vendor, e.AreaGroup, e.Skills, e.TrainingStatus) {
				continue
			}
			res = append(res, toResponse(e))
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

func CreateEngineerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateEngineerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No data provided")
		}

		body.ID = strings.ToUpper(strings.TrimSpace(body.ID))
		body.Name = strings.TrimSpace(body.Name)
		if body.ID == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "id and name are required")
		}
		if !idPattern.MatchString(body.ID) {
			return fiber.NewError(fiber.StatusBadRequest, "id must be IDH followed by 5 digits")
		}

		var exist models.Engineer
		if err := database.DB.First(&exist, "id = ?", body.ID).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Engineer with id '%s' already exists", body.ID))
		}

		eng := models.Engineer{
			ID:              body.ID,
			Name:            body.Name,
			Region:          strings.TrimSpace(body.Region),
			Vendor:          strings.TrimSpace(body.Vendor),
			AreaGroup:       strings.TrimSpace(body.AreaGroup),
			YearsExperience: body.YearsExperience,
			Skills:          strings.TrimSpace(body.Skills),
			TrainingStatus:  strings.TrimSpace(body.TrainingStatus),
			Latitude:        body.Latitude,
			Longitude:       body.Longitude,
		}
		if err := database.DB.Create(&eng).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create engineer")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(eng))
	}
}

func GetEngineerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := query.PathParam(c, "id")

		var eng models.Engineer
		if err := database.DB.First(&eng, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Engineer with id '%s' not found", id))
		}
		return c.JSON(toResponse(eng))
	}
}

func UpdateEngineerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := query.PathParam(c, "id")

		var eng models.Engineer
		if err := database.DB.First(&eng, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Engineer with id '%s' not found", id))
		}

		var body UpdateEngineerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No data provided")
		}

		changed := false
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			if name != eng.Name {
				eng.Name = name
				changed = true
			}
		}
		if body.Region != nil && strings.TrimSpace(*body.Region) != eng.Region {
			eng.Region = strings.TrimSpace(*body.Region)
			changed = true
		}
		if body.Vendor != nil && strings.TrimSpace(*body.Vendor) != eng.Vendor {
			eng.Vendor = strings.TrimSpace(*body.Vendor)
			changed = true
		}
		if body.AreaGroup != nil && strings.TrimSpace(*body.AreaGroup) != eng.AreaGroup {
			eng.AreaGroup = strings.TrimSpace(*body.AreaGroup)
			changed = true
		}
		if body.YearsExperience != nil && *body.YearsExperience != eng.YearsExperience {
			eng.YearsExperience = *body.YearsExperience
			changed = true
		}
		if body.Skills != nil && strings.TrimSpace(*body.Skills) != eng.Skills {
			eng.Skills = strings.TrimSpace(*body.Skills)
			changed = true
		}
		if body.TrainingStatus != nil && strings.TrimSpace(*body.TrainingStatus) != eng.TrainingStatus {
			eng.TrainingStatus = strings.TrimSpace(*body.TrainingStatus)
			changed = true
		}
		if body.Latitude != nil && *body.Latitude != eng.Latitude {
			eng.Latitude = *body.Latitude
			changed = true
		}
		if body.Longitude != nil && *body.Longitude != eng.Longitude {
			eng.Longitude = *body.Longitude
			changed = true
		}

		if !changed {
			return c.JSON(fiber.Map{
				"ok":         true,
				"message":    "No changes detected",
				"no_changes": true,
			})
		}

		if err := database.DB.Save(&eng).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update engineer")
		}
		return c.JSON(toResponse(eng))
	}
}

func DeleteEngineerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := query.PathParam(c, "id")

		var eng models.Engineer
		if err := database.DB.First(&eng, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Engineer with id '%s' not found", id))
		}

		if err := database.DB.Delete(&eng).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete engineer")
		}
		return c.JSON(fiber.Map{"ok": true, "message": "Engineer deleted"})
	}
}
