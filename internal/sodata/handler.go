package sodata

import (
	"github.com/dikaipan/rocdashboard-sub001/internal/database"
	"github.com/dikaipan/rocdashboard-sub001/internal/models"
	"github.com/dikaipan/rocdashboard-sub001/internal/query"

	"github.com/gofiber/fiber/v2"
)

type ServiceOrderResponse struct {
	ID           uint   `json:"id"`
	SONumber     string `json:"so_number"`
	Month        string `json:"month"`
	ServiceDate  string `json:"service_date"`
	EngineerID   string `json:"engineer_id"`
	EngineerName string `json:"engineer_name"`
	Customer     string `json:"customer"`
	WSID         string `json:"wsid"`
	Region       string `json:"region"`
	Status       string `json:"status"`
	Problem      string `json:"problem"`
}

func loadOrders(c *fiber.Ctx) ([]models.ServiceOrder, error) {
	months := NormalizeMonths(c.Query("months"))

	var orders []models.ServiceOrder
	if err := database.DB.Order("month, so_number").Find(&orders).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load service orders")
	}
	return FilterByMonths(orders, months), nil
}

// ----------------------------------------
// SERVICE ORDER ANALYTICS
// ----------------------------------------

// SummaryHandler answers the dashboard's monthly chart: one point per month
// of the reporting window, respecting the ?months= filter.
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		months := NormalizeMonths(c.Query("months"))

		var orders []models.ServiceOrder
		if err := database.DB.Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load service orders")
		}
		return c.JSON(Summarize(orders, months))
	}
}

func RawHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orders, err := loadOrders(c)
		if err != nil {
			return err
		}

		p := query.Parse(c)
		res := make([]ServiceOrderResponse, 0, len(orders))
		for _, o := range orders {
			if !query.Matches(p.Search, o.SONumber, o.EngineerID, o.EngineerName, o.Customer, o.WSID, o.Region, o.Status, o.Problem) {
				continue
			}
			res = append(res, ServiceOrderResponse{
				ID:           o.ID,
				SONumber:     o.SONumber,
				Month:        o.Month,
				ServiceDate:  o.ServiceDate,
				EngineerID:   o.EngineerID,
				EngineerName: o.EngineerName,
				Customer:     o.Customer,
				WSID:         o.WSID,
				Region:       o.Region,
				Status:       o.Status,
				Problem:      o.Problem,
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

func CustomerIntelligenceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orders, err := loadOrders(c)
		if err != nil {
			return err
		}
		return c.JSON(CustomerIntelligence(orders))
	}
}

func EngineerCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orders, err := loadOrders(c)
		if err != nil {
			return err
		}
		return c.JSON(EngineerCustomerRelationships(orders))
	}
}
