package fsl

import (
	"github.com/dikaipan/rocdashboard-sub001/internal/database"
	"github.com/dikaipan/rocdashboard-sub001/internal/geo"
	"github.com/dikaipan/rocdashboard-sub001/internal/models"
	"github.com/dikaipan/rocdashboard-sub001/internal/query"

	"github.com/gofiber/fiber/v2"
)

// FSLResponse is an FSL row enriched with coordinates, ready for the map
// panel. Unknown cities keep zero coordinates and an empty province.
type FSLResponse struct {
	FSLID     string  `json:"fsl_id"`
	FSLName   string  `json:"fsl_name"`
	FSLCity   string  `json:"fsl_city"`
	Region    string  `json:"region"`
	Address   string  `json:"address"`
	PIC       string  `json:"pic"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Province  string  `json:"province"`
}

func toResponse(f models.FSLLocation) FSLResponse {
	res := FSLResponse{
		FSLID:   f.FSLID,
		FSLName: f.FSLName,
		FSLCity: f.FSLCity,
		Region:  f.Region,
		Address: f.Address,
		PIC:     f.PIC,
	}
	if city, ok := geo.LookupCity(f.FSLCity); ok {
		res.Latitude = city.Lat
		res.Longitude = city.Lon
		res.Province = city.Province
	}
	return res
}

func ListFSLLocationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var locations []models.FSLLocation
		if err := database.DB.Order("fsl_id").Find(&locations).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list FSL locations")
		}

		p := query.Parse(c)
		res := make([]FSLResponse, 0, len(locations))
		for _, f := range locations {
			if !query.Matches(p.Search, f.FSLID, f.FSLName, f.FSLCity, f.Region, f.PIC) {
				continue
			}
			res = append(res, toResponse(f))
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
