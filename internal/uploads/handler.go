package uploads

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/dikaipan/rocdashboard-sub001/internal/database"
	"github.com/dikaipan/rocdashboard-sub001/internal/metrics"
	"github.com/dikaipan/rocdashboard-sub001/internal/models"
	"github.com/dikaipan/rocdashboard-sub001/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ----------------------------------------
// POST /api/upload
// ----------------------------------------

func UploadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := c.FormFile("file")
		target := c.FormValue("target")
		if err != nil || target == "" {
			return fiber.NewError(fiber.StatusBadRequest, "file and target required")
		}
		if file.Filename == "" {
			return fiber.NewError(fiber.StatusBadRequest, "empty filename")
		}
		if !strings.HasSuffix(strings.ToLower(file.Filename), ".csv") {
			return fiber.NewError(fiber.StatusBadRequest, "only csv allowed")
		}
		if !ValidTarget(target) {
			return fiber.NewError(fiber.StatusBadRequest, "target must be machines, engineers, stock-parts, or so")
		}

		src, err := file.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cannot read uploaded file")
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cannot read uploaded file")
		}

		var count int
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			n, err := Import(tx, target, data)
			count = n
			return err
		})
		if err != nil {
			if errors.Is(err, ErrBadCSV) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			log.Printf("[WARN] import of %s failed: %v", target, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to import data")
		}

		metrics.ImportedRows.WithLabelValues(target).Add(float64(count))
		return c.JSON(fiber.Map{
			"ok":      true,
			"message": fmt.Sprintf("%s data uploaded successfully", target),
			"rows":    count,
		})
	}
}

// ----------------------------------------
// GET /api/export
// ----------------------------------------

func ExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var machines []models.Machine
		if err := database.DB.Order("ws_id").Find(&machines).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load machines")
		}

		var engineers []models.Engineer
		if err := database.DB.Order("id").Find(&engineers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load engineers")
		}

		var parts []models.StockPart
		if err := database.DB.Order("part_number").Find(&parts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load stock parts")
		}

		if len(machines) == 0 && len(engineers) == 0 && len(parts) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "No data files found")
		}

		f := excelize.NewFile()
		defer f.Close()

		if len(machines) > 0 {
			if err := writeMachinesSheet(f, machines); err != nil {
				log.Printf("[WARN] export machines sheet: %v", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
			}
		}
		if len(engineers) > 0 {
			if err := writeEngineersSheet(f, engineers); err != nil {
				log.Printf("[WARN] export engineers sheet: %v", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
			}
		}
		if len(parts) > 0 {
			if err := writeStockPartsSheet(f, parts); err != nil {
				log.Printf("[WARN] export stock parts sheet: %v", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
			}
		}

		if err := f.DeleteSheet("Sheet1"); err != nil {
			log.Printf("[WARN] export drop default sheet: %v", err)
		}
		f.SetActiveSheet(0)

		buf, err := f.WriteToBuffer()
		if err != nil {
			log.Printf("[WARN] export write: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
		}

		c.Set(fiber.HeaderContentDisposition, `attachment; filename=summary_export.xlsx`)
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		return c.Send(buf.Bytes())
	}
}

func writeMachinesSheet(f *excelize.File, machines []models.Machine) error {
	if _, err := f.NewSheet("machines"); err != nil {
		return err
	}
	header := []any{"wsid", "branch_name", "customer", "region", "area_group", "city", "machine_type", "machine_status", "install_year"}
	if err := f.SetSheetRow("machines", "A1", &header); err != nil {
		return err
	}
	for i, m := range machines {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{m.WSID, m.BranchName, m.Customer, m.Region, m.AreaGroup, m.City, m.MachineType, m.MachineStatus, m.InstallYear}
		if err := f.SetSheetRow("machines", cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeEngineersSheet(f *excelize.File, engineers []models.Engineer) error {
	if _, err := f.NewSheet("engineers"); err != nil {
		return err
	}
	header := []any{"id", "name", "region", "vendor", "area_group", "years_experience", "skills", "training_status", "latitude", "longitude"}
	if err := f.SetSheetRow("engineers", "A1", &header); err != nil {
		return err
	}
	for i, e := range engineers {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{e.ID, e.Name, e.Region, e.Vendor, e.AreaGroup, e.YearsExperience, e.Skills, e.TrainingStatus, e.Latitude, e.Longitude}
		if err := f.SetSheetRow("engineers", cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// writeStockPartsSheet lays location counts out as columns again, using the
// sorted union of every part's locations so rows line up.
func writeStockPartsSheet(f *excelize.File, parts []models.StockPart) error {
	if _, err := f.NewSheet("stock_parts"); err != nil {
		return err
	}

	var cols []string
	seen := make(map[string]bool)
	for _, p := range parts {
		for col := range p.Locations {
			if !seen[col] {
				seen[col] = true
				cols = append(cols, col)
			}
		}
	}
	sort.Strings(cols)

	header := []any{"part_number", "part_name", "type_of_part", "top20_usage"}
	for _, col := range cols {
		header = append(header, col)
	}
	header = append(header, "grand_total")
	if err := f.SetSheetRow("stock_parts", "A1", &header); err != nil {
		return err
	}

	for i, p := range parts {
		row := []any{p.PartNumber, p.PartName, p.TypeOfPart, p.Top20Usage}
		for _, col := range cols {
			row = append(row, stock.Count(p.Locations[col]))
		}
		row = append(row, p.GrandTotal)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("stock_parts", cell, &row); err != nil {
			return err
		}
	}
	return nil
}
