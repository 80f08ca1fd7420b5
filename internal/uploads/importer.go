package uploads

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dikaipan/rocdashboard-sub001/internal/csvutil"
	"github.com/dikaipan/rocdashboard-sub001/internal/models"
	"github.com/dikaipan/rocdashboard-sub001/internal/stock"

	"gorm.io/gorm"
)

// Targets the dashboard can replace wholesale from a CSV upload.
const (
	TargetEngineers  = "engineers"
	TargetMachines   = "machines"
	TargetStockParts = "stock-parts"
	TargetSO         = "so"
)

const insertBatchSize = 200

// ErrBadCSV marks a client-caused parse failure as opposed to a database
// error during the swap.
var ErrBadCSV = errors.New("Invalid CSV format")

func ValidTarget(target string) bool {
	switch target {
	case TargetEngineers, TargetMachines, TargetStockParts, TargetSO:
		return true
	}
	return false
}

// AcceptRow reports whether a parsed row carries the dataset's required
// keys. Rows that fail are dropped silently, same as the legacy importer.
func AcceptRow(target string, row csvutil.Row) bool {
	switch target {
	case TargetEngineers:
		return csvutil.HasValues(row, "id", "name")
	case TargetMachines:
		return csvutil.HasValues(row, "wsid", "branch_name")
	case TargetStockParts:
		return csvutil.HasValues(row, "part_number", "part_name")
	case TargetSO:
		return csvutil.HasValues(row, "so_number", "month")
	}
	return false
}

func engineerFromRow(row csvutil.Row) models.Engineer {
	return models.Engineer{
		ID:              strings.ToUpper(row["id"]),
		Name:            row["name"],
		Region:          row["region"],
		Vendor:          row["vendor"],
		AreaGroup:       row["area_group"],
		YearsExperience: csvutil.ParseNumber(row["years_experience"]),
		Skills:          row["skills"],
		TrainingStatus:  row["training_status"],
		Latitude:        csvutil.ParseNumber(row["latitude"]),
		Longitude:       csvutil.ParseNumber(row["longitude"]),
	}
}

func machineFromRow(row csvutil.Row) models.Machine {
	return models.Machine{
		WSID:          row["wsid"],
		BranchName:    row["branch_name"],
		Customer:      row["customer"],
		Region:        row["region"],
		AreaGroup:     row["area_group"],
		City:          row["city"],
		MachineType:   row["machine_type"],
		MachineStatus: row["machine_status"],
		InstallYear:   csvutil.ParseCount(row["install_year"]),
	}
}

func stockPartFromRow(row csvutil.Row) models.StockPart {
	rec := make(map[string]any, len(row))
	for k, v := range row {
		rec[k] = v
	}
	return stock.Collect(rec)
}

func serviceOrderFromRow(row csvutil.Row) models.ServiceOrder {
	month := strings.ToLower(row["month"])
	if len(month) > 3 {
		month = month[:3]
	}
	return models.ServiceOrder{
		SONumber:     row["so_number"],
		Month:        month,
		ServiceDate:  row["service_date"],
		EngineerID:   strings.ToUpper(row["engineer_id"]),
		EngineerName: row["engineer_name"],
		Customer:     row["customer"],
		WSID:         row["wsid"],
		Region:       row["region"],
		Status:       row["status"],
		Problem:      row["problem"],
	}
}

// Import replaces one dataset with the accepted rows of an uploaded CSV.
// It runs inside the caller's transaction, so a malformed file aborts the
// swap and the previous data stays.
func Import(tx *gorm.DB, target string, data []byte) (int, error) {
	_, rows, err := csvutil.Decode(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadCSV, err)
	}

	switch target {
	case TargetEngineers:
		list := make([]models.Engineer, 0, len(rows))
		seen := make(map[string]bool, len(rows))
		for _, row := range rows {
			if !AcceptRow(target, row) {
				continue
			}
			e := engineerFromRow(row)
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			list = append(list, e)
		}
		if err := tx.Where("1 = 1").Delete(&models.Engineer{}).Error; err != nil {
			return 0, err
		}
		if len(list) > 0 {
			if err := tx.CreateInBatches(list, insertBatchSize).Error; err != nil {
				return 0, err
			}
		}
		return len(list), nil

	case TargetMachines:
		list := make([]models.Machine, 0, len(rows))
		seen := make(map[string]bool, len(rows))
		for _, row := range rows {
			if !AcceptRow(target, row) {
				continue
			}
			m := machineFromRow(row)
			if seen[m.WSID] {
				continue
			}
			seen[m.WSID] = true
			list = append(list, m)
		}
		if err := tx.Where("1 = 1").Delete(&models.Machine{}).Error; err != nil {
			return 0, err
		}
		if len(list) > 0 {
			if err := tx.CreateInBatches(list, insertBatchSize).Error; err != nil {
				return 0, err
			}
		}
		return len(list), nil

	case TargetStockParts:
		list := make([]models.StockPart, 0, len(rows))
		seen := make(map[string]bool, len(rows))
		for _, row := range rows {
			if !AcceptRow(target, row) {
				continue
			}
			p := stockPartFromRow(row)
			if seen[p.PartNumber] {
				continue
			}
			seen[p.PartNumber] = true
			list = append(list, p)
		}
		if err := tx.Where("1 = 1").Delete(&models.StockPart{}).Error; err != nil {
			return 0, err
		}
		if len(list) > 0 {
			if err := tx.CreateInBatches(list, insertBatchSize).Error; err != nil {
				return 0, err
			}
		}
		return len(list), nil

	case TargetSO:
		list := make([]models.ServiceOrder, 0, len(rows))
		for _, row := range rows {
			if !AcceptRow(target, row) {
				continue
			}
			list = append(list, serviceOrderFromRow(row))
		}
		if err := tx.Where("1 = 1").Delete(&models.ServiceOrder{}).Error; err != nil {
			return 0, err
		}
		if len(list) > 0 {
			if err := tx.CreateInBatches(list, insertBatchSize).Error; err != nil {
				return 0, err
			}
		}
		return len(list), nil
	}

	return 0, fmt.Errorf("Invalid target: %s", target)
}
