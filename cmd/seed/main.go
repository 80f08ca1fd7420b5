package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dikaipan/rocdashboard-sub001/internal/config"
	"github.com/dikaipan/rocdashboard-sub001/internal/csvutil"
	"github.com/dikaipan/rocdashboard-sub001/internal/database"
	"github.com/dikaipan/rocdashboard-sub001/internal/models"
	"github.com/dikaipan/rocdashboard-sub001/internal/uploads"

	"gorm.io/gorm"
)

// Seeds the database from a legacy dashboard data directory. The four
// replaceable datasets go through the same importer as POST /api/upload;
// the read-only datasets have their own loaders below.
func main() {
	dir := flag.String("data", "", "directory of legacy CSV files (defaults to DATA_DIR)")
	flag.Parse()

	cfg := config.Load()
	if *dir != "" {
		cfg.DataDir = *dir
	}
	database.Init(cfg)

	imports := []struct {
		file   string
		target string
	}{
		{"data_ce.csv", uploads.TargetEngineers},
		{"data_mesin.csv", uploads.TargetMachines},
		{"stok_part.csv", uploads.TargetStockParts},
		{"so_apr_spt.csv", uploads.TargetSO},
	}
	for _, im := range imports {
		data, err := os.ReadFile(filepath.Join(cfg.DataDir, im.file))
		if err != nil {
			log.Printf("[WARN] skipping %s: %v", im.file, err)
			continue
		}
		var count int
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			n, err := uploads.Import(tx, im.target, data)
			count = n
			return err
		})
		if err != nil {
			log.Printf("[WARN] import %s: %v", im.file, err)
			continue
		}
		log.Printf("seeded %s: %d rows", im.target, count)
	}

	seedFile(cfg.DataDir, "alamat_fsl.csv", "fsl locations", seedFSL)
	seedFile(cfg.DataDir, "data_mesin_perbulan.csv", "monthly machines", seedMonthly)
	seedFile(cfg.DataDir, "data_leveling.csv", "leveling", seedLeveling)
	seedFile(cfg.DataDir, "stock_detail.csv", "tools", seedTools)
	seedFile(cfg.DataDir, "baby_part.csv", "baby parts", seedBabyParts)

	log.Println("seed complete")
}

func seedFile(dir, file, label string, load func(tx *gorm.DB, rows []csvutil.Row) (int, error)) {
	data, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil {
		log.Printf("[WARN] skipping %s: %v", file, err)
		return
	}
	_, rows, err := csvutil.Decode(data)
	if err != nil {
		log.Printf("[WARN] parse %s: %v", file, err)
		return
	}

	var count int
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		n, err := load(tx, rows)
		count = n
		return err
	})
	if err != nil {
		log.Printf("[WARN] seed %s: %v", label, err)
		return
	}
	log.Printf("seeded %s: %d rows", label, count)
}

func seedFSL(tx *gorm.DB, rows []csvutil.Row) (int, error) {
	list := make([]models.FSLLocation, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		if !csvutil.HasValues(row, "fsl_id", "fsl_name") {
			continue
		}
		id := strings.ToUpper(row["fsl_id"])
		if seen[id] {
			continue
		}
		seen[id] = true
		list = append(list, models.FSLLocation{
			FSLID:   id,
			FSLName: row["fsl_name"],
			FSLCity: row["fsl_city"],
			Region:  row["region"],
			Address: row["address"],
			PIC:     row["pic"],
		})
	}
	return replaceAll(tx, &models.FSLLocation{}, list)
}

func seedMonthly(tx *gorm.DB, rows []csvutil.Row) (int, error) {
	list := make([]models.MonthlyMachineCount, 0, len(rows))
	for _, row := range rows {
		if !csvutil.HasValues(row, "month") {
			continue
		}
		month := strings.ToLower(row["month"])
		if len(month) > 3 {
			month = month[:3]
		}
		list = append(list, models.MonthlyMachineCount{
			Month:       month,
			MachineType: row["machine_type"],
			Total:       csvutil.ParseCount(row["total"]),
			Active:      csvutil.ParseCount(row["active"]),
		})
	}
	return replaceAll(tx, &models.MonthlyMachineCount{}, list)
}

func seedLeveling(tx *gorm.DB, rows []csvutil.Row) (int, error) {
	list := make([]models.LevelingRecord, 0, len(rows))
	for _, row := range rows {
		if !csvutil.HasValues(row, "engineer_id", "machine_module") {
			continue
		}
		list = append(list, models.LevelingRecord{
			EngineerID:    strings.ToUpper(row["engineer_id"]),
			EngineerName:  row["engineer_name"],
			Region:        row["region"],
			MachineModule: row["machine_module"],
			Level:         csvutil.ParseCount(row["level"]),
		})
	}
	return replaceAll(tx, &models.LevelingRecord{}, list)
}

func seedTools(tx *gorm.DB, rows []csvutil.Row) (int, error) {
	list := make([]models.Tool, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		if !csvutil.HasValues(row, "part_name") {
			continue
		}
		name := row["part_name"]
		if seen[name] {
			continue
		}
		seen[name] = true
		uom := row["uom"]
		if strings.TrimSpace(uom) == "" {
			uom = "Pcs"
		}
		list = append(list, models.Tool{
			PartName:   name,
			DetailSpec: row["detail_specification"],
			Photo:      row["picture"],
			Total:      csvutil.ParseCount(row["total"]),
			StockNew:   csvutil.ParseCount(row["new"]),
			StockOld:   csvutil.ParseCount(row["old"]),
			UOM:        uom,
			Remark:     row["remark"],
		})
	}
	return replaceAll(tx, &models.Tool{}, list)
}

func seedBabyParts(tx *gorm.DB, rows []csvutil.Row) (int, error) {
	list := make([]models.BabyPart, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		if !csvutil.HasValues(row, "baby_parts") {
			continue
		}
		name := row["baby_parts"]
		if seen[name] {
			continue
		}
		seen[name] = true
		list = append(list, models.BabyPart{
			Name: name,
			Qty:  csvutil.ParseCount(row["qty"]),
		})
	}
	return replaceAll(tx, &models.BabyPart{}, list)
}

func replaceAll[T any](tx *gorm.DB, model *T, list []T) (int, error) {
	if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
		return 0, err
	}
	if len(list) > 0 {
		if err := tx.CreateInBatches(list, 200).Error; err != nil {
			return 0, err
		}
	}
	return len(list), nil
}
