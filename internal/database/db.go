package database

import (
	"log"

	"github.com/dikaipan/rocdashboard-sub001/internal/config"
	"github.com/dikaipan/rocdashboard-sub001/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("cannot connect to database: %v", err)
	}

	// Older deployments stored the history change list as plain text.
	// Convert before AutoMigrate so the jsonb column type sticks.
	if DB.Migrator().HasTable(&models.StockHistoryEntry{}) {
		var colType string
		DB.Raw(`SELECT data_type FROM information_schema.columns WHERE table_name = 'stock_history_entries' AND column_name = 'changes'`).Scan(&colType)
		if colType == "text" {
			log.Println("converting stock_history_entries.changes to jsonb...")
			if convErr := DB.Exec(`ALTER TABLE stock_history_entries ALTER COLUMN changes TYPE jsonb USING changes::jsonb`).Error; convErr != nil {
				log.Printf("[WARN] changes column conversion failed (continuing): %v", convErr)
			}
		}
	}

	err = DB.AutoMigrate(
		&models.Engineer{},
		&models.Machine{},
		&models.StockPart{},
		&models.FSLLocation{},
		&models.LevelingRecord{},
		&models.MonthlyMachineCount{},
		&models.ServiceOrder{},
		&models.Tool{},
		&models.BabyPart{},
		&models.StockHistoryEntry{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// Rows imported before grand totals were tracked carry NULL. Zero them
	// out here; the next stock edit recomputes the real value.
	if DB.Migrator().HasTable(&models.StockPart{}) {
		var nullCount int64
		DB.Raw("SELECT COUNT(*) FROM stock_parts WHERE grand_total IS NULL").Scan(&nullCount)
		if nullCount > 0 {
			DB.Exec("UPDATE stock_parts SET grand_total = 0 WHERE grand_total IS NULL")
			log.Printf("backfilled grand_total on %d stock part rows", nullCount)
		}
	}

	log.Println("database connected, migration complete")
}
