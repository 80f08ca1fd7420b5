package models

import "time"

type MonthlyMachineCount struct {
	ID          uint   `gorm:"primaryKey"`
	Month       string `gorm:"size:8;not null;uniqueIndex:idx_month_type"` // apr..sep
	MachineType string `gorm:"size:60;uniqueIndex:idx_month_type"`
	Total       int    `gorm:"not null"`
	Active      int    `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
