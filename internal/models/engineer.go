package models

import "time"

type Engineer struct {
	ID              string  `gorm:"primaryKey;size:16"` // IDH + 5 digits
	Name            string  `gorm:"size:120;not null"`
	Region          string  `gorm:"size:60;index"`
	Vendor          string  `gorm:"size:60"`
	AreaGroup       string  `gorm:"size:60"`
	YearsExperience float64 `gorm:"not null;default:0"`
	Skills          string  `gorm:"size:255"` // comma separated machine modules
	TrainingStatus  string  `gorm:"size:60"`
	Latitude        float64
	Longitude       float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
