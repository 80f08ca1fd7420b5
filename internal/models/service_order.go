package models

import "time"

type ServiceOrder struct {
	ID           uint   `gorm:"primaryKey"`
	SONumber     string `gorm:"size:40;index;not null"`
	Month        string `gorm:"size:8;index;not null"` // apr..sep reporting window
	ServiceDate  string `gorm:"size:20"`               // raw date text from the export
	EngineerID   string `gorm:"size:16;index"`
	EngineerName string `gorm:"size:120"`
	Customer     string `gorm:"size:120;index"`
	WSID         string `gorm:"size:32"`
	Region       string `gorm:"size:60"`
	Status       string `gorm:"size:40"` // Completed / Open / Cancelled
	Problem      string `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
