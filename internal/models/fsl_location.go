package models

import "time"

type FSLLocation struct {
	FSLID     string `gorm:"primaryKey;size:32"`
	FSLName   string `gorm:"size:120;not null"`
	FSLCity   string `gorm:"size:80"` // resolved to coordinates via the static city table
	Region    string `gorm:"size:60"`
	Address   string `gorm:"size:255"`
	PIC       string `gorm:"size:120"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
