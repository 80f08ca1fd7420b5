package models

import "time"

type BabyPart struct {
	Name      string `gorm:"primaryKey;size:120;column:baby_parts"`
	Qty       int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
