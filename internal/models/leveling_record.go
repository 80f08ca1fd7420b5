package models

import "time"

type LevelingRecord struct {
	ID            uint   `gorm:"primaryKey"`
	EngineerID    string `gorm:"size:16;index;not null"`
	EngineerName  string `gorm:"size:120"`
	Region        string `gorm:"size:60"`
	MachineModule string `gorm:"size:60;not null"` // module the level applies to
	Level         int    `gorm:"not null"`         // 1..4
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
