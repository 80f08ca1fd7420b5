package models

import (
	"time"

	"gorm.io/datatypes"
)

type StockPart struct {
	PartNumber string `gorm:"primaryKey;size:64"`
	PartName   string `gorm:"size:160;not null"`
	TypeOfPart string `gorm:"size:60"`
	Top20Usage bool   `gorm:"not null;default:false"`
	// one count per fulfillment location, keyed idfsl_* / idccw_*
	Locations  datatypes.JSONMap `gorm:"type:jsonb"`
	GrandTotal int               `gorm:"not null;default:0"` // always recomputed from Locations
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
