package models

import "time"

type Tool struct {
	PartName   string `gorm:"primaryKey;size:120"`
	DetailSpec string `gorm:"size:255"`
	Photo      string `gorm:"size:160"` // filename under the tools upload dir
	Total      int    `gorm:"not null;default:0"`
	StockNew   int    `gorm:"not null;default:0"`
	StockOld   int    `gorm:"not null;default:0"`
	UOM        string `gorm:"size:20;default:Pcs"`
	Remark     string `gorm:"size:255"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
