package models

import "time"

type Machine struct {
	WSID          string `gorm:"primaryKey;size:32"` // workstation id from the branch inventory
	BranchName    string `gorm:"size:120;not null"`
	Customer      string `gorm:"size:120;index"`
	Region        string `gorm:"size:60;index"`
	AreaGroup     string `gorm:"size:60"`
	City          string `gorm:"size:80"`
	MachineType   string `gorm:"size:60"`
	MachineStatus string `gorm:"size:40"` // Active / Inactive / Replaced
	InstallYear   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
