package models

import "time"

// CascadeDivergence records a status change whose cascade to applications did not complete.
type CascadeDivergence struct {
	BaseModel
	AccountID  string        `gorm:"type:uuid;not null;index"`
	Status     AccountStatus `gorm:"type:varchar(20);not null"`
	LastError  string        `gorm:"type:text"`
	Attempts   int           `gorm:"default:0"`
	ResolvedAt *time.Time    `gorm:"index"`
}
