package models

import (
	"gorm.io/datatypes"
)

// Application is a job application. Status mirrors the owning account's status.
type Application struct {
	BaseModel
	AccountID string        `gorm:"type:uuid;not null;index"`
	Status    AccountStatus `gorm:"type:varchar(20);not null"`
	Title     string        `gorm:"not null"`
	Details   datatypes.JSON
}
