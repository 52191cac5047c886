package models

import (
	"github.com/lib/pq"
)

// Account is a registered user. Status is only set for artists.
type Account struct {
	BaseModel
	Name         string         `gorm:"not null"`
	Email        string         `gorm:"uniqueIndex;not null"`
	PasswordHash string         `gorm:"not null"`
	Role         AccountRole    `gorm:"type:varchar(20);not null;index"`
	Status       *AccountStatus `gorm:"type:varchar(20);index"`

	Contact     string
	Gender      string `gorm:"type:varchar(20)"`
	DOB         string `gorm:"column:dob;type:varchar(20)"`
	City        string
	State       string
	Country     string
	Language    string
	Description string `gorm:"type:text"`
	Identity    string

	Photos     pq.StringArray `gorm:"type:text[]"`
	Videos     pq.StringArray `gorm:"type:text[]"`
	ProfilePic *string

	Applications []Application `gorm:"foreignKey:AccountID"`
}

func (a *Account) IsArtist() bool {
	return a.Role == RoleArtist
}

// CurrentStatus returns the status or "" for accounts without one.
func (a *Account) CurrentStatus() AccountStatus {
	if a.Status == nil {
		return ""
	}
	return *a.Status
}

func (a *Account) Media(kind MediaKind) []string {
	if kind == MediaVideo {
		return a.Videos
	}
	return a.Photos
}

func StatusPtr(s AccountStatus) *AccountStatus {
	return &s
}
