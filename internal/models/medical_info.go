package models

import (
	"time"

	"gorm.io/gorm"
)

// MedicalInfo is the donor/requester profile a user fills in once and
// overwrites as a whole on save. Home coordinates are optional; they act
// as the feed origin of last resort when no device position is known.
type MedicalInfo struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	UserID            uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName          string         `gorm:"size:255;not null" json:"full_name"`
	Age               int            `gorm:"not null" json:"age"`
	Gender            string         `gorm:"size:20" json:"gender"`
	BloodGroup        string         `gorm:"size:3;not null;index" json:"blood_group"`
	Location          string         `gorm:"size:255" json:"location"` // free-text home area
	Latitude          *float64       `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude         *float64       `gorm:"type:decimal(11,8)" json:"longitude"`
	Allergy           string         `gorm:"size:255" json:"allergy"`
	Disease           string         `gorm:"size:255" json:"disease"`
	AvailableToDonate bool           `gorm:"default:false;index" json:"available_to_donate"`
	LastUpdated       time.Time      `gorm:"not null" json:"last_updated"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (MedicalInfo) TableName() string {
	return "medical_infos"
}
