package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	FullName     string         `gorm:"size:255;not null" json:"full_name"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	GoogleID     *string        `gorm:"uniqueIndex;size:255" json:"-"` // nil for email signups (avoids duplicate '' on unique index)
	FCMToken     string         `gorm:"size:512" json:"-"`             // For push notifications
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	MedicalInfo *MedicalInfo  `gorm:"foreignKey:UserID" json:"medical_info,omitempty"`
	Location    *UserLocation `gorm:"foreignKey:UserID" json:"location,omitempty"`
}
