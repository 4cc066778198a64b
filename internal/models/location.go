package models

import (
	"time"

	"gorm.io/gorm"
)

// UserLocation is the last position a user's device reported. It is the
// fallback feed origin when a request arrives without fresh coordinates.
// Separate lat/lng columns for portability and Haversine in the app layer.
type UserLocation struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Latitude      float64        `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude     float64        `gorm:"type:decimal(11,8);not null" json:"longitude"`
	AccuracyMeters float64       `gorm:"type:decimal(8,2)" json:"accuracy_meters"`
	LastUpdatedAt time.Time      `gorm:"not null;index" json:"last_updated_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (UserLocation) TableName() string {
	return "user_locations"
}
