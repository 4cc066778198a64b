package models

import (
	"time"

	"gorm.io/gorm"
)

// BloodRequest is a broadcast request for blood. The requester profile is
// snapshotted onto the record at creation so the feed stays meaningful even
// if the profile is edited later. Status only ever moves active → dismissed;
// DismissedAt/DismissedBy are set iff status is dismissed. Coordinates are
// immutable after creation.
type BloodRequest struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	RequesterID           uint           `gorm:"not null;index" json:"requester_id"`
	RequesterName         string         `gorm:"size:255;not null" json:"requester_name"`
	RequesterBloodGroup   string         `gorm:"size:3;not null" json:"requester_blood_group"`
	RequesterAge          int            `json:"requester_age"`
	RequesterGender       string         `gorm:"size:20" json:"requester_gender"`
	RequesterAvailability bool           `json:"requester_availability"`
	HospitalName          string         `gorm:"size:255;not null" json:"hospital_name"`
	HospitalLocation      string         `gorm:"size:512;not null" json:"hospital_location"` // free-text, as typed on the form
	Latitude              float64        `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude             float64        `gorm:"type:decimal(11,8);not null" json:"longitude"`
	Status                string         `gorm:"size:20;not null;index" json:"status"`
	DismissedAt           *time.Time     `json:"dismissed_at,omitempty"`
	DismissedBy           *uint          `json:"dismissed_by,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BloodRequest) TableName() string {
	return "blood_requests"
}
