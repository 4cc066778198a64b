package models

import "time"

// Hospital is static directory data, seeded once at startup from the
// bundled dataset and read-only afterwards.
type Hospital struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Address   string    `gorm:"size:512" json:"address"`
	Latitude  float64   `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude float64   `gorm:"type:decimal(11,8);not null" json:"longitude"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Hospital) TableName() string {
	return "hospitals"
}
