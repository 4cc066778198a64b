package repository

import (
	"time"

	"synergyblood/internal/models"

	"gorm.io/gorm"
)

type MedicalRepository struct {
	db *gorm.DB
}

func NewMedicalRepository(db *gorm.DB) *MedicalRepository {
	return &MedicalRepository{db: db}
}

func (r *MedicalRepository) GetByUserID(userID uint) (*models.MedicalInfo, error) {
	var info models.MedicalInfo
	err := r.db.Where("user_id = ?", userID).First(&info).Error
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Save overwrites the whole profile record for the user. Profile edits are
// full-record saves, not partial patches.
func (r *MedicalRepository) Save(info *models.MedicalInfo) error {
	info.LastUpdated = time.Now()
	existing, err := r.GetByUserID(info.UserID)
	if err == nil {
		info.ID = existing.ID
		info.CreatedAt = existing.CreatedAt
	}
	return r.db.Save(info).Error
}

// ListAvailableDonors returns profiles of users who opted in to donate.
// Used for push fan-out when a new request is created; the proximity cut
// happens in the service layer.
func (r *MedicalRepository) ListAvailableDonors() ([]models.MedicalInfo, error) {
	var list []models.MedicalInfo
	err := r.db.Where("available_to_donate = ?", true).Find(&list).Error
	return list, err
}
