package repository

import (
	"synergyblood/internal/models"

	"gorm.io/gorm"
)

type HospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepository(db *gorm.DB) *HospitalRepository {
	return &HospitalRepository{db: db}
}

func (r *HospitalRepository) ListAll() ([]models.Hospital, error) {
	var list []models.Hospital
	err := r.db.Order("name").Find(&list).Error
	return list, err
}

func (r *HospitalRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Hospital{}).Count(&n).Error
	return n, err
}

func (r *HospitalRepository) CreateBatch(hospitals []models.Hospital) error {
	if len(hospitals) == 0 {
		return nil
	}
	return r.db.Create(&hospitals).Error
}
