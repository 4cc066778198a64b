package repository

import (
	"synergyblood/internal/domain"
	"synergyblood/internal/models"

	"gorm.io/gorm"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(req *models.BloodRequest) error {
	return r.db.Create(req).Error
}

func (r *RequestRepository) GetByID(id uint) (*models.BloodRequest, error) {
	var req models.BloodRequest
	err := r.db.First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListActive returns the current snapshot of active requests, newest first.
// The feed is always recomputed from this full snapshot.
func (r *RequestRepository) ListActive() ([]models.BloodRequest, error) {
	var list []models.BloodRequest
	err := r.db.Where("status = ?", domain.RequestStatusActive).
		Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *RequestRepository) ListByRequester(requesterID uint) ([]models.BloodRequest, error) {
	var list []models.BloodRequest
	err := r.db.Where("requester_id = ?", requesterID).
		Order("created_at DESC").Find(&list).Error
	return list, err
}

// Update persists lifecycle changes. Only the request service calls this;
// nothing else writes a BloodRequest.
func (r *RequestRepository) Update(req *models.BloodRequest) error {
	return r.db.Save(req).Error
}
