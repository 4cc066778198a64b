package service

import (
	"errors"
	"time"

	"synergyblood/internal/domain"
	"synergyblood/internal/models"
	"synergyblood/pkg/geo"

	"gorm.io/gorm"
)

var (
	ErrIncompleteProfile  = errors.New("complete your medical info first")
	ErrIncompleteForm     = errors.New("hospital name, location and coordinates are required")
	ErrInvalidCoordinates = errors.New("coordinates out of range")
	ErrRequestNotFound    = errors.New("blood request not found")
)

// RequestStore is the persistence surface for blood requests. The gorm
// repository satisfies it; tests substitute an in-memory fake.
type RequestStore interface {
	Create(*models.BloodRequest) error
	GetByID(id uint) (*models.BloodRequest, error)
	Update(*models.BloodRequest) error
	ListActive() ([]models.BloodRequest, error)
}

// RequestService owns the blood-request lifecycle: active → dismissed and
// nothing else. Its two operations are the only writers of a request record.
type RequestService struct {
	store RequestStore
}

func NewRequestService(store RequestStore) *RequestService {
	return &RequestService{store: store}
}

// Create validates the form and the requester profile, then persists a new
// active request carrying a snapshot of the profile. Nothing is written on
// a validation failure.
func (s *RequestService) Create(requesterID uint, profile *models.MedicalInfo, hospitalName, hospitalLocation string, coords *geo.Point) (*models.BloodRequest, error) {
	if profile == nil || profile.FullName == "" || !domain.ValidBloodGroup(profile.BloodGroup) {
		return nil, ErrIncompleteProfile
	}
	if hospitalName == "" || hospitalLocation == "" || coords == nil {
		return nil, ErrIncompleteForm
	}
	if err := coords.Validate(); err != nil {
		return nil, ErrInvalidCoordinates
	}
	req := &models.BloodRequest{
		RequesterID:           requesterID,
		RequesterName:         profile.FullName,
		RequesterBloodGroup:   profile.BloodGroup,
		RequesterAge:          profile.Age,
		RequesterGender:       profile.Gender,
		RequesterAvailability: profile.AvailableToDonate,
		HospitalName:          hospitalName,
		HospitalLocation:      hospitalLocation,
		Latitude:              coords.Latitude,
		Longitude:             coords.Longitude,
		Status:                domain.RequestStatusActive,
		CreatedAt:             time.Now(),
	}
	if err := s.store.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Dismiss marks a request dismissed on behalf of actingUserID. Dismissing
// an already-dismissed request is an idempotent no-op: the record comes back
// unchanged, DismissedAt/DismissedBy keep their first-writer values. The
// requester may dismiss their own request.
func (s *RequestService) Dismiss(requestID, actingUserID uint) (*models.BloodRequest, error) {
	req, err := s.store.GetByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if req.Status == domain.RequestStatusDismissed {
		return req, nil
	}
	now := time.Now()
	req.Status = domain.RequestStatusDismissed
	req.DismissedAt = &now
	req.DismissedBy = &actingUserID
	if err := s.store.Update(req); err != nil {
		return nil, err
	}
	return req, nil
}
