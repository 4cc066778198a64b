package service

import (
	"testing"

	"synergyblood/internal/domain"
	"synergyblood/internal/models"
	"synergyblood/pkg/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRequestStore struct {
	nextID  uint
	byID    map[uint]*models.BloodRequest
	creates int
	updates int
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{byID: make(map[uint]*models.BloodRequest)}
}

func (f *fakeRequestStore) Create(r *models.BloodRequest) error {
	f.nextID++
	r.ID = f.nextID
	cp := *r
	f.byID[r.ID] = &cp
	f.creates++
	return nil
}

func (f *fakeRequestStore) GetByID(id uint) (*models.BloodRequest, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRequestStore) Update(r *models.BloodRequest) error {
	cp := *r
	f.byID[r.ID] = &cp
	f.updates++
	return nil
}

func (f *fakeRequestStore) ListActive() ([]models.BloodRequest, error) {
	var list []models.BloodRequest
	for _, r := range f.byID {
		if r.Status == domain.RequestStatusActive {
			list = append(list, *r)
		}
	}
	return list, nil
}

func donorProfile(userID uint) *models.MedicalInfo {
	return &models.MedicalInfo{
		UserID:            userID,
		FullName:          "Jane Doe",
		Age:               29,
		Gender:            "Female",
		BloodGroup:        "O-",
		AvailableToDonate: true,
	}
}

func TestCreateRequest(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewRequestService(store)

	coords := &geo.Point{Latitude: -1.286389, Longitude: 36.817223}
	req, err := svc.Create(7, donorProfile(7), "Kenyatta National Hospital", "Upper Hill, Nairobi", coords)
	require.NoError(t, err)

	assert.NotZero(t, req.ID)
	assert.Equal(t, uint(7), req.RequesterID)
	assert.Equal(t, "Jane Doe", req.RequesterName)
	assert.Equal(t, "O-", req.RequesterBloodGroup)
	assert.Equal(t, 29, req.RequesterAge)
	assert.True(t, req.RequesterAvailability)
	assert.Equal(t, domain.RequestStatusActive, req.Status)
	assert.Nil(t, req.DismissedAt)
	assert.Nil(t, req.DismissedBy)
	assert.False(t, req.CreatedAt.IsZero())
	assert.Equal(t, 1, store.creates)
}

func TestCreateRequestIncompleteProfile(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewRequestService(store)
	coords := &geo.Point{Latitude: 1, Longitude: 1}

	cases := []*models.MedicalInfo{
		nil,
		{UserID: 7, BloodGroup: "O-"},             // no name
		{UserID: 7, FullName: "Jane Doe"},         // no blood group
		{UserID: 7, FullName: "J", BloodGroup: "X"}, // not a real group
	}
	for _, profile := range cases {
		_, err := svc.Create(7, profile, "Hospital", "Somewhere", coords)
		assert.ErrorIs(t, err, ErrIncompleteProfile)
	}
	assert.Zero(t, store.creates, "no store write on validation failure")
}

func TestCreateRequestIncompleteForm(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewRequestService(store)
	coords := &geo.Point{Latitude: 1, Longitude: 1}

	_, err := svc.Create(7, donorProfile(7), "", "Somewhere", coords)
	assert.ErrorIs(t, err, ErrIncompleteForm)
	_, err = svc.Create(7, donorProfile(7), "Hospital", "", coords)
	assert.ErrorIs(t, err, ErrIncompleteForm)
	_, err = svc.Create(7, donorProfile(7), "Hospital", "Somewhere", nil)
	assert.ErrorIs(t, err, ErrIncompleteForm)
	assert.Zero(t, store.creates)
}

func TestCreateRequestInvalidCoordinates(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewRequestService(store)

	bad := []*geo.Point{
		{Latitude: 91, Longitude: 0},
		{Latitude: 0, Longitude: -181},
	}
	for _, coords := range bad {
		_, err := svc.Create(7, donorProfile(7), "Hospital", "Somewhere", coords)
		assert.ErrorIs(t, err, ErrInvalidCoordinates)
	}
	assert.Zero(t, store.creates)
}

func TestDismissRequest(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewRequestService(store)
	coords := &geo.Point{Latitude: 1, Longitude: 1}
	req, err := svc.Create(7, donorProfile(7), "Hospital", "Somewhere", coords)
	require.NoError(t, err)

	dismissed, err := svc.Dismiss(req.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusDismissed, dismissed.Status)
	require.NotNil(t, dismissed.DismissedAt)
	require.NotNil(t, dismissed.DismissedBy)
	assert.Equal(t, uint(9), *dismissed.DismissedBy)
}

func TestDismissNotFound(t *testing.T) {
	svc := NewRequestService(newFakeRequestStore())
	_, err := svc.Dismiss(12345, 9)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

// A second dismiss is an idempotent no-op: the record keeps the first
// writer's DismissedAt/DismissedBy and nothing is written again.
func TestDismissIdempotent(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewRequestService(store)
	coords := &geo.Point{Latitude: 1, Longitude: 1}
	req, err := svc.Create(7, donorProfile(7), "Hospital", "Somewhere", coords)
	require.NoError(t, err)

	first, err := svc.Dismiss(req.ID, 9)
	require.NoError(t, err)
	updatesAfterFirst := store.updates

	second, err := svc.Dismiss(req.ID, 11)
	require.NoError(t, err)
	assert.Equal(t, *first.DismissedAt, *second.DismissedAt)
	assert.Equal(t, uint(9), *second.DismissedBy)
	assert.Equal(t, updatesAfterFirst, store.updates, "no second write")
}

// Self-dismissal is permitted: the requester may take down their own request.
func TestDismissByRequesterAllowed(t *testing.T) {
	store := newFakeRequestStore()
	svc := NewRequestService(store)
	coords := &geo.Point{Latitude: 1, Longitude: 1}
	req, err := svc.Create(7, donorProfile(7), "Hospital", "Somewhere", coords)
	require.NoError(t, err)

	dismissed, err := svc.Dismiss(req.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), *dismissed.DismissedBy)
}
