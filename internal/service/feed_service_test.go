package service

import (
	"math"
	"testing"
	"time"

	"synergyblood/internal/domain"
	"synergyblood/internal/models"
	"synergyblood/pkg/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeLocationStore struct {
	byUser map[uint]*models.UserLocation
}

func (f *fakeLocationStore) GetByUserID(userID uint) (*models.UserLocation, error) {
	if loc, ok := f.byUser[userID]; ok {
		return loc, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeMedicalStore struct {
	byUser map[uint]*models.MedicalInfo
}

func (f *fakeMedicalStore) GetByUserID(userID uint) (*models.MedicalInfo, error) {
	if info, ok := f.byUser[userID]; ok {
		return info, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMedicalStore) ListAvailableDonors() ([]models.MedicalInfo, error) {
	var list []models.MedicalInfo
	for _, info := range f.byUser {
		if info.AvailableToDonate {
			list = append(list, *info)
		}
	}
	return list, nil
}

type recordingBroadcaster struct {
	created   []uint
	dismissed []uint
}

func (r *recordingBroadcaster) RequestCreated(req *models.BloodRequest)   { r.created = append(r.created, req.ID) }
func (r *recordingBroadcaster) RequestDismissed(req *models.BloodRequest) { r.dismissed = append(r.dismissed, req.ID) }

// latKmNorth returns a latitude offset corresponding to the given
// great-circle distance due north of the equator.
func latKmNorth(km float64) float64 {
	return km / geo.EarthRadiusKm * 180 / math.Pi
}

func activeRequestAt(id, requesterID uint, lat, lng float64) models.BloodRequest {
	return models.BloodRequest{
		ID:          id,
		RequesterID: requesterID,
		Status:      domain.RequestStatusActive,
		Latitude:    lat,
		Longitude:   lng,
	}
}

func newTestFeed(store *fakeRequestStore, locs *fakeLocationStore, medical *fakeMedicalStore, events FeedBroadcaster) *FeedService {
	if locs == nil {
		locs = &fakeLocationStore{byUser: map[uint]*models.UserLocation{}}
	}
	if medical == nil {
		medical = &fakeMedicalStore{byUser: map[uint]*models.MedicalInfo{}}
	}
	return NewFeedService(NewRequestService(store), store, locs, medical, events, domain.DefaultRadiusKm, 24*time.Hour)
}

func TestVisibleRequestsWithinRadius(t *testing.T) {
	feed := newTestFeed(newFakeRequestStore(), nil, nil, nil)
	origin := geo.Point{Latitude: 0, Longitude: 0}
	all := []models.BloodRequest{
		activeRequestAt(1, 100, latKmNorth(5), 0),
		activeRequestAt(2, 101, latKmNorth(25), 0),
	}
	got, err := feed.VisibleRequests(55, origin, all)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].Item.ID)
	assert.InDelta(t, 5.0, got[0].DistanceKm, 0.01)
}

func TestVisibleRequestsExcludesOwn(t *testing.T) {
	feed := newTestFeed(newFakeRequestStore(), nil, nil, nil)
	origin := geo.Point{Latitude: 0, Longitude: 0}
	all := []models.BloodRequest{
		activeRequestAt(1, 55, latKmNorth(0.5), 0), // own, nearest of all
		activeRequestAt(2, 101, latKmNorth(10), 0),
	}
	got, err := feed.VisibleRequests(55, origin, all)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint(2), got[0].Item.ID)
}

func TestVisibleRequestsExcludesDismissedRegardlessOfProximity(t *testing.T) {
	feed := newTestFeed(newFakeRequestStore(), nil, nil, nil)
	origin := geo.Point{Latitude: 0, Longitude: 0}
	dismissed := activeRequestAt(1, 100, latKmNorth(2), 0)
	dismissed.Status = domain.RequestStatusDismissed
	all := []models.BloodRequest{
		dismissed,
		activeRequestAt(2, 101, latKmNorth(10), 0),
	}
	got, err := feed.VisibleRequests(55, origin, all)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint(2), got[0].Item.ID)
}

func TestVisibleRequestsSkipsMalformedCoordinates(t *testing.T) {
	feed := newTestFeed(newFakeRequestStore(), nil, nil, nil)
	origin := geo.Point{Latitude: 0, Longitude: 0}
	all := []models.BloodRequest{
		activeRequestAt(1, 100, math.NaN(), 0),
		activeRequestAt(2, 101, 95, 0), // latitude out of range
		activeRequestAt(3, 102, latKmNorth(3), 0),
	}
	got, err := feed.VisibleRequests(55, origin, all)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint(3), got[0].Item.ID)
}

func TestVisibleRequestsSortedAscending(t *testing.T) {
	feed := newTestFeed(newFakeRequestStore(), nil, nil, nil)
	origin := geo.Point{Latitude: 0, Longitude: 0}
	all := []models.BloodRequest{
		activeRequestAt(1, 100, latKmNorth(18), 0),
		activeRequestAt(2, 101, latKmNorth(3), 0),
		activeRequestAt(3, 102, latKmNorth(11), 0),
	}
	got, err := feed.VisibleRequests(55, origin, all)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, uint(2), got[0].Item.ID)
	assert.Equal(t, uint(3), got[1].Item.ID)
	assert.Equal(t, uint(1), got[2].Item.ID)
}

func TestVisibleRequestsMissingOrigin(t *testing.T) {
	feed := newTestFeed(newFakeRequestStore(), nil, nil, nil)
	all := []models.BloodRequest{activeRequestAt(1, 100, 1, 1)}
	_, err := feed.VisibleRequests(55, geo.Point{Latitude: math.NaN()}, all)
	assert.ErrorIs(t, err, geo.ErrMissingOrigin)
}

func TestFeedDismissRemovesFromNextFeed(t *testing.T) {
	store := newFakeRequestStore()
	events := &recordingBroadcaster{}
	feed := newTestFeed(store, nil, nil, events)
	origin := geo.Point{Latitude: 0, Longitude: 0}

	profile := donorProfile(100)
	coords := &geo.Point{Latitude: latKmNorth(2), Longitude: 0}
	req, err := feed.requests.Create(100, profile, "Hospital", "Somewhere", coords)
	require.NoError(t, err)

	before, err := feed.Feed(55, origin)
	require.NoError(t, err)
	require.Len(t, before, 1)

	_, err = feed.Dismiss(req.ID, 55)
	require.NoError(t, err)
	assert.Equal(t, []uint{req.ID}, events.dismissed)

	after, err := feed.Feed(55, origin)
	require.NoError(t, err)
	assert.Empty(t, after)
}

func TestResolveOriginPrefersFreshCoords(t *testing.T) {
	feed := newTestFeed(newFakeRequestStore(), nil, nil, nil)
	fresh := &geo.Point{Latitude: 1, Longitude: 2}
	got, err := feed.ResolveOrigin(55, fresh)
	require.NoError(t, err)
	assert.Equal(t, *fresh, got)
}

func TestResolveOriginFallsBackToLastKnown(t *testing.T) {
	locs := &fakeLocationStore{byUser: map[uint]*models.UserLocation{
		55: {UserID: 55, Latitude: 3, Longitude: 4, LastUpdatedAt: time.Now().Add(-time.Hour)},
	}}
	feed := newTestFeed(newFakeRequestStore(), locs, nil, nil)
	got, err := feed.ResolveOrigin(55, nil)
	require.NoError(t, err)
	assert.Equal(t, geo.Point{Latitude: 3, Longitude: 4}, got)
}

func TestResolveOriginIgnoresStalePositionUsesHome(t *testing.T) {
	lat, lng := 5.0, 6.0
	locs := &fakeLocationStore{byUser: map[uint]*models.UserLocation{
		55: {UserID: 55, Latitude: 3, Longitude: 4, LastUpdatedAt: time.Now().Add(-48 * time.Hour)},
	}}
	medical := &fakeMedicalStore{byUser: map[uint]*models.MedicalInfo{
		55: {UserID: 55, Latitude: &lat, Longitude: &lng},
	}}
	feed := newTestFeed(newFakeRequestStore(), locs, medical, nil)
	got, err := feed.ResolveOrigin(55, nil)
	require.NoError(t, err)
	assert.Equal(t, geo.Point{Latitude: 5, Longitude: 6}, got)
}

func TestResolveOriginNoLocationAnywhere(t *testing.T) {
	feed := newTestFeed(newFakeRequestStore(), nil, nil, nil)
	_, err := feed.ResolveOrigin(55, nil)
	assert.ErrorIs(t, err, geo.ErrMissingOrigin)
}

func TestResolveOriginRejectsBadFreshCoords(t *testing.T) {
	feed := newTestFeed(newFakeRequestStore(), nil, nil, nil)
	_, err := feed.ResolveOrigin(55, &geo.Point{Latitude: 95, Longitude: 0})
	assert.ErrorIs(t, err, geo.ErrInvalidCoordinate)
}
