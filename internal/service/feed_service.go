package service

import (
	"time"

	"synergyblood/internal/domain"
	"synergyblood/internal/models"
	"synergyblood/pkg/geo"
)

// LocationStore reads a user's last reported device position.
type LocationStore interface {
	GetByUserID(userID uint) (*models.UserLocation, error)
}

// MedicalStore reads donor/requester profiles.
type MedicalStore interface {
	GetByUserID(userID uint) (*models.MedicalInfo, error)
	ListAvailableDonors() ([]models.MedicalInfo, error)
}

// FeedBroadcaster pushes request lifecycle events to connected clients so
// they recompute their feed from a fresh snapshot.
type FeedBroadcaster interface {
	RequestCreated(req *models.BloodRequest)
	RequestDismissed(req *models.BloodRequest)
}

// FeedService composes the proximity filter with the request lifecycle to
// produce the "requests relevant to me" view.
type FeedService struct {
	requests       *RequestService
	store          RequestStore
	locations      LocationStore
	medical        MedicalStore
	events         FeedBroadcaster
	radiusKm       float64
	maxPositionAge time.Duration
}

func NewFeedService(requests *RequestService, store RequestStore, locations LocationStore, medical MedicalStore, events FeedBroadcaster, radiusKm float64, maxPositionAge time.Duration) *FeedService {
	return &FeedService{
		requests:       requests,
		store:          store,
		locations:      locations,
		medical:        medical,
		events:         events,
		radiusKm:       radiusKm,
		maxPositionAge: maxPositionAge,
	}
}

// VisibleRequests filters a request snapshot down to what selfID should see:
// active requests from other users with well-formed coordinates, within the
// feed radius of origin, sorted nearest first. Malformed records are skipped,
// not fatal; a missing origin is an error.
func (s *FeedService) VisibleRequests(selfID uint, origin geo.Point, all []models.BloodRequest) ([]geo.Result[models.BloodRequest], error) {
	candidates := make([]models.BloodRequest, 0, len(all))
	for _, req := range all {
		if req.Status != domain.RequestStatusActive {
			continue
		}
		if req.RequesterID == selfID {
			continue
		}
		if (geo.Point{Latitude: req.Latitude, Longitude: req.Longitude}).Validate() != nil {
			continue
		}
		candidates = append(candidates, req)
	}
	return geo.FilterWithinRadius(origin, s.radiusKm, candidates, func(r models.BloodRequest) geo.Point {
		return geo.Point{Latitude: r.Latitude, Longitude: r.Longitude}
	})
}

// Feed loads the current active snapshot and applies VisibleRequests.
func (s *FeedService) Feed(selfID uint, origin geo.Point) ([]geo.Result[models.BloodRequest], error) {
	all, err := s.store.ListActive()
	if err != nil {
		return nil, err
	}
	return s.VisibleRequests(selfID, origin, all)
}

// Dismiss forwards to the lifecycle manager and broadcasts the change so
// the dismissed item disappears from the next computed feed.
func (s *FeedService) Dismiss(requestID, selfID uint) (*models.BloodRequest, error) {
	req, err := s.requests.Dismiss(requestID, selfID)
	if err != nil {
		return nil, err
	}
	if s.events != nil {
		s.events.RequestDismissed(req)
	}
	return req, nil
}

// ResolveOrigin picks the reference point for a feed or hospital search:
// fresh device coordinates when the client sent them, else the stored
// last-known position (if recent enough), else the profile's home
// coordinates. With none of those the computation fails with
// geo.ErrMissingOrigin; callers must treat that as terminal, not retryable.
func (s *FeedService) ResolveOrigin(userID uint, fresh *geo.Point) (geo.Point, error) {
	if fresh != nil {
		if err := fresh.Validate(); err != nil {
			return geo.Point{}, err
		}
		return *fresh, nil
	}
	if loc, err := s.locations.GetByUserID(userID); err == nil && loc != nil {
		if s.maxPositionAge <= 0 || time.Since(loc.LastUpdatedAt) <= s.maxPositionAge {
			p := geo.Point{Latitude: loc.Latitude, Longitude: loc.Longitude}
			if p.Validate() == nil {
				return p, nil
			}
		}
	}
	if info, err := s.medical.GetByUserID(userID); err == nil && info != nil &&
		info.Latitude != nil && info.Longitude != nil {
		p := geo.Point{Latitude: *info.Latitude, Longitude: *info.Longitude}
		if p.Validate() == nil {
			return p, nil
		}
	}
	return geo.Point{}, geo.ErrMissingOrigin
}
