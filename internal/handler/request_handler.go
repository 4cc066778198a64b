package handler

import (
	"log"
	"net/http"
	"strconv"

	"synergyblood/internal/middleware"
	"synergyblood/internal/models"
	"synergyblood/internal/repository"
	"synergyblood/internal/service"
	"synergyblood/internal/ws"
	"synergyblood/pkg/geo"
	"synergyblood/pkg/maps"
	"synergyblood/pkg/proximity"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	requestSvc  *service.RequestService
	feedSvc     *service.FeedService
	notifSvc    *service.NotificationService
	medicalRepo *repository.MedicalRepository
	requestRepo *repository.RequestRepository
	hub         *ws.RequestHub
	radiusKm    float64
}

func NewRequestHandler(requestSvc *service.RequestService, feedSvc *service.FeedService, notifSvc *service.NotificationService, medicalRepo *repository.MedicalRepository, requestRepo *repository.RequestRepository, hub *ws.RequestHub, radiusKm float64) *RequestHandler {
	return &RequestHandler{
		requestSvc:  requestSvc,
		feedSvc:     feedSvc,
		notifSvc:    notifSvc,
		medicalRepo: medicalRepo,
		requestRepo: requestRepo,
		hub:         hub,
		radiusKm:    radiusKm,
	}
}

type createRequestBody struct {
	HospitalName     string   `json:"hospital_name" binding:"required"`
	HospitalLocation string   `json:"hospital_location" binding:"required"`
	Latitude         *float64 `json:"latitude" binding:"required"`
	Longitude        *float64 `json:"longitude" binding:"required"`
}

// Create broadcasts a new blood request. The requester's saved medical info
// is snapshotted onto the record; nearby available donors get a notification.
func (h *RequestHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var body createRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, err := h.medicalRepo.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": service.ErrIncompleteProfile.Error()})
		return
	}
	coords := &geo.Point{Latitude: *body.Latitude, Longitude: *body.Longitude}
	req, err := h.requestSvc.Create(userID, profile, body.HospitalName, body.HospitalLocation, coords)
	if err != nil {
		switch err {
		case service.ErrIncompleteProfile:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case service.ErrIncompleteForm, service.ErrInvalidCoordinates:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("[requests] create failed: user=%d err=%v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send blood request"})
		}
		return
	}
	if h.hub != nil {
		h.hub.RequestCreated(req)
	}
	// Push fan-out is best-effort; the request stands either way.
	go func() {
		if n, err := h.notifSvc.NotifyNearbyDonors(req); err != nil {
			log.Printf("[requests] donor fan-out failed: request=%d err=%v", req.ID, err)
		} else if n > 0 {
			log.Printf("[requests] notified %d nearby donors for request %d", n, req.ID)
		}
	}()
	c.JSON(http.StatusCreated, gin.H{"request": req})
}

type feedItem struct {
	Request    models.BloodRequest `json:"request"`
	DistanceKm float64             `json:"distance_km"`
	Proximity  string              `json:"proximity"`
	MapLinks   maps.Links          `json:"map_links"`
}

// Feed returns active requests near the caller, nearest first. The origin
// is the lat/lng query pair when present, else the stored last-known
// position, else the profile's home coordinates.
func (h *RequestHandler) Feed(c *gin.Context) {
	userID := middleware.GetUserID(c)
	fresh, err := parseOptionalCoords(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
		return
	}
	origin, err := h.feedSvc.ResolveOrigin(userID, fresh)
	if err != nil {
		if err == geo.ErrMissingOrigin {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "location required: enable location services or set home coordinates in your medical info"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
		return
	}
	results, err := h.feedSvc.Feed(userID, origin)
	if err != nil {
		log.Printf("[requests] feed failed: user=%d err=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load requests"})
		return
	}
	items := make([]feedItem, 0, len(results))
	for _, r := range results {
		items = append(items, feedItem{
			Request:    r.Item,
			DistanceKm: r.DistanceKm,
			Proximity:  proximity.Label(proximity.Progress(r.DistanceKm, h.radiusKm)),
			MapLinks:   maps.For(r.Item.Latitude, r.Item.Longitude, r.Item.HospitalName),
		})
	}
	c.JSON(http.StatusOK, gin.H{"requests": items, "radius_km": h.radiusKm})
}

// Dismiss marks a surfaced request handled for everyone. Any authenticated
// user may dismiss, including the requester taking down their own.
func (h *RequestHandler) Dismiss(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}
	req, err := h.feedSvc.Dismiss(uint(id), userID)
	if err != nil {
		if err == service.ErrRequestNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[requests] dismiss failed: request=%d user=%d err=%v", id, userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to dismiss request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": req})
}

// Mine lists the caller's own requests, newest first, active or not.
func (h *RequestHandler) Mine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.requestRepo.ListByRequester(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": list})
}

// parseOptionalCoords reads the lat/lng query pair. Both absent returns nil;
// one absent or unparsable is an error.
func parseOptionalCoords(c *gin.Context) (*geo.Point, error) {
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr == "" && lngStr == "" {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, err
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, err
	}
	return &geo.Point{Latitude: lat, Longitude: lng}, nil
}
