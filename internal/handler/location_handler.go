package handler

import (
	"net/http"
	"time"

	"synergyblood/internal/middleware"
	"synergyblood/internal/models"
	"synergyblood/internal/repository"
	"synergyblood/pkg/geo"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	locRepo *repository.LocationRepository
}

func NewLocationHandler(locRepo *repository.LocationRepository) *LocationHandler {
	return &LocationHandler{locRepo: locRepo}
}

// UpdateLocation stores the device's reported position as the user's
// last-known location, the feed origin fallback when a later request
// arrives without fresh coordinates.
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Latitude       float64 `json:"latitude" binding:"required"`
		Longitude      float64 `json:"longitude" binding:"required"`
		AccuracyMeters float64 `json:"accuracy_meters"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := geo.Point{Latitude: req.Latitude, Longitude: req.Longitude}
	if err := p.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
		return
	}
	loc, _ := h.locRepo.GetByUserID(userID)
	if loc == nil {
		loc = &models.UserLocation{UserID: userID}
	}
	loc.Latitude = req.Latitude
	loc.Longitude = req.Longitude
	loc.AccuracyMeters = req.AccuracyMeters
	loc.LastUpdatedAt = time.Now()
	if err := h.locRepo.Upsert(loc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *LocationHandler) GetMyLocation(c *gin.Context) {
	userID := middleware.GetUserID(c)
	loc, err := h.locRepo.GetByUserID(userID)
	if err != nil || loc == nil {
		c.JSON(http.StatusOK, gin.H{"latitude": nil, "longitude": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"latitude":        loc.Latitude,
		"longitude":       loc.Longitude,
		"accuracy_meters": loc.AccuracyMeters,
		"last_updated_at": loc.LastUpdatedAt,
	})
}
