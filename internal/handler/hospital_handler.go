package handler

import (
	"net/http"
	"strconv"

	"synergyblood/internal/middleware"
	"synergyblood/internal/models"
	"synergyblood/internal/repository"
	"synergyblood/internal/service"
	"synergyblood/pkg/geo"
	"synergyblood/pkg/maps"

	"github.com/gin-gonic/gin"
)

type HospitalHandler struct {
	repo     *repository.HospitalRepository
	feedSvc  *service.FeedService
	radiusKm float64
}

func NewHospitalHandler(repo *repository.HospitalRepository, feedSvc *service.FeedService, radiusKm float64) *HospitalHandler {
	return &HospitalHandler{repo: repo, feedSvc: feedSvc, radiusKm: radiusKm}
}

type hospitalItem struct {
	Hospital   models.Hospital `json:"hospital"`
	DistanceKm float64         `json:"distance_km"`
	MapLinks   maps.Links      `json:"map_links"`
}

// Nearby lists seeded hospitals within radius_km of the caller, nearest
// first, so the request form can offer real pickable destinations.
func (h *HospitalHandler) Nearby(c *gin.Context) {
	userID := middleware.GetUserID(c)
	fresh, err := parseOptionalCoords(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
		return
	}
	origin, err := h.feedSvc.ResolveOrigin(userID, fresh)
	if err != nil {
		if err == geo.ErrMissingOrigin {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "location required"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
		return
	}
	radius := h.radiusKm
	if s := c.Query("radius_km"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
			radius = v
		}
	}
	all, err := h.repo.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load hospitals"})
		return
	}
	results, err := geo.FilterWithinRadius(origin, radius, all, func(hosp models.Hospital) geo.Point {
		return geo.Point{Latitude: hosp.Latitude, Longitude: hosp.Longitude}
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load hospitals"})
		return
	}
	items := make([]hospitalItem, 0, len(results))
	for _, r := range results {
		items = append(items, hospitalItem{
			Hospital:   r.Item,
			DistanceKm: r.DistanceKm,
			MapLinks:   maps.For(r.Item.Latitude, r.Item.Longitude, r.Item.Name),
		})
	}
	c.JSON(http.StatusOK, gin.H{"hospitals": items, "radius_km": radius})
}
