package handler

import (
	"net/http"

	"synergyblood/internal/domain"
	"synergyblood/internal/middleware"
	"synergyblood/internal/models"
	"synergyblood/internal/repository"
	"synergyblood/pkg/geo"

	"github.com/gin-gonic/gin"
)

type MedicalHandler struct {
	repo *repository.MedicalRepository
}

func NewMedicalHandler(repo *repository.MedicalRepository) *MedicalHandler {
	return &MedicalHandler{repo: repo}
}

func (h *MedicalHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	info, err := h.repo.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"medical_info": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"medical_info": info})
}

type saveMedicalRequest struct {
	FullName          string   `json:"full_name" binding:"required"`
	Age               int      `json:"age" binding:"required,gt=0"`
	Gender            string   `json:"gender" binding:"required"`
	BloodGroup        string   `json:"blood_group" binding:"required"`
	Location          string   `json:"location"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	Allergy           string   `json:"allergy"`
	Disease           string   `json:"disease"`
	AvailableToDonate bool     `json:"available_to_donate"`
}

// Save overwrites the whole profile with the submitted form, mirroring how
// the app's info screen saves: all fields at once, no partial patch.
func (h *MedicalHandler) Save(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req saveMedicalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !domain.ValidBloodGroup(req.BloodGroup) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid blood group"})
		return
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude must be provided together"})
		return
	}
	if req.Latitude != nil {
		p := geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}
		if err := p.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
			return
		}
	}
	info := &models.MedicalInfo{
		UserID:            userID,
		FullName:          req.FullName,
		Age:               req.Age,
		Gender:            req.Gender,
		BloodGroup:        req.BloodGroup,
		Location:          req.Location,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		Allergy:           req.Allergy,
		Disease:           req.Disease,
		AvailableToDonate: req.AvailableToDonate,
	}
	if err := h.repo.Save(info); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"medical_info": info})
}
