package database

import (
	_ "embed"
	"encoding/json"
	"log"

	"synergyblood/internal/models"
	"synergyblood/internal/repository"

	"gorm.io/gorm"
)

//go:embed hospitals.json
var hospitalSeed []byte

// SeedHospitals loads the bundled hospital directory on first boot. An
// already-populated table is left alone so manual edits survive restarts.
func SeedHospitals(db *gorm.DB) {
	repo := repository.NewHospitalRepository(db)
	n, err := repo.Count()
	if err != nil {
		log.Printf("[seed] hospital count failed: %v", err)
		return
	}
	if n > 0 {
		return
	}
	var hospitals []models.Hospital
	if err := json.Unmarshal(hospitalSeed, &hospitals); err != nil {
		log.Printf("[seed] bad hospital dataset: %v", err)
		return
	}
	if err := repo.CreateBatch(hospitals); err != nil {
		log.Printf("[seed] hospital insert failed: %v", err)
		return
	}
	log.Printf("[seed] loaded %d hospitals", len(hospitals))
}
