package geo

import (
	"errors"
	"math"
)

// EarthRadiusKm is the Earth radius in kilometers for Haversine.
const EarthRadiusKm = 6371.0

var (
	// ErrInvalidCoordinate is returned when a coordinate component is NaN
	// or outside the valid latitude/longitude range.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrMissingOrigin is returned when a proximity filter is invoked
	// without a usable reference point.
	ErrMissingOrigin = errors.New("missing origin")
)

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that both components are real numbers within
// lat [-90,90] and lng [-180,180].
func (p Point) Validate() error {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) {
		return ErrInvalidCoordinate
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return ErrInvalidCoordinate
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

// DistanceKm returns the great-circle distance in km between two points.
// NaN components are rejected; out-of-range values are the caller's job to
// validate and are not clamped here.
func DistanceKm(a, b Point) (float64, error) {
	if math.IsNaN(a.Latitude) || math.IsNaN(a.Longitude) ||
		math.IsNaN(b.Latitude) || math.IsNaN(b.Longitude) {
		return 0, ErrInvalidCoordinate
	}
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	φ1, φ2 := rad(a.Latitude), rad(b.Latitude)
	Δφ := rad(b.Latitude - a.Latitude)
	Δλ := rad(b.Longitude - a.Longitude)
	h := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c, nil
}
