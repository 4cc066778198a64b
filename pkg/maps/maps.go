// Package maps builds platform launch URLs for a coordinate pair so mobile
// clients can hand off to the native map application, with a Google Maps
// web URL as the universal fallback.
package maps

import (
	"fmt"
	"net/url"
)

// Links holds the per-platform URLs for one location.
type Links struct {
	IOS     string `json:"ios"`     // Apple Maps URL scheme
	Android string `json:"android"` // geo: intent URI
	Web     string `json:"web"`     // Google Maps search URL
}

// For returns launch links for the given coordinates with a human label
// (typically the hospital name) shown as the pin title.
func For(lat, lng float64, label string) Links {
	name := url.QueryEscape(label)
	return Links{
		IOS:     fmt.Sprintf("maps://?q=%s&ll=%f,%f", name, lat, lng),
		Android: fmt.Sprintf("geo:%f,%f?q=%f,%f(%s)", lat, lng, lat, lng, name),
		Web:     fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%f,%f", lat, lng),
	}
}
