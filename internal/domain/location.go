package domain

import "fmt"

// Location is a last-known geographic position.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewLocation(lat, lng float64) (Location, error) {
	if !(lat >= -90 && lat <= 90) {
		return Location{}, fmt.Errorf("latitude %v out of range: %w", lat, ErrInvalidFieldValue)
	}
	if !(lng >= -180 && lng <= 180) {
		return Location{}, fmt.Errorf("longitude %v out of range: %w", lng, ErrInvalidFieldValue)
	}
	return Location{Latitude: lat, Longitude: lng}, nil
}
