package models

import (
	"errors"
	"fmt"
)

// Coordinates is a WGS84 point as produced by map interaction, geolocation or geocoding.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinates) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return errors.New("lat must be between -90 and 90")
	}

	if c.Lng < -180 || c.Lng > 180 {
		return errors.New("lng must be between -180 and 180")
	}

	return nil
}

// Label renders the coordinates the way the map dialog displays them.
func (c Coordinates) Label() string {
	return fmt.Sprintf("%.6f, %.6f", c.Lat, c.Lng)
}

// Location is one address slot of a shipment draft. Coordinates stay nil until a
// selection flow has been accepted for the slot.
type Location struct {
	Address     string       `json:"address"`
	Coordinates *Coordinates `json:"coordinates"`
}

func (l Location) Resolved() bool {
	return l.Coordinates != nil
}
