package models

import "strings"

// Place is a gazetteer row used by the self-hosted geocoder: a named address and its
// geographic coordinates.
type Place struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Street    string  `json:"street"`
	City      string  `json:"city"`
	Region    string  `json:"region"`
	Postcode  string  `json:"postcode"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// FormattedAddress joins the non-empty address parts, e.g.
// "1600 Amphitheatre Pkwy, Mountain View, CA 94043".
func (p Place) FormattedAddress() string {
	parts := make([]string, 0, 4)
	for _, s := range []string{p.Name, p.Street, p.City} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}

	tail := strings.TrimSpace(strings.TrimSpace(p.Region) + " " + strings.TrimSpace(p.Postcode))
	if tail != "" {
		parts = append(parts, tail)
	}

	return strings.Join(parts, ", ")
}

func (p Place) Coordinates() Coordinates {
	return Coordinates{Lat: p.Latitude, Lng: p.Longitude}
}
