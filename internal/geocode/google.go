package geocode

import (
	"context"
	"fmt"

	"drone-delivery-api/internal/models"

	"googlemaps.github.io/maps"
)

// MapsClient is the subset of *maps.Client the Google provider calls.
type MapsClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// Google geocodes through the Google Maps Geocoding API. The first result wins.
type Google struct {
	client MapsClient
}

func NewGoogle(client MapsClient) *Google {
	return &Google{client: client}
}

// NewGoogleFromKey builds the provider with a real maps client.
func NewGoogleFromKey(apiKey string, opts ...maps.ClientOption) (*Google, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("geocode: create maps client: %w", err)
	}
	return NewGoogle(client), nil
}

func (g *Google) Geocode(ctx context.Context, address string) (Match, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return Match{}, fmt.Errorf("geocode: google geocode: %w", err)
	}
	if len(results) == 0 {
		return Match{}, ErrNotFound
	}

	first := results[0]
	return Match{
		FormattedAddress: first.FormattedAddress,
		Coordinates: models.Coordinates{
			Lat: first.Geometry.Location.Lat,
			Lng: first.Geometry.Location.Lng,
		},
	}, nil
}

func (g *Google) ReverseGeocode(ctx context.Context, coords models.Coordinates) (string, error) {
	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: coords.Lat, Lng: coords.Lng},
	})
	if err != nil {
		return "", fmt.Errorf("geocode: google reverse geocode: %w", err)
	}
	if len(results) == 0 || results[0].FormattedAddress == "" {
		return "", ErrNotFound
	}

	return results[0].FormattedAddress, nil
}
