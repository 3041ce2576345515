package geocode

import (
	"context"
	"errors"
	"fmt"

	"drone-delivery-api/internal/models"
	"drone-delivery-api/internal/repository"
)

type PlaceSearcher interface {
	Geocode(ctx context.Context, address string) ([]models.Place, error)
}

type NearestPlaceFinder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (*models.Place, error)
}

// Gazetteer geocodes against the self-hosted PostGIS places table.
type Gazetteer struct {
	search  PlaceSearcher
	nearest NearestPlaceFinder
}

func NewGazetteer(search PlaceSearcher, nearest NearestPlaceFinder) *Gazetteer {
	return &Gazetteer{search: search, nearest: nearest}
}

func (g *Gazetteer) Geocode(ctx context.Context, address string) (Match, error) {
	places, err := g.search.Geocode(ctx, address)
	if err != nil {
		return Match{}, fmt.Errorf("geocode: gazetteer search: %w", err)
	}
	if len(places) == 0 {
		return Match{}, ErrNotFound
	}

	return Match{
		FormattedAddress: places[0].FormattedAddress(),
		Coordinates:      places[0].Coordinates(),
	}, nil
}

func (g *Gazetteer) ReverseGeocode(ctx context.Context, coords models.Coordinates) (string, error) {
	place, err := g.nearest.ReverseGeocode(ctx, coords.Lat, coords.Lng)
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("geocode: gazetteer reverse: %w", err)
	}
	if place == nil {
		return "", ErrNotFound
	}

	return place.FormattedAddress(), nil
}
