package service

import (
	"context"
	"fmt"
	"strings"

	"drone-delivery-api/internal/models"
)

// GeoCodeService searches the gazetteer for the places an address refers to.
type GeoCodeService struct {
	repo GeoCodeRepository
}

type GeoCodeRepository interface {
	SearchPlacesByText(ctx context.Context, query string) ([]models.Place, error)
}

func NewGeoCodeService(repo GeoCodeRepository) *GeoCodeService {
	return &GeoCodeService{repo: repo}
}

// Geocode returns the places matching address, best match first. Places the
// form could not show (no address text) are skipped, and rows repeated by an
// import without --truncate collapse to the best ranked one.
func (s *GeoCodeService) Geocode(ctx context.Context, address string) ([]models.Place, error) {
	query := strings.Join(strings.Fields(address), " ")
	if query == "" {
		return nil, fmt.Errorf("service: address cannot be empty")
	}

	places, err := s.repo.SearchPlacesByText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("service: failed to search places for %q: %w", query, err)
	}

	seen := make(map[string]struct{}, len(places))
	matches := make([]models.Place, 0, len(places))
	for _, p := range places {
		label := strings.ToLower(p.FormattedAddress())
		if label == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		matches = append(matches, p)
	}

	return matches, nil
}
