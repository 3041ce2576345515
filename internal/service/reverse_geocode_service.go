package service

import (
	"context"
	"fmt"

	"drone-delivery-api/internal/models"
)

// ReverseGeoCodeService contains the gazetteer logic for reverse geocoding
type ReverseGeoCodeService struct {
	repo ReverseGeoCodeRepository
}

// ReverseGeoCodeRepository interface for dependency injection
type ReverseGeoCodeRepository interface {
	FindNearestPlace(ctx context.Context, lat, lng float64) (*models.Place, error)
}

// NewReverseGeoCodeService creates a new reverse geo code service
func NewReverseGeoCodeService(repo ReverseGeoCodeRepository) *ReverseGeoCodeService {
	return &ReverseGeoCodeService{repo: repo}
}

// ReverseGeocode finds the place nearest to the coordinates using a spatial query
func (s *ReverseGeoCodeService) ReverseGeocode(ctx context.Context, lat, lng float64) (*models.Place, error) {
	if err := (models.Coordinates{Lat: lat, Lng: lng}).Validate(); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	place, err := s.repo.FindNearestPlace(ctx, lat, lng)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find nearest place: %w", err)
	}

	return place, nil
}
