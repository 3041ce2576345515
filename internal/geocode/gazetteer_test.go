package geocode

import (
	"context"
	"fmt"
	"testing"

	"drone-delivery-api/internal/models"
	"drone-delivery-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPlaceService struct {
	mock.Mock
}

func (m *MockPlaceService) Geocode(ctx context.Context, address string) ([]models.Place, error) {
	args := m.Called(ctx, address)
	return args.Get(0).([]models.Place), args.Error(1)
}

func (m *MockPlaceService) ReverseGeocode(ctx context.Context, lat, lng float64) (*models.Place, error) {
	args := m.Called(ctx, lat, lng)
	place, _ := args.Get(0).(*models.Place)
	return place, args.Error(1)
}

func TestGazetteer_Geocode(t *testing.T) {
	svc := new(MockPlaceService)
	g := NewGazetteer(svc, svc)

	svc.On("Geocode", mock.Anything, "1600 Amphitheatre Parkway").Return([]models.Place{
		{ID: 1, Street: "1600 Amphitheatre Pkwy", City: "Mountain View", Region: "CA", Latitude: 37.422, Longitude: -122.084},
	}, nil)
	svc.On("Geocode", mock.Anything, "nowhere").Return([]models.Place{}, nil)
	svc.On("Geocode", mock.Anything, "broken").Return([]models.Place(nil), assert.AnError)

	match, err := g.Geocode(context.Background(), "1600 Amphitheatre Parkway")
	assert.NoError(t, err)
	assert.Equal(t, Match{
		FormattedAddress: "1600 Amphitheatre Pkwy, Mountain View, CA",
		Coordinates:      models.Coordinates{Lat: 37.422, Lng: -122.084},
	}, match)

	_, err = g.Geocode(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = g.Geocode(context.Background(), "broken")
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestGazetteer_ReverseGeocode(t *testing.T) {
	svc := new(MockPlaceService)
	g := NewGazetteer(svc, svc)

	svc.On("ReverseGeocode", mock.Anything, 37.7955, -122.3937).
		Return(&models.Place{Name: "Ferry Building", City: "San Francisco", Region: "CA", Postcode: "94111"}, nil)
	svc.On("ReverseGeocode", mock.Anything, 0.0, 0.0).
		Return(nil, fmt.Errorf("service: failed to find nearest place: %w", repository.ErrPlaceNotFound))

	addr, err := g.ReverseGeocode(context.Background(), models.Coordinates{Lat: 37.7955, Lng: -122.3937})
	assert.NoError(t, err)
	assert.Equal(t, "Ferry Building, San Francisco, CA 94111", addr)

	_, err = g.ReverseGeocode(context.Background(), models.Coordinates{})
	assert.ErrorIs(t, err, ErrNotFound)
}
