package geocode

import (
	"context"
	"testing"

	"drone-delivery-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"googlemaps.github.io/maps"
)

type MockMapsClient struct {
	mock.Mock
}

func (m *MockMapsClient) Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]maps.GeocodingResult), args.Error(1)
}

func (m *MockMapsClient) ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]maps.GeocodingResult), args.Error(1)
}

func result(addr string, lat, lng float64) maps.GeocodingResult {
	var r maps.GeocodingResult
	r.FormattedAddress = addr
	r.Geometry.Location = maps.LatLng{Lat: lat, Lng: lng}
	return r
}

func TestGoogle_Geocode(t *testing.T) {
	tests := []struct {
		name        string
		results     []maps.GeocodingResult
		mockError   error
		expected    Match
		expectedErr error
	}{
		{
			name: "first result wins",
			results: []maps.GeocodingResult{
				result("1600 Amphitheatre Pkwy, Mountain View, CA", 37.422, -122.084),
				result("Amphitheatre Pkwy, Mountain View, CA", 37.42, -122.08),
			},
			expected: Match{
				FormattedAddress: "1600 Amphitheatre Pkwy, Mountain View, CA",
				Coordinates:      models.Coordinates{Lat: 37.422, Lng: -122.084},
			},
		},
		{
			name:        "no results",
			results:     []maps.GeocodingResult{},
			expectedErr: ErrNotFound,
		},
		{
			name:        "client error",
			results:     []maps.GeocodingResult{},
			mockError:   assert.AnError,
			expectedErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockMapsClient)
			client.On("Geocode", mock.Anything, &maps.GeocodingRequest{Address: "1600 Amphitheatre Parkway"}).
				Return(tt.results, tt.mockError)

			match, err := NewGoogle(client).Geocode(context.Background(), "1600 Amphitheatre Parkway")

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, match)
			}
			client.AssertExpectations(t)
		})
	}
}

func TestGoogle_ReverseGeocode(t *testing.T) {
	coords := models.Coordinates{Lat: 37.422, Lng: -122.084}
	req := &maps.GeocodingRequest{LatLng: &maps.LatLng{Lat: 37.422, Lng: -122.084}}

	t.Run("formatted address", func(t *testing.T) {
		client := new(MockMapsClient)
		client.On("ReverseGeocode", mock.Anything, req).
			Return([]maps.GeocodingResult{result("1600 Amphitheatre Pkwy, Mountain View, CA", 37.422, -122.084)}, nil)

		addr, err := NewGoogle(client).ReverseGeocode(context.Background(), coords)
		assert.NoError(t, err)
		assert.Equal(t, "1600 Amphitheatre Pkwy, Mountain View, CA", addr)
	})

	t.Run("unresolvable", func(t *testing.T) {
		client := new(MockMapsClient)
		client.On("ReverseGeocode", mock.Anything, req).Return([]maps.GeocodingResult{}, nil)

		_, err := NewGoogle(client).ReverseGeocode(context.Background(), coords)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestReadiness(t *testing.T) {
	var nilReadiness *Readiness
	assert.False(t, nilReadiness.Ready())

	r := NewReadiness(false)
	assert.False(t, r.Ready())

	r.MarkReady()
	assert.True(t, r.Ready())

	r.MarkUnavailable()
	assert.False(t, r.Ready())
}
