package main

import (
	"strings"
	"testing"

	"drone-delivery-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	t.Run("columns in any order", func(t *testing.T) {
		in := "lat,lng,name,street,city,region,postcode\n" +
			"37.7955,-122.3937,Ferry Building,,San Francisco,CA,94111\n" +
			"37.422, -122.084,,1600 Amphitheatre Pkwy,Mountain View,CA,94043\n"

		places, err := parseCSV(strings.NewReader(in))
		require.NoError(t, err)
		assert.Equal(t, []models.Place{
			{Name: "Ferry Building", City: "San Francisco", Region: "CA", Postcode: "94111", Latitude: 37.7955, Longitude: -122.3937},
			{Street: "1600 Amphitheatre Pkwy", City: "Mountain View", Region: "CA", Postcode: "94043", Latitude: 37.422, Longitude: -122.084},
		}, places)
	})

	tests := []struct {
		name    string
		in      string
		wantErr string
	}{
		{"missing column", "name,street,city,region,postcode,lat\n", `missing column "lng"`},
		{"bad latitude", "name,street,city,region,postcode,lat,lng\nx,,,,,north,1\n", "line 2: invalid latitude"},
		{"out of range", "name,street,city,region,postcode,lat,lng\nx,,,,,10,200\n", "lng must be between -180 and 180"},
		{"empty file", "", "failed to read header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCSV(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
