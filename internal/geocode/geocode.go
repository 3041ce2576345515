// Package geocode resolves addresses to coordinates and back. Providers sit
// behind Geocoder so the selection flow never learns which one is active.
package geocode

import (
	"context"
	"errors"
	"sync/atomic"

	"drone-delivery-api/internal/models"
)

// ErrNotFound is returned when a provider has no match for the input.
var ErrNotFound = errors.New("geocode: no match")

// Match is the first usable geocoding result.
type Match struct {
	FormattedAddress string             `json:"formatted_address"`
	Coordinates      models.Coordinates `json:"coordinates"`
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (Match, error)
	ReverseGeocode(ctx context.Context, coords models.Coordinates) (string, error)
}

// Readiness tells whether the geocoding collaborator finished loading. It is
// handed to every consumer instead of being checked through global state.
type Readiness struct {
	ready atomic.Bool
}

func NewReadiness(ready bool) *Readiness {
	r := &Readiness{}
	r.ready.Store(ready)
	return r
}

func (r *Readiness) Ready() bool {
	return r != nil && r.ready.Load()
}

func (r *Readiness) MarkReady() {
	r.ready.Store(true)
}

func (r *Readiness) MarkUnavailable() {
	r.ready.Store(false)
}
