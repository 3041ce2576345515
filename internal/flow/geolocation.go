package flow

import (
	"context"
	"errors"

	"drone-delivery-api/internal/models"
)

var (
	ErrPermissionDenied    = errors.New("flow: geolocation permission denied")
	ErrPositionUnavailable = errors.New("flow: position unavailable")
	ErrTimeout             = errors.New("flow: geolocation timed out")
)

// Geolocator looks up the device position. A nil Geolocator means the device
// has no geolocation capability.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (models.Coordinates, error)
}

// ReportedPosition is the outcome of a browser geolocation request relayed to
// the API: either a position or one of the W3C error codes.
type ReportedPosition struct {
	Coordinates *models.Coordinates
	Code        string
}

func (p ReportedPosition) CurrentPosition(ctx context.Context) (models.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return models.Coordinates{}, err
	}

	switch p.Code {
	case "":
	case "denied", "PERMISSION_DENIED":
		return models.Coordinates{}, ErrPermissionDenied
	case "timeout", "TIMEOUT":
		return models.Coordinates{}, ErrTimeout
	default:
		return models.Coordinates{}, ErrPositionUnavailable
	}

	if p.Coordinates == nil {
		return models.Coordinates{}, ErrPositionUnavailable
	}
	return *p.Coordinates, nil
}
