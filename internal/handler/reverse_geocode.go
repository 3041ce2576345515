package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"drone-delivery-api/internal/apperror"
	"drone-delivery-api/internal/geocode"
	"drone-delivery-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ReverseGeocodeHandler handles reverse geocoding requests
type ReverseGeocodeHandler struct {
	service GeoCodingService
	ready   Readiness
}

// GeoCodingService interface for dependency injection
type GeoCodingService interface {
	ReverseGeocode(ctx context.Context, coords models.Coordinates) (string, error)
}

// NewReverseGeocodeHandler creates a new reverse geocode handler
func NewReverseGeocodeHandler(svc GeoCodingService, ready Readiness) *ReverseGeocodeHandler {
	return &ReverseGeocodeHandler{service: svc, ready: ready}
}

type reverseGeocodeResponse struct {
	FormattedAddress string             `json:"formatted_address"`
	Coordinates      models.Coordinates `json:"coordinates"`
}

// ReverseGeocode handles GET /reverse-geocode requests
//
//	@Summary	Resolve coordinates to an address
//	@Tags		geocoding
//	@Produce	json
//	@Param		lat	query		number	true	"latitude"
//	@Param		lng	query		number	true	"longitude"
//	@Success	200	{object}	reverseGeocodeResponse
//	@Failure	400	{object}	map[string]string
//	@Failure	404	{object}	map[string]any
//	@Router		/reverse-geocode [get]
func (h *ReverseGeocodeHandler) ReverseGeocode(c *gin.Context) {
	latStr := c.Query("lat")
	lngStr := c.Query("lng")

	if latStr == "" || lngStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lng'"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	coords := models.Coordinates{Lat: lat, Lng: lng}
	if err := coords.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.ready.Ready() {
		respondError(c, apperror.ErrMapsLoading)
		return
	}

	addr, err := h.service.ReverseGeocode(c.Request.Context(), coords)
	if err != nil {
		if !errors.Is(err, geocode.ErrNotFound) {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Str("coordinates", coords.Label()).Msg("reverse geocode failed")
		}
		respondError(c, apperror.Wrap(apperror.ErrReverseGeocodeFailed, err))
		return
	}

	c.JSON(http.StatusOK, reverseGeocodeResponse{FormattedAddress: addr, Coordinates: coords})
}
