package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"drone-delivery-api/internal/apperror"
	"drone-delivery-api/internal/models"
	"drone-delivery-api/internal/shipment"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ShipmentFinder interface for dependency injection
type ShipmentFinder interface {
	GetShipment(ctx context.Context, trackingID string) (*models.ShipmentRecord, error)
}

// TrackingHandler serves the track view and its static detail pages.
type TrackingHandler struct {
	shipments ShipmentFinder
}

func NewTrackingHandler(shipments ShipmentFinder) *TrackingHandler {
	return &TrackingHandler{shipments: shipments}
}

// Track handles GET /api/track requests
//
//	@Summary	Look up a shipment by tracking id
//	@Tags		tracking
//	@Produce	json
//	@Param		tracking_id	query		string	true	"tracking id, e.g. DRN-123456789"
//	@Success	200			{object}	models.ShipmentRecord
//	@Failure	404			{object}	map[string]any
//	@Failure	422			{object}	map[string]any
//	@Router		/api/track [get]
func (h *TrackingHandler) Track(c *gin.Context) {
	id := strings.TrimSpace(c.Query("tracking_id"))
	if id == "" {
		respondError(c, apperror.ErrTrackingIDRequired)
		return
	}

	record, err := h.shipments.GetShipment(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, shipment.ErrNotFound) {
			respondError(c, apperror.ErrShipmentNotFound)
			return
		}
		zerolog.Ctx(c.Request.Context()).Warn().Err(err).Str("tracking_id", id).Msg("shipment lookup failed")
		respondError(c, apperror.Wrap(apperror.ErrTrackingUnavailable, err))
		return
	}

	c.JSON(http.StatusOK, record)
}

// PackageDetails handles GET /api/views/package-details
func (h *TrackingHandler) PackageDetails(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tracking_number": "DRN-123456789",
		"weight":          "2.5 kg",
		"dimensions":      "30cm x 20cm x 15cm",
		"type":            "Standard Delivery",
	})
}

// LiveStatus handles GET /api/views/live-status
func (h *TrackingHandler) LiveStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":             "In Transit",
		"estimated_time":     "15 minutes",
		"current_speed":      "35 km/h",
		"distance_remaining": "8.5 km",
	})
}

// DeliveryLocation handles GET /api/views/delivery-location
func (h *TrackingHandler) DeliveryLocation(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"street": "123 Drone Delivery Street",
		"city":   "San Francisco",
		"state":  "California",
		"zip":    "94105",
	})
}
