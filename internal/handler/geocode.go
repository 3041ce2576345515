package handler

import (
	"context"
	"errors"
	"net/http"

	"drone-delivery-api/internal/apperror"
	"drone-delivery-api/internal/geocode"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Readiness reports whether the geocoding collaborator is loaded
type Readiness interface {
	Ready() bool
}

// GeoCodeHandler handles one-off geocoding requests outside a form session
type GeoCodeHandler struct {
	service GeoCodeService
	ready   Readiness
}

// GeoCodeService interface for dependency injection
type GeoCodeService interface {
	Geocode(ctx context.Context, address string) (geocode.Match, error)
}

// NewGeoCodeHandler creates a new geocode handler
func NewGeoCodeHandler(svc GeoCodeService, ready Readiness) *GeoCodeHandler {
	return &GeoCodeHandler{service: svc, ready: ready}
}

// GeoCode handles GET /geocode requests
//
//	@Summary	Resolve an address to coordinates
//	@Tags		geocoding
//	@Produce	json
//	@Param		q	query		string	true	"address"
//	@Success	200	{object}	geocode.Match
//	@Failure	400	{object}	map[string]string
//	@Failure	404	{object}	map[string]any
//	@Failure	503	{object}	map[string]any
//	@Router		/geocode [get]
func (h *GeoCodeHandler) GeoCode(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	if !h.ready.Ready() {
		respondError(c, apperror.ErrMapsLoading)
		return
	}

	match, err := h.service.Geocode(c.Request.Context(), query)
	if err != nil {
		if !errors.Is(err, geocode.ErrNotFound) {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Str("query", query).Msg("geocode failed")
		}
		respondError(c, apperror.Wrap(apperror.ErrLocationNotFound, err))
		return
	}

	c.JSON(http.StatusOK, match)
}
