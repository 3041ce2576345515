package handler

import (
	"net/http"

	"drone-delivery-api/internal/flow"
	"drone-delivery-api/internal/models"

	"github.com/gin-gonic/gin"
)

// LocationHandler drives the location selection dialog of a session.
type LocationHandler struct{}

func NewLocationHandler() *LocationHandler {
	return &LocationHandler{}
}

type openRequest struct {
	Target string `json:"target" binding:"required"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type pinRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

// currentLocationRequest relays the browser's geolocation outcome. Unsupported
// is set when the browser has no geolocation API; Error carries the
// GeolocationPositionError code otherwise.
type currentLocationRequest struct {
	Unsupported bool     `json:"unsupported"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Error       string   `json:"error"`
}

// Open handles POST /api/sessions/:id/location/open
//
//	@Summary	Open the map dialog for the pickup or delivery slot
//	@Tags		location
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"session id"
//	@Param		body	body		openRequest	true	"target"
//	@Success	200		{object}	SessionResponse
//	@Failure	422		{object}	SessionResponse
//	@Router		/api/sessions/{id}/location/open [post]
func (h *LocationHandler) Open(c *gin.Context) {
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "missing required field 'target'")
		return
	}

	sess := current(c)

	target, _ := models.ParseTarget(req.Target)
	if err := sess.Location.Open(target); err != nil {
		respondSessionError(c, sess, err)
		return
	}

	respondSession(c, http.StatusOK, sess, nil)
}

// Search handles POST /api/sessions/:id/location/search
//
//	@Summary	Geocode an address typed into the dialog
//	@Tags		location
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"session id"
//	@Param		body	body		searchRequest	true	"query"
//	@Success	200		{object}	SessionResponse
//	@Failure	404		{object}	SessionResponse
//	@Failure	409		{object}	SessionResponse
//	@Failure	503		{object}	SessionResponse
//	@Router		/api/sessions/{id}/location/search [post]
func (h *LocationHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	sess := current(c)

	if err := sess.Location.SearchByText(c.Request.Context(), req.Query); err != nil {
		respondSessionError(c, sess, err)
		return
	}

	respondSession(c, http.StatusOK, sess, nil)
}

// Pin handles POST /api/sessions/:id/location/pin
//
//	@Summary	Select coordinates on the map
//	@Tags		location
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"session id"
//	@Param		body	body		pinRequest	true	"coordinates"
//	@Success	200		{object}	SessionResponse
//	@Failure	404		{object}	SessionResponse
//	@Router		/api/sessions/{id}/location/pin [post]
func (h *LocationHandler) Pin(c *gin.Context) {
	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "missing required fields 'lat' and 'lng'")
		return
	}

	sess := current(c)

	coords := models.Coordinates{Lat: *req.Lat, Lng: *req.Lng}
	if err := sess.Location.SelectPin(c.Request.Context(), coords); err != nil {
		respondSessionError(c, sess, err)
		return
	}

	respondSession(c, http.StatusOK, sess, nil)
}

// Current handles POST /api/sessions/:id/location/current
//
//	@Summary	Use the device position reported by the browser
//	@Tags		location
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"session id"
//	@Param		body	body		currentLocationRequest	true	"position or error"
//	@Success	200		{object}	SessionResponse
//	@Failure	404		{object}	SessionResponse
//	@Failure	503		{object}	SessionResponse
//	@Router		/api/sessions/{id}/location/current [post]
func (h *LocationHandler) Current(c *gin.Context) {
	var req currentLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	sess := current(c)

	var geo flow.Geolocator
	if !req.Unsupported {
		pos := flow.ReportedPosition{Code: req.Error}
		if req.Lat != nil && req.Lng != nil {
			pos.Coordinates = &models.Coordinates{Lat: *req.Lat, Lng: *req.Lng}
		}
		geo = pos
	}

	if err := sess.Location.UseCurrentLocation(c.Request.Context(), geo); err != nil {
		respondSessionError(c, sess, err)
		return
	}

	respondSession(c, http.StatusOK, sess, nil)
}

// Confirm handles POST /api/sessions/:id/location/confirm
func (h *LocationHandler) Confirm(c *gin.Context) {
	sess := current(c)

	sel, err := sess.Location.Confirm()
	if err != nil {
		respondSessionError(c, sess, err)
		return
	}

	respondSession(c, http.StatusOK, sess, sel)
}

// Accept handles POST /api/sessions/:id/location/accept
func (h *LocationHandler) Accept(c *gin.Context) {
	sess := current(c)

	sel, err := sess.Location.AcceptConfirmation()
	if err != nil {
		respondSessionError(c, sess, err)
		return
	}

	respondSession(c, http.StatusOK, sess, sel)
}

// Cancel handles POST /api/sessions/:id/location/cancel
func (h *LocationHandler) Cancel(c *gin.Context) {
	sess := current(c)

	if err := sess.Location.CancelConfirmation(); err != nil {
		respondSessionError(c, sess, err)
		return
	}

	respondSession(c, http.StatusOK, sess, nil)
}

// Close handles POST /api/sessions/:id/location/close
func (h *LocationHandler) Close(c *gin.Context) {
	sess := current(c)
	sess.Location.Close()

	respondSession(c, http.StatusOK, sess, nil)
}
