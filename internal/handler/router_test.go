package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"drone-delivery-api/internal/apperror"
	"drone-delivery-api/internal/geocode"
	"drone-delivery-api/internal/models"
	"drone-delivery-api/internal/session"
	"drone-delivery-api/internal/shipment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryShipments is an in-memory stand-in for the hosted shipments table.
type memoryShipments struct {
	mu      sync.Mutex
	rows    map[string]models.ShipmentRecord
	failing bool
}

func (s *memoryShipments) InsertShipment(_ context.Context, r models.ShipmentRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failing {
		return "", assert.AnError
	}
	if s.rows == nil {
		s.rows = map[string]models.ShipmentRecord{}
	}
	s.rows[r.TrackingID] = r
	return r.TrackingID, nil
}

func (s *memoryShipments) GetShipment(_ context.Context, id string) (*models.ShipmentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rows[id]
	if !ok {
		return nil, shipment.ErrNotFound
	}
	return &r, nil
}

type testAPI struct {
	router    *gin.Engine
	geocoder  *MockGeocoder
	shipments *memoryShipments
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := &testAPI{geocoder: new(MockGeocoder), shipments: &memoryShipments{}}
	ready := geocode.NewReadiness(true)
	store := session.NewStore(session.Deps{
		Geocoder:  api.geocoder,
		Readiness: ready,
		Shipments: api.shipments,
	}, 16, time.Minute)

	api.router = NewRouter(Deps{
		Sessions:  store,
		Geocoder:  api.geocoder,
		Readiness: ready,
		Shipments: api.shipments,
	})
	return api
}

func (a *testAPI) do(t *testing.T, method, path string, body any) (int, SessionResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var resp SessionResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w.Code, resp
}

// selectLocation runs the whole dialog for target through the API.
func (a *testAPI) selectLocation(t *testing.T, base, target, query string, match geocode.Match) {
	t.Helper()

	a.geocoder.On("Geocode", mock.Anything, query).Return(match, nil).Once()

	status, _ := a.do(t, http.MethodPost, base+"/location/open", gin.H{"target": target})
	require.Equal(t, http.StatusOK, status)
	status, resp := a.do(t, http.MethodPost, base+"/location/search", gin.H{"query": query})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "resolved", resp.Session.Location.State.String())
	status, _ = a.do(t, http.MethodPost, base+"/location/confirm", nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = a.do(t, http.MethodPost, base+"/location/accept", nil)
	require.Equal(t, http.StatusOK, status)
}

func TestRouter_ShipmentJourney(t *testing.T) {
	a := newTestAPI(t)

	status, created := a.do(t, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, status)
	base := "/api/sessions/" + created.Session.ID

	a.selectLocation(t, base, "pickup", "1600 Amphitheatre Parkway", amphitheatre)
	a.selectLocation(t, base, "delivery", "Ferry Building", geocode.Match{
		FormattedAddress: "Ferry Building, San Francisco, CA 94111",
		Coordinates:      models.Coordinates{Lat: 37.7955, Lng: -122.3937},
	})

	status, resp := a.do(t, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "validation", resp.Kind)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, "Please describe your package", resp.Notifications[0].Description)

	status, resp = a.do(t, http.MethodPatch, base+"/draft", gin.H{
		"package_description": "Books",
		"weight":              "2.5",
		"date":                "2026-10-20",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2.5", resp.Session.Draft.Weight)

	status, resp = a.do(t, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, shipment.PhaseConfirming, resp.Session.Phase)

	status, resp = a.do(t, http.MethodPost, base+"/confirm-shipment", nil)
	require.Equal(t, http.StatusCreated, status)
	data := resp.Data.(map[string]interface{})
	trackingID := data["tracking_id"].(string)
	assert.True(t, shipment.ValidTrackingID(trackingID))
	assert.Equal(t, "/track", data["redirect"])
	assert.Equal(t, shipment.Draft{}, resp.Session.Draft)

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/track?tracking_id="+trackingID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var record models.ShipmentRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, models.ShipmentRecord{
		TrackingID:        trackingID,
		Status:            "processing",
		EstimatedDelivery: "2026-10-20",
		CurrentLocation:   "1600 Amphitheatre Pkwy, Mountain View, CA",
		Destination:       "Ferry Building, San Francisco, CA 94111",
	}, record)

	a.geocoder.AssertExpectations(t)
}

func TestRouter_ConfirmShipmentFailureKeepsDraft(t *testing.T) {
	a := newTestAPI(t)
	a.shipments.failing = true

	_, created := a.do(t, http.MethodPost, "/api/sessions", nil)
	base := "/api/sessions/" + created.Session.ID

	a.selectLocation(t, base, "pickup", "1600 Amphitheatre Parkway", amphitheatre)
	a.selectLocation(t, base, "delivery", "1600 Amphitheatre Parkway", amphitheatre)
	a.do(t, http.MethodPatch, base+"/draft", gin.H{"package_description": "Books", "weight": "1", "date": "2026-10-20"})
	_, submitted := a.do(t, http.MethodPost, base+"/submit", nil)

	status, resp := a.do(t, http.MethodPost, base+"/confirm-shipment", nil)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, apperror.ErrShipmentFailed.Message, resp.Error)
	assert.Equal(t, submitted.Session.Draft, resp.Session.Draft)
}

func TestRouter_AcceptLocationWhileSubmitted(t *testing.T) {
	a := newTestAPI(t)
	_, created := a.do(t, http.MethodPost, "/api/sessions", nil)
	base := "/api/sessions/" + created.Session.ID

	a.selectLocation(t, base, "pickup", "1600 Amphitheatre Parkway", amphitheatre)
	a.selectLocation(t, base, "delivery", "1600 Amphitheatre Parkway", amphitheatre)
	a.do(t, http.MethodPatch, base+"/draft", gin.H{"package_description": "Books", "weight": "1", "date": "2026-10-20"})
	status, submitted := a.do(t, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, status)

	a.geocoder.On("Geocode", mock.Anything, "Ferry Building").Return(geocode.Match{
		FormattedAddress: "Ferry Building, San Francisco, CA 94111",
		Coordinates:      models.Coordinates{Lat: 37.7955, Lng: -122.3937},
	}, nil).Once()
	a.do(t, http.MethodPost, base+"/location/open", gin.H{"target": "pickup"})
	a.do(t, http.MethodPost, base+"/location/search", gin.H{"query": "Ferry Building"})
	status, _ = a.do(t, http.MethodPost, base+"/location/confirm", nil)
	require.Equal(t, http.StatusOK, status)

	status, resp := a.do(t, http.MethodPost, base+"/location/accept", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, apperror.ErrDraftLocked.Message, resp.Error)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, apperror.ErrDraftLocked.Message, resp.Notifications[0].Description)
	assert.Equal(t, submitted.Session.Draft, resp.Session.Draft)
	assert.Equal(t, "confirming", resp.Session.Location.State.String())
	assert.Equal(t, "Ferry Building, San Francisco, CA 94111", resp.Session.Location.Address)
}

func TestRouter_LocationErrors(t *testing.T) {
	a := newTestAPI(t)
	_, created := a.do(t, http.MethodPost, "/api/sessions", nil)
	base := "/api/sessions/" + created.Session.ID

	status, resp := a.do(t, http.MethodPost, base+"/location/confirm", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, apperror.ErrDialogClosed.Message, resp.Error)

	status, _ = a.do(t, http.MethodPost, base+"/location/open", gin.H{"target": "moon"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = a.do(t, http.MethodPost, base+"/location/open", gin.H{"target": "pickup"})
	require.Equal(t, http.StatusOK, status)

	status, resp = a.do(t, http.MethodPost, base+"/location/confirm", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, apperror.ErrSelectLocationFirst.Message, resp.Notifications[0].Description)

	status, resp = a.do(t, http.MethodPost, base+"/location/current", gin.H{"unsupported": true})
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, apperror.ErrGeolocationUnsupported.Message, resp.Error)

	status, resp = a.do(t, http.MethodPost, base+"/location/current", gin.H{"error": "PERMISSION_DENIED"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apperror.ErrLocationUnavailable.Message, resp.Error)
	assert.Equal(t, models.TargetPickup, resp.Session.Location.Target)

	pin := models.Coordinates{Lat: 37.7955, Lng: -122.3937}
	a.geocoder.On("ReverseGeocode", mock.Anything, pin).Return("", assert.AnError).Once()
	status, resp = a.do(t, http.MethodPost, base+"/location/pin", gin.H{"lat": pin.Lat, "lng": pin.Lng})
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, resp.Session.Location.Coordinates)
	assert.Equal(t, pin, *resp.Session.Location.Coordinates)

	status, _ = a.do(t, http.MethodPost, base+"/location/pin", gin.H{"lat": 1})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = a.do(t, http.MethodPost, base+"/location/close", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestRouter_Sessions(t *testing.T) {
	a := newTestAPI(t)

	status, _ := a.do(t, http.MethodGet, "/api/sessions/unknown", nil)
	assert.Equal(t, http.StatusNotFound, status)

	_, created := a.do(t, http.MethodPost, "/api/sessions", nil)
	base := "/api/sessions/" + created.Session.ID

	status, _ = a.do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = a.do(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = a.do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_Track(t *testing.T) {
	a := newTestAPI(t)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedError  string
	}{
		{"blank tracking id", "tracking_id=%20", http.StatusUnprocessableEntity, "Please enter a tracking ID"},
		{"unknown tracking id", "tracking_id=DRN-000000000", http.StatusNotFound, apperror.ErrShipmentNotFound.Message},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			a.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/track?"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedError, body["error"])
		})
	}
}

func TestRouter_StaticViews(t *testing.T) {
	a := newTestAPI(t)

	for path, key := range map[string]string{
		"/api/views/package-details":   "tracking_number",
		"/api/views/live-status":       "status",
		"/api/views/delivery-location": "street",
	} {
		w := httptest.NewRecorder()
		a.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), key, path)
	}
}
