package handler

import (
	"net/http"

	"drone-delivery-api/internal/models"
	"drone-delivery-api/internal/session"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// SessionStore interface for dependency injection
type SessionStore interface {
	Create() *session.Session
	Get(id string) (*session.Session, bool)
	Delete(id string) bool
}

// SessionHandler serves the shipment form: session lifecycle, draft fields,
// submission and confirmation.
type SessionHandler struct {
	sessions SessionStore
}

func NewSessionHandler(sessions SessionStore) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Load resolves :id into the session for the handlers further down the chain.
func (h *SessionHandler) Load(c *gin.Context) {
	sess, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
		return
	}
	c.Set(sessionKey, sess)
	c.Next()
}

func current(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

// Create handles POST /api/sessions
//
//	@Summary	Start a shipment form session
//	@Tags		sessions
//	@Produce	json
//	@Success	201	{object}	SessionResponse
//	@Router		/api/sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	respondSession(c, http.StatusCreated, h.sessions.Create(), nil)
}

// Get handles GET /api/sessions/:id
//
//	@Summary	Current form state
//	@Tags		sessions
//	@Produce	json
//	@Param		id	path		string	true	"session id"
//	@Success	200	{object}	SessionResponse
//	@Failure	404	{object}	map[string]string
//	@Router		/api/sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	respondSession(c, http.StatusOK, current(c), nil)
}

// Delete handles DELETE /api/sessions/:id. Leaving the form discards the draft.
func (h *SessionHandler) Delete(c *gin.Context) {
	if !h.sessions.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
		return
	}
	c.Status(http.StatusNoContent)
}

type draftRequest struct {
	PickupAddress      *string `json:"pickup_address"`
	DeliveryAddress    *string `json:"delivery_address"`
	PackageDescription *string `json:"package_description"`
	Weight             *string `json:"weight"`
	Date               *string `json:"date"`
}

// UpdateDraft handles PATCH /api/sessions/:id/draft. Only the fields present in
// the body change.
//
//	@Summary	Edit shipment draft fields
//	@Tags		shipment
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"session id"
//	@Param		body	body		draftRequest	true	"fields to change"
//	@Success	200		{object}	SessionResponse
//	@Failure	422		{object}	SessionResponse
//	@Router		/api/sessions/{id}/draft [patch]
func (h *SessionHandler) UpdateDraft(c *gin.Context) {
	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	sess := current(c)
	form := sess.Form

	if err := form.Editable(); err != nil {
		respondSessionError(c, sess, err)
		return
	}

	steps := []func() error{}
	if req.PickupAddress != nil {
		steps = append(steps, func() error { return form.SetAddress(models.TargetPickup, *req.PickupAddress) })
	}
	if req.DeliveryAddress != nil {
		steps = append(steps, func() error { return form.SetAddress(models.TargetDelivery, *req.DeliveryAddress) })
	}
	if req.PackageDescription != nil {
		steps = append(steps, func() error { return form.SetPackageDescription(*req.PackageDescription) })
	}
	if req.Weight != nil {
		steps = append(steps, func() error { return form.SetWeight(*req.Weight) })
	}
	if req.Date != nil {
		steps = append(steps, func() error { return form.SetDate(*req.Date) })
	}

	for _, step := range steps {
		if err := step(); err != nil {
			respondSessionError(c, sess, err)
			return
		}
	}

	respondSession(c, http.StatusOK, sess, nil)
}

// Submit handles POST /api/sessions/:id/submit
//
//	@Summary	Validate the draft and open the confirmation view
//	@Tags		shipment
//	@Produce	json
//	@Param		id	path		string	true	"session id"
//	@Success	200	{object}	SessionResponse
//	@Failure	422	{object}	SessionResponse
//	@Router		/api/sessions/{id}/submit [post]
func (h *SessionHandler) Submit(c *gin.Context) {
	sess := current(c)

	draft, err := sess.Form.Submit()
	if err != nil {
		respondSessionError(c, sess, err)
		return
	}

	respondSession(c, http.StatusOK, sess, draft)
}

// CancelSubmit handles POST /api/sessions/:id/submit/cancel
func (h *SessionHandler) CancelSubmit(c *gin.Context) {
	sess := current(c)

	if err := sess.Form.CancelSubmit(); err != nil {
		respondSessionError(c, sess, err)
		return
	}

	respondSession(c, http.StatusOK, sess, nil)
}

// ConfirmShipment handles POST /api/sessions/:id/confirm-shipment
//
//	@Summary	Persist the submitted shipment
//	@Tags		shipment
//	@Produce	json
//	@Param		id	path		string	true	"session id"
//	@Success	201	{object}	SessionResponse
//	@Failure	422	{object}	SessionResponse
//	@Failure	502	{object}	SessionResponse
//	@Router		/api/sessions/{id}/confirm-shipment [post]
func (h *SessionHandler) ConfirmShipment(c *gin.Context) {
	sess := current(c)

	conf, err := sess.Form.ConfirmShipment(c.Request.Context())
	if err != nil {
		respondSessionError(c, sess, err)
		return
	}

	respondSession(c, http.StatusCreated, sess, conf)
}
