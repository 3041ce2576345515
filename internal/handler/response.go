package handler

import (
	"net/http"

	"drone-delivery-api/internal/apperror"
	"drone-delivery-api/internal/flow"
	"drone-delivery-api/internal/session"
	"drone-delivery-api/internal/shipment"

	"github.com/gin-gonic/gin"
)

// SessionView is the form state sent back after every session call.
type SessionView struct {
	ID       string         `json:"id"`
	Phase    shipment.Phase `json:"phase"`
	Draft    shipment.Draft `json:"draft"`
	Location flow.Snapshot  `json:"location"`
}

// SessionResponse wraps a session view with the notifications raised while
// handling the request.
type SessionResponse struct {
	Session       SessionView             `json:"session"`
	Data          any                     `json:"data,omitempty"`
	Error         string                  `json:"error,omitempty"`
	Kind          string                  `json:"kind,omitempty"`
	Notifications []apperror.Notification `json:"notifications"`
}

func viewOf(sess *session.Session) SessionView {
	return SessionView{
		ID:       sess.ID,
		Phase:    sess.Form.Phase(),
		Draft:    sess.Form.Draft(),
		Location: sess.Location.Snapshot(),
	}
}

func respondSession(c *gin.Context, status int, sess *session.Session, data any) {
	c.JSON(status, SessionResponse{
		Session:       viewOf(sess),
		Data:          data,
		Notifications: sess.Drain(),
	})
}

func respondSessionError(c *gin.Context, sess *session.Session, err error) {
	kind := apperror.KindOf(err)
	c.JSON(kind.HTTPStatus(), SessionResponse{
		Session:       viewOf(sess),
		Error:         apperror.Message(err),
		Kind:          kind.String(),
		Notifications: sess.Drain(),
	})
}

// respondError answers calls that have no session with the error and a
// matching notification.
func respondError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	c.JSON(kind.HTTPStatus(), gin.H{
		"error":         apperror.Message(err),
		"kind":          kind.String(),
		"notifications": []apperror.Notification{apperror.NotificationFor(err)},
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
