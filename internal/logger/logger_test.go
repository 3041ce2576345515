package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	original := log.Logger
	defer func() { log.Logger = original }()

	t.Run("production", func(t *testing.T) {
		Init("production", "warn")
		assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		Init("development", "loud")
		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})
}

func newTestRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log.Logger = zerolog.New(buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	r := gin.New()
	r.Use(RequestID(), RequestLogger())
	r.GET("/ping", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Debug().Msg("inside handler")
		c.Status(http.StatusTeapot)
	})
	return r
}

func TestRequestID(t *testing.T) {
	original := log.Logger
	defer func() { log.Logger = original }()

	t.Run("generates id when missing", func(t *testing.T) {
		var buf bytes.Buffer
		r := newTestRouter(&buf)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
	})

	t.Run("preserves existing id", func(t *testing.T) {
		var buf bytes.Buffer
		r := newTestRouter(&buf)

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(HeaderRequestID, "req-abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-abc-123", w.Header().Get(HeaderRequestID))
		assert.Contains(t, buf.String(), `"request_id":"req-abc-123"`)
	})
}

func TestRequestLogger(t *testing.T) {
	original := log.Logger
	defer func() { log.Logger = original }()

	var buf bytes.Buffer
	r := newTestRouter(&buf)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &entry))
	assert.Equal(t, "incoming request", entry["message"])
	assert.Equal(t, "/ping", entry["path"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
}
