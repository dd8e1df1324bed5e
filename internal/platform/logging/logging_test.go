package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewLogger(&buf, "json", slog.LevelWarn).Info("dropped")
	assert.Empty(t, buf.String(), "info should be filtered at warn level")

	NewLogger(&buf, "json", slog.LevelInfo).Info("kept", "k", "v")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "v", line["k"])

	buf.Reset()
	NewLogger(&buf, "text", slog.LevelInfo).Info("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}

func serveLogged(t *testing.T, status int, requestID string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(NewLogger(&buf, "json", slog.LevelDebug)))
	r.GET("/thing", func(c *gin.Context) {
		assert.NotEmpty(t, c.GetString(ContextRequestID))
		c.Status(status)
	})

	req := httptest.NewRequest(http.MethodGet, "/thing?x=1", nil)
	if requestID != "" {
		req.Header.Set(RequestIDHeader, requestID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &line))
	return w, line
}

func TestRequestLogger_GeneratesRequestID(t *testing.T) {
	t.Parallel()

	w, line := serveLogged(t, http.StatusOK, "")

	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err, "generated request id should be a UUID")
	assert.Equal(t, id, line["request_id"])
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "/thing", line["path"])
	assert.Equal(t, float64(http.StatusOK), line["status"])
	assert.NotContains(t, line, "query")
}

func TestRequestLogger_ReusesIncomingID(t *testing.T) {
	t.Parallel()

	w, line := serveLogged(t, http.StatusOK, "abc-123")

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", line["request_id"])
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		level  string
	}{
		{http.StatusNoContent, "INFO"},
		{http.StatusNotFound, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		_, line := serveLogged(t, tt.status, "")
		assert.Equal(t, tt.level, line["level"], "status %d", tt.status)
		if tt.status >= 400 {
			assert.Equal(t, "x=1", line["query"])
		}
	}
}
