package api

import (
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backglow/internal/pipeline"
	"backglow/internal/rdisplay"
	"backglow/internal/store"
)

func testHandler(gate *pipeline.Gate, frames *store.FrameStore) http.Handler {
	screens := []rdisplay.Screen{
		{Index: 0, Bounds: image.Rect(0, 0, 1920, 1080)},
		{Index: 1, Bounds: image.Rect(1920, 0, 3840, 1080)},
	}
	return MakeHandler(gate, frames, screens, zap.NewNop())
}

func TestActivateDeactivate(t *testing.T) {
	gate := pipeline.NewGate(false)
	handler := testHandler(gate, store.New())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/activate", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, gate.Active())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/deactivate", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, gate.Active())
}

func TestActivationRequiresPost(t *testing.T) {
	gate := pipeline.NewGate(false)
	handler := testHandler(gate, store.New())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/activate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.False(t, gate.Active())
}

func TestStatus(t *testing.T) {
	gate := pipeline.NewGate(true)
	frames := store.New()
	frames.Publish(1, &rdisplay.Frame{
		Pix: make([]byte, 4), Width: 1, Height: 1,
		CapturedAt: time.Now().Add(-time.Second),
	})
	handler := testHandler(gate, frames)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var status statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.Active)
	require.Len(t, status.Monitors, 2)

	assert.False(t, status.Monitors[0].HasFrame)
	assert.True(t, status.Monitors[1].HasFrame)
	assert.GreaterOrEqual(t, status.Monitors[1].FrameAgeMs, int64(1000))
	assert.Equal(t, 1920, status.Monitors[1].X)
	assert.Equal(t, 1920, status.Monitors[1].Width)
}
