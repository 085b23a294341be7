// Package api is the HTTP control surface the tray UI talks to:
// activation toggling and a status snapshot.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"backglow/internal/pipeline"
	"backglow/internal/rdisplay"
	"backglow/internal/store"
)

// MakeHandler returns the HTTP handler for the control endpoints.
func MakeHandler(gate *pipeline.Gate, frames *store.FrameStore, screens []rdisplay.Screen, logger *zap.Logger) http.Handler {
	handleError := func(w http.ResponseWriter, err error) {
		logger.Error("request failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}

	setActive := func(active bool) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			gate.Set(active)
			logger.Info("activation changed", zap.Bool("active", active))
			w.WriteHeader(http.StatusNoContent)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/activate", setActive(true))
	mux.HandleFunc("/deactivate", setActive(false))

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		captured := frames.LastCaptured()
		monitors := make([]monitorPayload, len(screens))
		for i, s := range screens {
			monitors[i] = monitorPayload{
				Index:  s.Index,
				X:      s.Bounds.Min.X,
				Y:      s.Bounds.Min.Y,
				Width:  s.Bounds.Dx(),
				Height: s.Bounds.Dy(),
			}
			if at, ok := captured[s.Index]; ok {
				monitors[i].HasFrame = true
				monitors[i].FrameAgeMs = time.Since(at).Milliseconds()
			}
		}

		payload, err := json.Marshal(statusResponse{
			Active:   gate.Active(),
			Monitors: monitors,
		})
		if err != nil {
			handleError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
	})
	return mux
}
