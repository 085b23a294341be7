// Package capture runs one frame-producing session per monitor.
package capture

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backglow/internal/rdisplay"
	"backglow/internal/store"
)

// Session continuously pulls frames from one monitor's source and
// publishes the newest one into the store. A session that hits a fatal
// capture error terminates alone; the rest of the pipeline keeps
// running with that monitor's region stale or zero-filled.
type Session struct {
	ID string

	screen    rdisplay.Screen
	source    rdisplay.FrameSource
	frames    *store.FrameStore
	targetFps int
	logger    *zap.Logger
	done      chan struct{}
}

// NewSession prepares a session; Start launches it. targetFps == 0
// disables rate limiting.
func NewSession(screen rdisplay.Screen, source rdisplay.FrameSource, frames *store.FrameStore, targetFps int, logger *zap.Logger) *Session {
	id := uuid.New().String()
	return &Session{
		ID:        id,
		screen:    screen,
		source:    source,
		frames:    frames,
		targetFps: targetFps,
		logger:    logger.With(zap.String("session", id), zap.Int("monitor", screen.Index)),
		done:      make(chan struct{}),
	}
}

// Start launches the capture loop on its own goroutine.
func (s *Session) Start() {
	go s.run()
}

// Stop closes the underlying source; the loop exits on its next
// receive. A frame already captured is still published.
func (s *Session) Stop() {
	s.source.Close()
}

// Done is closed once the session's loop has terminated.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) run() {
	defer close(s.done)

	var interval time.Duration
	if s.targetFps > 0 {
		interval = time.Second / time.Duration(s.targetFps)
	}
	s.logger.Info("capture session started",
		zap.Stringer("bounds", s.screen.Bounds),
		zap.Int("target_fps", s.targetFps))

	var lastPublish time.Time
	for {
		frame, err := s.source.Next()
		if err != nil {
			if errors.Is(err, rdisplay.ErrSourceClosed) {
				s.logger.Info("capture session stopped")
				return
			}
			s.logger.Error("capture failed, terminating session", zap.Error(err))
			return
		}
		s.frames.Publish(s.screen.Index, frame)

		if interval > 0 && !lastPublish.IsZero() {
			if rest := interval - time.Since(lastPublish); rest > 0 {
				time.Sleep(rest)
			}
		}
		lastPublish = time.Now()
	}
}

// StartAll opens a source and starts a session for every screen. A
// screen whose source cannot be opened is logged and skipped; the
// remaining screens still capture.
func StartAll(display rdisplay.Service, screens []rdisplay.Screen, frames *store.FrameStore, targetFps int, logger *zap.Logger) []*Session {
	sessions := make([]*Session, 0, len(screens))
	for _, screen := range screens {
		source, err := display.CreateFrameSource(screen)
		if err != nil {
			logger.Error("can't open frame source", zap.Int("monitor", screen.Index), zap.Error(err))
			continue
		}
		session := NewSession(screen, source, frames, targetFps, logger)
		session.Start()
		sessions = append(sessions, session)
	}
	return sessions
}
