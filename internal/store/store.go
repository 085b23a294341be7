// Package store holds the latest captured frame per monitor. It is the
// handoff point between the capture sessions and the processing loop.
package store

import (
	"sync"
	"time"

	"backglow/internal/rdisplay"
)

// FrameStore is a last-write-wins map of monitor index to its most
// recent frame. Frames may be observed by zero, one, or several ticks;
// there is no queueing and no backpressure in either direction. The
// lock is held only for the map insert or the map copy, never while a
// frame is being composited.
type FrameStore struct {
	mu     sync.Mutex
	frames map[int]*rdisplay.Frame
}

// New returns an empty store.
func New() *FrameStore {
	return &FrameStore{frames: make(map[int]*rdisplay.Frame)}
}

// Publish replaces the stored frame for a monitor. The frame must not
// be modified by the caller afterwards.
func (s *FrameStore) Publish(monitor int, frame *rdisplay.Frame) {
	s.mu.Lock()
	s.frames[monitor] = frame
	s.mu.Unlock()
}

// Snapshot returns an independent copy of the frame map so compositing
// can proceed without holding the store's lock. The frames themselves
// are shared; they are immutable once published.
func (s *FrameStore) Snapshot() map[int]*rdisplay.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int]*rdisplay.Frame, len(s.frames))
	for monitor, frame := range s.frames {
		out[monitor] = frame
	}
	return out
}

// LastCaptured reports when each monitor's stored frame was captured.
func (s *FrameStore) LastCaptured() map[int]time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int]time.Time, len(s.frames))
	for monitor, frame := range s.frames {
		out[monitor] = frame.CapturedAt
	}
	return out
}
