package rdisplay

import (
	"errors"
	"image"
	"time"
)

// ErrSourceClosed is returned by Next after the source has been closed.
var ErrSourceClosed = errors.New("frame source closed")

// Screen describes one physical display as reported by the OS. The
// geometry is read once at startup and treated as immutable afterwards.
type Screen struct {
	Index  int
	Bounds image.Rectangle
}

// Frame is one captured image for a single screen: a tightly packed
// RGBA buffer, 4 bytes per pixel, no row padding. A frame is owned by
// its capture session until published and must not be modified after
// that.
type Frame struct {
	Pix        []byte
	Width      int
	Height     int
	CapturedAt time.Time
}

// FrameSource delivers frames for one screen. Next blocks until the OS
// produces the next frame; it returns ErrSourceClosed after Close and
// a non-nil error when the capture facility fails permanently.
type FrameSource interface {
	Next() (*Frame, error)
	Close() error
}

// Service enumerates screens and opens frame sources for them.
type Service interface {
	Screens() ([]Screen, error)
	CreateFrameSource(screen Screen) (FrameSource, error)
}
