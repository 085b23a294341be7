package rdisplay

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/kbinani/screenshot"
)

// ScreenshotProvider implements the rdisplay.Service interface on top
// of the portable screenshot library.
type ScreenshotProvider struct{}

// screenshotSource grabs frames for a single screen with CaptureRect.
type screenshotSource struct {
	screen    Screen
	closeOnce sync.Once
	closed    chan struct{}
}

// NewProvider returns the OS screenshot-based display service.
func NewProvider() (Service, error) {
	return &ScreenshotProvider{}, nil
}

// Screens returns the geometry of every active display. Zero displays
// is an error; the process has nothing to capture.
func (*ScreenshotProvider) Screens() ([]Screen, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, errors.New("no active displays")
	}
	screens := make([]Screen, n)
	for i := 0; i < n; i++ {
		screens[i] = Screen{
			Index:  i,
			Bounds: screenshot.GetDisplayBounds(i),
		}
	}
	return screens, nil
}

// CreateFrameSource opens a frame source for one screen.
func (*ScreenshotProvider) CreateFrameSource(screen Screen) (FrameSource, error) {
	return &screenshotSource{
		screen: screen,
		closed: make(chan struct{}),
	}, nil
}

// Next captures the screen's current content. It blocks for the
// duration of the OS capture call.
func (s *screenshotSource) Next() (*Frame, error) {
	select {
	case <-s.closed:
		return nil, ErrSourceClosed
	default:
	}
	img, err := screenshot.CaptureRect(s.screen.Bounds)
	if err != nil {
		return nil, fmt.Errorf("capture display %d: %w", s.screen.Index, err)
	}
	return FrameFromRGBA(img), nil
}

// Close makes the next Next call return ErrSourceClosed.
func (s *screenshotSource) Close() error {
	s.closeOnce.Do(func() {
		close(s.closed)
	})
	return nil
}

// FrameFromRGBA repacks an image into a Frame, dropping any row
// padding the platform capture may have left in the stride.
func FrameFromRGBA(img *image.RGBA) *Frame {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	frame := &Frame{
		Pix:        make([]byte, w*h*4),
		Width:      w,
		Height:     h,
		CapturedAt: time.Now(),
	}
	if img.Stride == w*4 {
		copy(frame.Pix, img.Pix[:w*h*4])
		return frame
	}
	for y := 0; y < h; y++ {
		copy(frame.Pix[y*w*4:(y+1)*w*4], img.Pix[y*img.Stride:y*img.Stride+w*4])
	}
	return frame
}
