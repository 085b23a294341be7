// Package compose stitches per-monitor frames into one virtual canvas.
package compose

import (
	"image"

	"go.uber.org/zap"

	"backglow/internal/rdisplay"
)

const bytesPerPixel = 4

// Canvas is the per-tick composited image spanning the bounding box of
// all monitors. It is rebuilt from scratch every tick and discarded
// afterwards; regions without a fresh frame stay at the zero fill, so
// a failed monitor can never ghost content from an earlier tick.
type Canvas struct {
	Pix    []byte
	Width  int
	Height int
}

// RGBAt returns the channel values at (x, y) and whether the
// coordinate is inside the canvas.
func (c *Canvas) RGBAt(x, y int) (r, g, b uint8, ok bool) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return 0, 0, 0, false
	}
	i := (y*c.Width + x) * bytesPerPixel
	return c.Pix[i], c.Pix[i+1], c.Pix[i+2], true
}

// Layout returns the size of the bounding box of all screens and its
// top-left corner, the origin every blit and zone lookup is shifted by.
func Layout(screens []rdisplay.Screen) (size, origin image.Point) {
	if len(screens) == 0 {
		return image.Point{}, image.Point{}
	}
	box := screens[0].Bounds
	for _, s := range screens[1:] {
		box = box.Union(s.Bounds)
	}
	return box.Size(), box.Min
}

// Compositor blits frame-store snapshots into fresh canvases.
type Compositor struct {
	screens []rdisplay.Screen
	size    image.Point
	origin  image.Point
	logger  *zap.Logger
}

// New fixes the canvas geometry from the enumerated screens.
func New(screens []rdisplay.Screen, logger *zap.Logger) *Compositor {
	size, origin := Layout(screens)
	return &Compositor{screens: screens, size: size, origin: origin, logger: logger}
}

// Size returns the canvas dimensions.
func (c *Compositor) Size() image.Point { return c.size }

// Origin returns the desktop coordinate of the canvas top-left corner.
func (c *Compositor) Origin() image.Point { return c.origin }

// Combine builds a zero-filled canvas and copies every available frame
// into it at its monitor's position. Monitors absent from the snapshot
// leave their region black. A frame whose buffer no longer matches its
// geometry (the OS layout changed since enumeration) is logged and
// skipped for this tick only. Where monitor rectangles overlap, the
// monitor processed later wins.
func (c *Compositor) Combine(snapshot map[int]*rdisplay.Frame) *Canvas {
	canvas := &Canvas{
		Pix:    make([]byte, c.size.X*c.size.Y*bytesPerPixel),
		Width:  c.size.X,
		Height: c.size.Y,
	}
	for _, screen := range c.screens {
		frame, ok := snapshot[screen.Index]
		if !ok {
			continue
		}
		if len(frame.Pix) != frame.Width*frame.Height*bytesPerPixel {
			c.logger.Warn("frame buffer does not match its geometry, skipping blit",
				zap.Int("monitor", screen.Index),
				zap.Int("have", len(frame.Pix)),
				zap.Int("want", frame.Width*frame.Height*bytesPerPixel))
			continue
		}
		c.blit(canvas, frame, screen.Bounds.Min.Sub(c.origin))
	}
	return canvas
}

// blit copies the frame row by row at the given offset, clipped to the
// canvas bounds. Copies are whole rows, not per-pixel.
func (c *Compositor) blit(canvas *Canvas, frame *rdisplay.Frame, at image.Point) {
	dst := image.Rect(0, 0, canvas.Width, canvas.Height)
	src := image.Rect(at.X, at.Y, at.X+frame.Width, at.Y+frame.Height)
	clipped := dst.Intersect(src)
	if clipped.Empty() {
		return
	}
	rowLen := clipped.Dx() * bytesPerPixel
	for y := clipped.Min.Y; y < clipped.Max.Y; y++ {
		srcStart := ((y-at.Y)*frame.Width + (clipped.Min.X - at.X)) * bytesPerPixel
		dstStart := (y*canvas.Width + clipped.Min.X) * bytesPerPixel
		srcRow := frame.Pix[srcStart : srcStart+rowLen]
		dstRow := canvas.Pix[dstStart : dstStart+rowLen]
		if len(srcRow) != len(dstRow) {
			c.logger.DPanic("blit row length mismatch",
				zap.Int("src", len(srcRow)), zap.Int("dst", len(dstRow)))
			return
		}
		copy(dstRow, srcRow)
	}
}
