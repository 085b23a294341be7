// Package extract reduces canvas zones to single LED colors.
package extract

import (
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"backglow/internal/compose"
	"backglow/internal/led"
	"backglow/internal/zones"
)

// Extractor samples zone perimeters off a composited canvas. It keeps
// only the enabled zones; every call produces exactly one sample per
// enabled zone.
type Extractor struct {
	zones  []zones.Zone
	origin image.Point
}

// New builds an extractor for the enabled subset of zs. origin is the
// desktop coordinate of the canvas top-left corner; zone rectangles
// are in desktop coordinates and get shifted by it on every lookup.
func New(zs []zones.Zone, origin image.Point) *Extractor {
	return &Extractor{zones: zones.Enabled(zs), origin: origin}
}

// Zones returns how many zones produce samples.
func (e *Extractor) Zones() int {
	return len(e.zones)
}

// Extract computes one averaged color per enabled zone. The zones are
// independent and the canvas is read-only, so they are processed in
// parallel. Samples come back in no particular order; the dispatcher
// sorts them before sending.
func (e *Extractor) Extract(canvas *compose.Canvas) []led.Sample {
	samples := make([]led.Sample, len(e.zones))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, z := range e.zones {
		g.Go(func() error {
			samples[i] = led.Sample{Index: z.Index, Color: zoneColor(canvas, z.Rect, e.origin)}
			return nil
		})
	}
	g.Wait() // the workers never return an error
	return samples
}

// zoneColor averages the perimeter pixels of rect. Only the border of
// the rectangle is sampled, not the interior. Coordinates that fall
// outside the canvas are skipped entirely rather than clamped or
// counted as black; a zone with no in-bounds perimeter pixel is black.
func zoneColor(canvas *compose.Canvas, rect image.Rectangle, origin image.Point) led.Color {
	var rSum, gSum, bSum, count uint64
	sample := func(x, y int) {
		r, g, b, ok := canvas.RGBAt(rect.Min.X+x-origin.X, rect.Min.Y+y-origin.Y)
		if !ok {
			return
		}
		rSum += uint64(r)
		gSum += uint64(g)
		bSum += uint64(b)
		count++
	}
	w, h := rect.Dx(), rect.Dy()
	for x := 0; x < w; x++ {
		sample(x, 0)
		if h > 1 {
			sample(x, h-1)
		}
	}
	for y := 1; y < h-1; y++ {
		sample(0, y)
		if w > 1 {
			sample(w-1, y)
		}
	}
	if count == 0 {
		return led.Color{}
	}
	return led.Color{
		R: uint8(rSum / count),
		G: uint8(gSum / count),
		B: uint8(bSum / count),
	}
}
