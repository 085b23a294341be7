package pipeline

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
	"go.uber.org/zap"

	"backglow/internal/compose"
)

const dumpThumbWidth = 480

// CanvasDumper writes a downscaled PNG of the composited canvas every
// Nth tick. Debugging aid for checking monitor layout and zone
// placement; never enabled unless a directory is configured.
type CanvasDumper struct {
	dir    string
	every  int
	ticks  int
	logger *zap.Logger
}

// NewCanvasDumper dumps into dir once per every ticks.
func NewCanvasDumper(dir string, every int, logger *zap.Logger) *CanvasDumper {
	return &CanvasDumper{dir: dir, every: every, logger: logger}
}

// Observe counts a tick and possibly writes a thumbnail. Failures are
// logged and otherwise ignored; dumping must never affect the tick.
func (d *CanvasDumper) Observe(canvas *compose.Canvas) {
	d.ticks++
	if d.every <= 0 || d.ticks%d.every != 0 {
		return
	}
	img := &image.RGBA{
		Pix:    canvas.Pix,
		Stride: canvas.Width * 4,
		Rect:   image.Rect(0, 0, canvas.Width, canvas.Height),
	}
	thumb := resize.Resize(dumpThumbWidth, 0, img, resize.Bilinear)
	path := filepath.Join(d.dir, fmt.Sprintf("canvas-%06d.png", d.ticks))
	f, err := os.Create(path)
	if err != nil {
		d.logger.Warn("can't write canvas dump", zap.Error(err))
		return
	}
	defer f.Close()
	if err := png.Encode(f, thumb); err != nil {
		d.logger.Warn("can't encode canvas dump", zap.Error(err))
	}
}
