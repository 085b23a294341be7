package rdisplay

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameFromRGBAPacked(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}

	frame := FrameFromRGBA(img)
	assert.Equal(t, 3, frame.Width)
	assert.Equal(t, 2, frame.Height)
	require.Len(t, frame.Pix, 3*2*4)
	assert.Equal(t, img.Pix, frame.Pix)
	assert.False(t, frame.CapturedAt.IsZero())
}

func TestFrameFromRGBADropsRowPadding(t *testing.T) {
	// Stride wider than the row: 2x2 image with 4 padding bytes per row.
	img := &image.RGBA{
		Pix:    make([]byte, 2*12),
		Stride: 12,
		Rect:   image.Rect(0, 0, 2, 2),
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 8; x++ {
			img.Pix[y*12+x] = byte(10*y + x)
		}
		// Padding bytes stay at a marker value.
		for x := 8; x < 12; x++ {
			img.Pix[y*12+x] = 0xee
		}
	}

	frame := FrameFromRGBA(img)
	require.Len(t, frame.Pix, 2*2*4)
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7, 10, 11, 12, 13, 14, 15, 16, 17}, frame.Pix)
	assert.NotContains(t, frame.Pix, byte(0xee))
}

func TestFrameFromRGBASubimageOffset(t *testing.T) {
	// A capture whose Rect does not start at the origin still packs
	// from its own first pixel.
	img := image.NewRGBA(image.Rect(100, 50, 102, 51))
	copy(img.Pix, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	frame := FrameFromRGBA(img)
	assert.Equal(t, 2, frame.Width)
	assert.Equal(t, 1, frame.Height)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, frame.Pix)
}

func TestScreenshotSourceClose(t *testing.T) {
	src := &screenshotSource{closed: make(chan struct{})}
	require.NoError(t, src.Close())
	require.NoError(t, src.Close())

	_, err := src.Next()
	assert.ErrorIs(t, err, ErrSourceClosed)
}
