package zones

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYAML(t *testing.T) {
	zs, err := ParseYAML([]byte(`
zones:
  - index: 0
    rect: {x: 10, y: 10, width: 50, height: 50}
  - index: 1
    enabled: false
    rect:
      x: -20
      y: 0
      width: 30
      height: 40
`))
	require.NoError(t, err)
	require.Len(t, zs, 2)

	assert.Equal(t, Zone{Index: 0, Enabled: true, Rect: image.Rect(10, 10, 60, 60)}, zs[0])
	assert.Equal(t, Zone{Index: 1, Enabled: false, Rect: image.Rect(-20, 0, 10, 40)}, zs[1])
}

func TestParseYAMLBadInput(t *testing.T) {
	_, err := ParseYAML([]byte("zones: {not: a list}"))
	assert.Error(t, err)
}
