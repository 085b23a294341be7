// Package zones loads and validates the screen-zone-to-LED mapping.
// One zone is one rectangle of the virtual desktop driving one LED.
package zones

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Zone maps one rectangle to one LED. Rect is in desktop coordinates
// as reported by the OS, not canvas coordinates. The list is loaded
// once and treated as read-only for the rest of the session.
type Zone struct {
	Index   int
	Rect    image.Rectangle
	Enabled bool
}

// Validate checks a zone list and returns it sorted by index.
func Validate(zs []Zone) ([]Zone, error) {
	if len(zs) == 0 {
		return nil, errors.New("zone list is empty")
	}
	seen := make(map[int]struct{}, len(zs))
	for _, z := range zs {
		if _, dup := seen[z.Index]; dup {
			return nil, fmt.Errorf("duplicate zone index %d", z.Index)
		}
		seen[z.Index] = struct{}{}
		if z.Rect.Dx() <= 0 || z.Rect.Dy() <= 0 {
			return nil, fmt.Errorf("zone %d has an empty rectangle %v", z.Index, z.Rect)
		}
	}
	out := make([]Zone, len(zs))
	copy(out, zs)
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

// Enabled filters the list down to the enabled zones.
func Enabled(zs []Zone) []Zone {
	out := make([]Zone, 0, len(zs))
	for _, z := range zs {
		if z.Enabled {
			out = append(out, z)
		}
	}
	return out
}

// Load reads a zone config file and validates it. The format is picked
// by extension: .yaml/.yml is the native format, anything else is
// treated as a Prismatik profile.
func Load(path string) ([]Zone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var zs []Zone
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		zs, err = ParseYAML(data)
	default:
		zs, err = ParsePrismatik(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return Validate(zs)
}
