// Package led holds the color types shared by the extraction and sink
// layers.
package led

import "fmt"

// Color is one 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// Hex renders the color as RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Sample is the averaged color for one zone. Index is the zone's
// position on the physical strip; samples must be dispatched in
// ascending index order.
type Sample struct {
	Index int
	Color Color
}
