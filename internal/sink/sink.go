// Package sink delivers ordered zone colors to LED hardware.
package sink

import "backglow/internal/led"

// Sink pushes one strip-ordered set of colors to the LEDs. Send is
// synchronous and single-attempt; the caller treats a failed send as
// droppable because the next tick supersedes it. Samples arrive sorted
// ascending by zone index.
type Sink interface {
	Send(samples []led.Sample) error
	Close() error
}
