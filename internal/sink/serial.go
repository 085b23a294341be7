package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"backglow/internal/led"
)

// SerialSink writes colors as "R,G,B\n" lines, one per zone, the
// format the Arduino strip firmware reads off its serial port.
type SerialSink struct {
	w io.Writer
	c io.Closer
}

// NewSerial opens a character device (e.g. /dev/ttyUSB0) for writing.
// Line speed setup is left to the OS.
func NewSerial(device string) (*SerialSink, error) {
	f, err := os.OpenFile(device, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open serial device %s: %w", device, err)
	}
	return &SerialSink{w: f, c: f}, nil
}

// NewSerialWriter wraps an arbitrary writer. Used by tests and for
// piping colors into another process.
func NewSerialWriter(w io.Writer) *SerialSink {
	return &SerialSink{w: w}
}

// Send writes one line per sample in the order given.
func (s *SerialSink) Send(samples []led.Sample) error {
	buf := bufio.NewWriter(s.w)
	for _, sample := range samples {
		if _, err := fmt.Fprintf(buf, "%d,%d,%d\n", sample.Color.R, sample.Color.G, sample.Color.B); err != nil {
			return err
		}
	}
	return buf.Flush()
}

// Close closes the device if one was opened.
func (s *SerialSink) Close() error {
	if s.c != nil {
		return s.c.Close()
	}
	return nil
}
