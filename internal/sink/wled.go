package sink

import (
	"fmt"
	"net"

	"backglow/internal/led"
)

// WLED realtime UDP, DRGB mode: byte 0 selects the protocol, byte 1 is
// how many seconds the node stays in realtime mode after the last
// packet, then one RGB triple per LED in strip order.
const (
	drgbProtocol      = 2
	drgbTimeoutSec    = 2
	DefaultWLEDPort   = 21324
	maxDatagramColors = (65507 - 2) / 3
)

// WLEDSink streams colors to a WLED node over UDP.
type WLEDSink struct {
	conn net.Conn
}

// NewWLED opens a UDP socket to addr, which may be a bare host; the
// default WLED realtime port is appended if none is given.
func NewWLED(addr string) (*WLEDSink, error) {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = fmt.Sprintf("%s:%d", addr, DefaultWLEDPort)
	}
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial wled %s: %w", addr, err)
	}
	return &WLEDSink{conn: conn}, nil
}

// Send encodes the samples into a single DRGB datagram.
func (w *WLEDSink) Send(samples []led.Sample) error {
	if len(samples) > maxDatagramColors {
		return fmt.Errorf("%d zones exceed one datagram (max %d)", len(samples), maxDatagramColors)
	}
	if _, err := w.conn.Write(EncodeDRGB(samples, drgbTimeoutSec)); err != nil {
		return fmt.Errorf("send %d zone colors: %w", len(samples), err)
	}
	return nil
}

// Close releases the socket.
func (w *WLEDSink) Close() error {
	return w.conn.Close()
}

// EncodeDRGB builds the datagram payload for one update.
func EncodeDRGB(samples []led.Sample, timeoutSec uint8) []byte {
	pkt := make([]byte, 2+3*len(samples))
	pkt[0] = drgbProtocol
	pkt[1] = timeoutSec
	for i, s := range samples {
		pkt[2+3*i] = s.Color.R
		pkt[2+3*i+1] = s.Color.G
		pkt[2+3*i+2] = s.Color.B
	}
	return pkt
}
