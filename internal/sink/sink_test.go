package sink

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backglow/internal/led"
)

var testSamples = []led.Sample{
	{Index: 0, Color: led.Color{R: 255}},
	{Index: 1, Color: led.Color{G: 128}},
	{Index: 2, Color: led.Color{B: 7}},
}

func TestEncodeDRGB(t *testing.T) {
	pkt := EncodeDRGB(testSamples, 2)
	assert.Equal(t, []byte{
		2, 2,
		255, 0, 0,
		0, 128, 0,
		0, 0, 7,
	}, pkt)
}

func TestEncodeDRGBEmpty(t *testing.T) {
	assert.Equal(t, []byte{2, 2}, EncodeDRGB(nil, 2))
}

func TestWLEDSinkSendsOneDatagram(t *testing.T) {
	listener, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	s, err := NewWLED(listener.LocalAddr().String())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Send(testSamples))

	listener.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 64)
	n, _, err := listener.ReadFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, EncodeDRGB(testSamples, 2), buf[:n])
}

func TestWLEDDefaultPortAppended(t *testing.T) {
	s, err := NewWLED("127.0.0.1")
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, "127.0.0.1:21324", s.conn.RemoteAddr().String())
}

func TestSerialSinkLineFormat(t *testing.T) {
	var buf strings.Builder
	s := NewSerialWriter(&buf)
	defer s.Close()

	require.NoError(t, s.Send(testSamples))
	assert.Equal(t, "255,0,0\n0,128,0\n0,0,7\n", buf.String())
}

func TestLogSinkNeverFails(t *testing.T) {
	s := NewLog(zap.NewNop())
	assert.NoError(t, s.Send(testSamples))
	assert.NoError(t, s.Send(nil))
	assert.NoError(t, s.Close())
}
