package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backglow/internal/rdisplay"
)

func frame(fill byte) *rdisplay.Frame {
	pix := make([]byte, 2*2*4)
	for i := range pix {
		pix[i] = fill
	}
	return &rdisplay.Frame{Pix: pix, Width: 2, Height: 2, CapturedAt: time.Now()}
}

func TestPublishOverwrites(t *testing.T) {
	s := New()
	s.Publish(0, frame(1))
	s.Publish(0, frame(2))

	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, byte(2), snap[0].Pix[0])
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := New()
	s.Publish(0, frame(1))

	snap := s.Snapshot()
	delete(snap, 0)
	snap[7] = frame(9)

	again := s.Snapshot()
	require.Len(t, again, 1)
	assert.Equal(t, byte(1), again[0].Pix[0])
}

func TestSnapshotSeesLatestPublishPerMonitor(t *testing.T) {
	s := New()
	s.Publish(0, frame(1))
	s.Publish(1, frame(3))
	s.Publish(1, frame(4))

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, byte(1), snap[0].Pix[0])
	assert.Equal(t, byte(4), snap[1].Pix[0])
}

func TestLastCaptured(t *testing.T) {
	s := New()
	assert.Empty(t, s.LastCaptured())

	f := frame(1)
	s.Publish(3, f)
	captured := s.LastCaptured()
	require.Len(t, captured, 1)
	assert.Equal(t, f.CapturedAt, captured[3])
}

func TestConcurrentPublishersAndReaders(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for monitor := 0; monitor < 4; monitor++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				s.Publish(monitor, frame(byte(i)))
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			for _, f := range s.Snapshot() {
				assert.Len(t, f.Pix, 2*2*4)
			}
		}
	}()
	wg.Wait()

	assert.Len(t, s.Snapshot(), 4)
}
