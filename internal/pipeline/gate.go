package pipeline

import "sync"

// Gate is the shared activation flag between the external control
// surface and the processing loop. Deactivation is cooperative: a tick
// already underway completes and the loop parks before starting the
// next one. Reactivation wakes the loop immediately through a signal
// channel instead of being observed on a polling interval.
type Gate struct {
	mu     sync.Mutex
	active bool
	wake   chan struct{}
}

// NewGate returns a gate in the given initial state.
func NewGate(active bool) *Gate {
	return &Gate{active: active, wake: make(chan struct{})}
}

// Active reports the current state.
func (g *Gate) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// Set flips the flag. Activating wakes every goroutine parked in
// WaitActive; setting the current state again is a no-op.
func (g *Gate) Set(active bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active == active {
		return
	}
	g.active = active
	if active {
		close(g.wake)
		g.wake = make(chan struct{})
	}
}

// WaitActive blocks until the gate is active or stop is closed. It
// returns false only for the stop case.
func (g *Gate) WaitActive(stop <-chan struct{}) bool {
	for {
		g.mu.Lock()
		if g.active {
			g.mu.Unlock()
			return true
		}
		wake := g.wake
		g.mu.Unlock()

		select {
		case <-wake:
		case <-stop:
			return false
		}
	}
}
