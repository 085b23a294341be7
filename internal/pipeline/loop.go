// Package pipeline drives the capture-to-LED processing loop.
package pipeline

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"backglow/internal/compose"
	"backglow/internal/extract"
	"backglow/internal/led"
	"backglow/internal/sink"
	"backglow/internal/store"
)

// Loop ties one tick together: snapshot the frame store, composite,
// extract, dispatch in strip order. The sink call is synchronous, so a
// slow sink stalls the loop for that tick; capture sessions are never
// blocked by it because they only touch the store.
type Loop struct {
	frames     *store.FrameStore
	compositor *compose.Compositor
	extractor  *extract.Extractor
	out        sink.Sink
	gate       *Gate
	interval   time.Duration
	logger     *zap.Logger
	dumper     *CanvasDumper
}

// NewLoop builds the processing loop. targetFps == 0 runs unpaced.
func NewLoop(frames *store.FrameStore, compositor *compose.Compositor, extractor *extract.Extractor, out sink.Sink, gate *Gate, targetFps int, logger *zap.Logger) *Loop {
	var interval time.Duration
	if targetFps > 0 {
		interval = time.Second / time.Duration(targetFps)
	}
	return &Loop{
		frames:     frames,
		compositor: compositor,
		extractor:  extractor,
		out:        out,
		gate:       gate,
		interval:   interval,
		logger:     logger,
	}
}

// SetDumper attaches an optional canvas dumper. Must be called before
// Run.
func (l *Loop) SetDumper(d *CanvasDumper) {
	l.dumper = d
}

// Tick runs one full pipeline pass and returns the samples in the
// order they were dispatched: ascending by zone index. A sink failure
// is logged and dropped; the next tick's data supersedes it.
func (l *Loop) Tick() []led.Sample {
	snapshot := l.frames.Snapshot()
	canvas := l.compositor.Combine(snapshot)
	samples := l.extractor.Extract(canvas)
	sort.Slice(samples, func(i, j int) bool { return samples[i].Index < samples[j].Index })
	if l.dumper != nil {
		l.dumper.Observe(canvas)
	}
	if err := l.out.Send(samples); err != nil {
		l.logger.Warn("dropping failed dispatch", zap.Error(err))
	}
	return samples
}

// Run executes ticks until stop is closed, parking while the gate is
// inactive. No work queues up while parked; the first tick after
// reactivation starts from a fresh snapshot.
func (l *Loop) Run(stop <-chan struct{}) {
	l.logger.Info("processing loop started", zap.Duration("interval", l.interval))
	for {
		if !l.gate.WaitActive(stop) {
			l.logger.Info("processing loop stopped")
			return
		}
		start := time.Now()
		l.Tick()
		if l.interval > 0 {
			if rest := l.interval - time.Since(start); rest > 0 {
				select {
				case <-time.After(rest):
				case <-stop:
					l.logger.Info("processing loop stopped")
					return
				}
			}
		}
		select {
		case <-stop:
			l.logger.Info("processing loop stopped")
			return
		default:
		}
	}
}
