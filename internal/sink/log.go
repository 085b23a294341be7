package sink

import (
	"go.uber.org/zap"

	"backglow/internal/led"
)

// LogSink logs each dispatch instead of driving hardware, for running
// without a strip attached.
type LogSink struct {
	logger *zap.Logger
}

// NewLog returns a sink that logs at debug level.
func NewLog(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Send logs the zone count and the hex colors.
func (l *LogSink) Send(samples []led.Sample) error {
	colors := make([]string, len(samples))
	for i, s := range samples {
		colors[i] = s.Color.Hex()
	}
	l.logger.Debug("dispatch", zap.Int("zones", len(samples)), zap.Strings("colors", colors))
	return nil
}

// Close is a no-op.
func (l *LogSink) Close() error {
	return nil
}
