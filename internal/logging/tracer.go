package logging

import (
	"context"
	"log/slog"
)

// Tracer is a debug event sink for board transitions. A nil or disabled tracer drops everything.
type Tracer struct {
	logger  *slog.Logger
	enabled bool
}

// NewTracer returns a tracer writing to logger when enabled is true
func NewTracer(logger *slog.Logger, enabled bool) *Tracer {
	return &Tracer{logger: logger, enabled: enabled}
}

// Enabled reports whether trace events are recorded
func (t *Tracer) Enabled() bool {
	return t != nil && t.enabled && t.logger != nil
}

// Trace records one event with its attributes under a "trace" group
func (t *Tracer) Trace(event string, args ...any) {
	if !t.Enabled() {
		return
	}
	t.logger.LogAttrs(context.Background(), slog.LevelDebug, event,
		slog.Group("trace", args...))
}
