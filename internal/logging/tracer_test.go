package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracer_Enabled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tr := NewTracer(logger, true)
	tr.Trace("draw.start", "x", 10, "y", 20)

	assert.Contains(t, buf.String(), "draw.start")
	assert.Contains(t, buf.String(), "trace.x=10")
	assert.Contains(t, buf.String(), "trace.y=20")
}

func TestTracer_Disabled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tr := NewTracer(logger, false)
	tr.Trace("draw.start")
	assert.Empty(t, buf.String())

	var nilTracer *Tracer
	assert.False(t, nilTracer.Enabled())
	nilTracer.Trace("ignored")
}
