package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestDispatcherLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		log   func(*DispatcherLogger, string, ...any)
	}{
		{"DEBUG", (*DispatcherLogger).Debug},
		{"INFO", (*DispatcherLogger).Info},
		{"ERROR", (*DispatcherLogger).Error},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			tt.log(NewDispatcherLogger(logger), "event complete", "command", ":CLICK:", "args", 2)

			entry := decodeLine(t, &buf)
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, "event complete", entry["msg"])
			assert.Equal(t, "dispatcher", entry["component"])
			assert.Equal(t, ":CLICK:", entry["command"])
			assert.Equal(t, float64(2), entry["args"])
		})
	}
}

func TestDispatcherLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}))
	dl := NewDispatcherLogger(logger)

	dl.Debug("handling event")
	dl.Info("registered")
	assert.Empty(t, buf.String())

	dl.Error("event failed", "error", "boom")
	assert.Equal(t, "boom", decodeLine(t, &buf)["error"])
}

func TestDispatcherLogger_NilUsesDefault(t *testing.T) {
	var buf bytes.Buffer
	orig := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(orig) })

	NewDispatcherLogger(nil).Info("fallback")
	assert.Equal(t, "fallback", decodeLine(t, &buf)["msg"])
}
