package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// InstrumentationName names the OTel logger the bridge writes to
const InstrumentationName = "routeboard"

// fallback writer when Setup gets none; swapped in tests
var defaultOutput io.Writer = os.Stderr

// SlogManager owns the process logger: a text handler on the session log,
// the OTel bridge when a provider is given, and the session context on top.
type SlogManager struct {
	logger          *slog.Logger
	level           slog.LevelVar
	logProvider     *sdklog.LoggerProvider
	contextProvider ContextProvider
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// ParseLevel maps a config level name to a slog level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG", "TRACE":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetContextProvider registers attributes added to every record, such as the
// id of the diagram being edited. Takes effect on the next Setup.
func (m *SlogManager) SetContextProvider(p ContextProvider) {
	m.contextProvider = p
}

// SetLevel changes the level of the configured logger in place.
func (m *SlogManager) SetLevel(name string) {
	m.level.Set(ParseLevel(name))
}

// Setup builds the logger. Records go to w, or stderr when w is nil, so stdout
// stays free for command output. A nil provider disables the OTel bridge.
func (m *SlogManager) Setup(w io.Writer, level string, provider *sdklog.LoggerProvider) {
	if w == nil {
		w = defaultOutput
	}
	m.SetLevel(level)
	m.logProvider = provider

	handlers := []slog.Handler{
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: &m.level, ReplaceAttr: utcTime}),
	}
	if provider != nil {
		handlers = append(handlers, otelslog.NewHandler(InstrumentationName, otelslog.WithLoggerProvider(provider)))
	}

	var handler slog.Handler = NewMultiHandler(handlers...)
	if m.contextProvider != nil {
		handler = NewContextHandler(handler, m.contextProvider)
	}

	m.logger = slog.New(handler)
	m.logger.Debug("Logging initialized", "level", m.level.Level(), "otel", provider != nil)
}

// utcTime renders record times as RFC3339 UTC
func utcTime(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.TimeKey || len(groups) > 0 {
		return a
	}
	if t, ok := a.Value.Any().(time.Time); ok {
		a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
	}
	return a
}

// Logger returns the configured logger, or slog.Default before Setup.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		return slog.Default()
	}
	return m.logger
}

// Flush forces pending OTel log records out.
func (m *SlogManager) Flush(ctx context.Context) error {
	if m.logProvider == nil {
		return nil
	}
	return m.logProvider.ForceFlush(ctx)
}
