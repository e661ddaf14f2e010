package logging

import (
	"context"
	"log/slog"
)

// ContextProvider returns attributes describing the current editing session, such as
// the id of the active diagram. It is called once per record.
type ContextProvider func() []slog.Attr

// ContextHandler adds the provider's attributes to every record. A provider attribute
// is skipped when the record already carries the same key, so an explicit
// Logger.Info(..., "diagram", id) is never duplicated.
type ContextHandler struct {
	slog.Handler
	provider ContextProvider
}

// NewContextHandler wraps inner. A nil provider makes the handler a pass-through.
func NewContextHandler(inner slog.Handler, provider ContextProvider) *ContextHandler {
	return &ContextHandler{Handler: inner, provider: provider}
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.provider == nil {
		return h.Handler.Handle(ctx, r)
	}
	extra := h.provider()
	if len(extra) == 0 {
		return h.Handler.Handle(ctx, r)
	}

	present := make(map[string]bool, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		present[a.Key] = true
		return true
	})
	for _, a := range extra {
		if !present[a.Key] {
			r.AddAttrs(a)
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewContextHandler(h.Handler.WithAttrs(attrs), h.provider)
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return NewContextHandler(h.Handler.WithGroup(name), h.provider)
}
