package logging

import (
	"context"
	"log/slog"
)

const componentKey = "component"

// filteringHandler drops records below the level the log Spec assigns to
// the handler's component. The component is picked up from the
// "component" attribute when the logger is derived with With.
type filteringHandler struct {
	inner     slog.Handler
	spec      *Spec
	component string
}

// NewFilteringHandler wraps inner with per-component filtering.
func NewFilteringHandler(inner slog.Handler, spec *Spec) slog.Handler {
	return &filteringHandler{inner: inner, spec: spec}
}

func (h *filteringHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.spec.LevelFor(h.component).ToSlog()
}

func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Enabled(ctx, r.Level) {
		return nil
	}
	return h.inner.Handle(ctx, r)
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &filteringHandler{
		inner:     h.inner.WithAttrs(attrs),
		spec:      h.spec,
		component: h.component,
	}
	for _, attr := range attrs {
		if attr.Key == componentKey {
			next.component = attr.Value.String()
		}
	}
	return next
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return &filteringHandler{
		inner:     h.inner.WithGroup(name),
		spec:      h.spec,
		component: h.component,
	}
}

// Trace logs msg at LevelTrace.
func Trace(ctx context.Context, logger *slog.Logger, msg string, args ...any) {
	logger.Log(ctx, LevelTrace.ToSlog(), msg, args...)
}
