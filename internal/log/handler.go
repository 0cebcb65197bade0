package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// UnknownSize replaces negative size attributes.
const UnknownSize = "unknown"

// Handler wraps an slog.Handler to format sizes and durations.
type Handler struct {
	handler slog.Handler
}

// NewHandler creates a Handler wrapping handler.
// If handler is nil, slog.Default().Handler() is used.
func NewHandler(handler slog.Handler) *Handler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &Handler{handler: handler}
}

// Enabled reports whether the underlying handler handles level.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it on.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	formatted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		formatted.AddAttrs(formatAttr(a))
		return true
	})
	return h.handler.Handle(ctx, formatted)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	formatted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		formatted[i] = formatAttr(a)
	}
	return &Handler{handler: h.handler.WithAttrs(formatted)}
}

// WithGroup returns a new handler with the given group name.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{handler: h.handler.WithGroup(name)}
}

func formatAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()

	switch v.Kind() {
	case slog.KindGroup:
		attrs := v.Group()
		formatted := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			formatted[i] = formatAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(formatted...)}
	case slog.KindDuration:
		return slog.Duration(a.Key, v.Duration().Round(time.Millisecond))
	case slog.KindInt64:
		if isSizeKey(a.Key) {
			n := v.Int64()
			if n < 0 {
				return slog.String(a.Key, UnknownSize)
			}
			return slog.String(a.Key, humanize.Bytes(uint64(n)))
		}
	case slog.KindUint64:
		if isSizeKey(a.Key) {
			return slog.String(a.Key, humanize.Bytes(v.Uint64()))
		}
	}
	return slog.Attr{Key: a.Key, Value: v}
}

func isSizeKey(key string) bool {
	k := strings.ToLower(key)
	return strings.HasSuffix(k, "bytes") || strings.HasSuffix(k, "size")
}

func level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// NewLogger creates a text logger writing to w, at Debug when verbose and
// at Warn otherwise.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	text := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level(verbose)})
	return slog.New(NewHandler(text))
}

// NewJSONLogger is NewLogger with JSON output.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	j := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level(verbose)})
	return slog.New(NewHandler(j))
}
