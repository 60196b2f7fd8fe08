package log

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// RelativeHandler wraps an slog.Handler and rewrites string attributes that
// contain absolute paths under base into relative paths before passing the
// record on. Paths outside base are left unchanged.
type RelativeHandler struct {
	handler slog.Handler
	base    string
}

// NewRelativeHandler creates a RelativeHandler wrapping handler.
// If handler is nil, slog.Default().Handler() is used. An empty or relative
// base disables rewriting.
func NewRelativeHandler(handler slog.Handler, base string) *RelativeHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if base != "" && filepath.IsAbs(base) {
		base = filepath.Clean(base)
	} else {
		base = ""
	}
	return &RelativeHandler{handler: handler, base: base}
}

// Enabled delegates to the underlying handler.
func (h *RelativeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it to the underlying handler.
func (h *RelativeHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, h.relativize(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})
	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes rewritten and added.
func (h *RelativeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = h.rewriteAttr(a)
	}
	return &RelativeHandler{handler: h.handler.WithAttrs(rewritten), base: h.base}
}

// WithGroup returns a new handler with the given group name.
func (h *RelativeHandler) WithGroup(name string) slog.Handler {
	return &RelativeHandler{handler: h.handler.WithGroup(name), base: h.base}
}

func (h *RelativeHandler) rewriteAttr(a slog.Attr) slog.Attr {
	if h.base == "" {
		return a
	}

	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		attrs := v.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			rewritten[i] = h.rewriteAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	case slog.KindString:
		return slog.String(a.Key, h.relativize(v.String()))
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return slog.String(a.Key, h.relativize(err.Error()))
		}
	}
	return slog.Attr{Key: a.Key, Value: v}
}

// relativize replaces every occurrence of base in s. The base itself
// becomes ".", and base followed by a separator is dropped.
func (h *RelativeHandler) relativize(s string) string {
	if h.base == "" || !strings.Contains(s, h.base) {
		return s
	}
	if s == h.base {
		return "."
	}
	prefix := h.base
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.ReplaceAll(s, prefix, "")
}

func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// NewLogger creates a text logger writing to w. verbose selects Debug
// level instead of Warn. Absolute paths under base are logged relative to it.
func NewLogger(w io.Writer, verbose bool, base string) *slog.Logger {
	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelFor(verbose)})
	return slog.New(NewRelativeHandler(textHandler, base))
}

// NewJSONLogger is like NewLogger but emits JSON records.
func NewJSONLogger(w io.Writer, verbose bool, base string) *slog.Logger {
	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: levelFor(verbose)})
	return slog.New(NewRelativeHandler(jsonHandler, base))
}
