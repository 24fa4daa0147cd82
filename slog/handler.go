package slog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// DepthKey is the attribute that sets the indentation of a record. It is
// consumed by IndentHandler and not printed.
const DepthKey = "depth"

var _ slog.Handler = (*IndentHandler)(nil)

// IndentHandler writes one human-readable line per record, indented two
// spaces per depth level and prefixed with a level marker:
//
//	> crawling url=/about file=about-us.md
//	  ! menu item has no link
type IndentHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	depth  int
	attrs  string // preformatted " key=value" pairs
	prefix string // open groups, dot-terminated
}

// NewIndentHandler creates a handler writing records at or above level to w.
func NewIndentHandler(w io.Writer, level slog.Leveler) *IndentHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &IndentHandler{mu: &sync.Mutex{}, w: w, level: level}
}

func (h *IndentHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *IndentHandler) Handle(_ context.Context, r slog.Record) error {
	depth := h.depth
	var b strings.Builder
	b.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		if d, ok := depthOf(a, h.prefix); ok {
			depth = d
			return true
		}
		appendAttr(&b, h.prefix, a)
		return true
	})

	line := strings.Repeat("  ", depth) + marker(r.Level) + " " + r.Message + b.String() + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line)
	return err
}

func (h *IndentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		if d, ok := depthOf(a, h.prefix); ok {
			c.depth = d
			continue
		}
		appendAttr(&b, h.prefix, a)
	}
	c.attrs = b.String()
	return &c
}

func (h *IndentHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.prefix = h.prefix + name + "."
	return &c
}

func depthOf(a slog.Attr, prefix string) (int, bool) {
	if prefix != "" || a.Key != DepthKey {
		return 0, false
	}
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindInt64:
		return max(int(v.Int64()), 0), true
	case slog.KindUint64:
		return int(v.Uint64()), true
	}
	return 0, false
}

func marker(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "x"
	case l >= slog.LevelWarn:
		return "!"
	case l >= slog.LevelInfo:
		return ">"
	default:
		return "·"
	}
}

func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if v.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}
		for _, ga := range v.Group() {
			appendAttr(b, p, ga)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(quote(v.String()))
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

var _ slog.Handler = (*TeeHandler)(nil)

// TeeHandler sends every record to several handlers.
type TeeHandler struct {
	handlers []slog.Handler
}

// NewTeeHandler creates a handler fanning out to handlers.
func NewTeeHandler(handlers ...slog.Handler) *TeeHandler {
	return &TeeHandler{handlers: handlers}
}

func (t *TeeHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (t *TeeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, fmt.Errorf("%T: %w", h, err))
		}
	}
	return errors.Join(errs...)
}

func (t *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		hs[i] = h.WithAttrs(attrs)
	}
	return &TeeHandler{handlers: hs}
}

func (t *TeeHandler) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		hs[i] = h.WithGroup(name)
	}
	return &TeeHandler{handlers: hs}
}
