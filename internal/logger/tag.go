package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// TagHandler is an slog.Handler that writes plain lines prefixed with a
// bracketed severity tag, e.g. "[ERROR] write failed error=...".
// A "stack" attribute is printed on the lines following the message.
type TagHandler struct {
	w      io.Writer
	mu     *sync.Mutex
	level  slog.Leveler
	prefix string // pre-rendered attrs from WithAttrs
	group  string
}

// NewTagHandler creates a TagHandler writing records at or above level to w.
func NewTagHandler(w io.Writer, level slog.Leveler) *TagHandler {
	return &TagHandler{w: w, mu: &sync.Mutex{}, level: level}
}

// Enabled reports whether level is at or above the configured minimum.
func (h *TagHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes a single record.
func (h *TagHandler) Handle(_ context.Context, rec slog.Record) error { //nolint:gocritic // slog.Handler interface requires value receiver
	var buf bytes.Buffer
	var stack string

	buf.WriteString("[")
	buf.WriteString(levelName(rec.Level))
	buf.WriteString("] ")
	buf.WriteString(rec.Message)
	buf.WriteString(h.prefix)

	rec.Attrs(func(a slog.Attr) bool {
		if a.Key == StackKey && h.group == "" {
			stack = a.Value.String()
			return true
		}
		appendAttr(&buf, h.group, a)
		return true
	})
	buf.WriteByte('\n')

	if stack != "" {
		buf.WriteString(strings.TrimRight(stack, "\n"))
		buf.WriteByte('\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

// WithAttrs returns a handler that renders attrs on every record.
func (h *TagHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var buf bytes.Buffer
	buf.WriteString(h.prefix)
	for _, a := range attrs {
		appendAttr(&buf, h.group, a)
	}
	clone := *h
	clone.prefix = buf.String()
	return &clone
}

// WithGroup returns a handler that qualifies subsequent keys with name.
func (h *TagHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = joinKey(h.group, name)
	return &clone
}

func appendAttr(buf *bytes.Buffer, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		g := group
		if a.Key != "" {
			g = joinKey(group, a.Key)
		}
		for _, ga := range a.Value.Group() {
			appendAttr(buf, g, ga)
		}
		return
	}

	buf.WriteByte(' ')
	buf.WriteString(joinKey(group, a.Key))
	buf.WriteByte('=')
	buf.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindString:
		s = v.String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

func joinKey(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}
