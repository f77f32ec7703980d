// Package logger builds the process slog.Logger: a compact console handler
// for people and an optional JSON sink for machines.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/term"
)

var isTerminal = term.IsTerminal

// Options selects the level and the output sinks.
type Options struct {
	Level slog.Level
	// Console defaults to os.Stderr.
	Console io.Writer
	// File, when set, receives JSON lines.
	File io.Writer
}

// New builds a logger from opts and installs it as the slog default.
func New(opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level:       opts.Level,
		ReplaceAttr: ShortenVisitor,
	}

	console := opts.Console
	color := false
	if console == nil {
		console = os.Stderr
		color = isTerminal(int(os.Stderr.Fd()))
	}
	var handler slog.Handler = NewPrettyHandler(console, handlerOpts, color)
	if opts.File != nil {
		handler = &multiHandler{handlers: []slog.Handler{
			handler,
			slog.NewJSONHandler(opts.File, handlerOpts),
		}}
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

// Discard is a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ShortenVisitor trims visitor ids to their first block so logs stay
// readable without printing whole session cookies.
func ShortenVisitor(_ []string, a slog.Attr) slog.Attr {
	if a.Key != "visitor" || a.Value.Kind() != slog.KindString {
		return a
	}
	id := a.Value.String()
	if len(id) > 8 {
		id = id[:8]
	}
	return slog.String(a.Key, id)
}

// PrettyHandler writes one "15:04:05 LEVEL message key=value" line per record.
type PrettyHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	opts   *slog.HandlerOptions
	attrs  []slog.Attr
	groups []string
	color  bool
}

func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions, color bool) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyHandler{mu: &sync.Mutex{}, w: w, opts: opts, color: color}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}
	return level >= threshold
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	levelColor, reset := "", ""
	if h.color {
		switch {
		case r.Level >= slog.LevelError:
			levelColor = "\033[31m"
		case r.Level >= slog.LevelWarn:
			levelColor = "\033[33m"
		case r.Level >= slog.LevelInfo:
			levelColor = "\033[32m"
		default:
			levelColor = "\033[90m"
		}
		reset = "\033[0m"
	}

	buf := fmt.Appendf(nil, "%s %s%-5s%s %s",
		r.Time.Format("15:04:05"), levelColor, r.Level.String(), reset, r.Message)

	appendAttr := func(a slog.Attr) {
		if h.opts.ReplaceAttr != nil {
			a = h.opts.ReplaceAttr(h.groups, a)
		}
		if a.Key == "" {
			return
		}
		key := a.Key
		for i := len(h.groups) - 1; i >= 0; i-- {
			key = h.groups[i] + "." + key
		}
		if h.color {
			buf = fmt.Appendf(buf, " \033[90m%s=\033[0m%v", key, a.Value)
			return
		}
		buf = fmt.Appendf(buf, " %s=%v", key, a.Value)
	}
	for _, a := range h.attrs {
		appendAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(a)
		return true
	})
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf)
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.attrs = append(h2.attrs[:len(h2.attrs):len(h2.attrs)], attrs...)
	return &h2
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(h2.groups[:len(h2.groups):len(h2.groups)], name)
	return &h2
}

type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}
