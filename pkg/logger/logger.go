package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Component identifiers for color-coded logging
type Component string

const (
	ComponentCLI        Component = "XBOT-CLI"
	ComponentNango      Component = "NANGO-CLIENT"
	ComponentScopeCheck Component = "SCOPE-CHECK"
	ComponentTelemetry  Component = "TELEMETRY"
)

// ANSI color codes
const (
	colorReset   = "\033[0m"
	colorGreen   = "\033[32m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

var componentColors = map[Component]string{
	ComponentCLI:        colorBlue,
	ComponentNango:      colorMagenta,
	ComponentScopeCheck: colorGreen,
	ComponentTelemetry:  colorCyan,
}

// Direction indicates the flow of a request
type Direction string

const (
	DirectionOutgoing Direction = "->"
	DirectionIncoming Direction = "<-"
	DirectionNone     Direction = ""
)

// ColorHandler is a slog handler that prefixes every record with its component
type ColorHandler struct {
	slog.Handler
	out       io.Writer
	mu        *sync.Mutex
	component Component
	useColors bool
	attrs     []slog.Attr
}

// NewColorHandler creates a new color-coded handler that drops records below level
func NewColorHandler(out io.Writer, component Component, useColors bool, level slog.Level) *ColorHandler {
	opts := &slog.HandlerOptions{
		Level: level,
	}
	return &ColorHandler{
		Handler:   slog.NewTextHandler(out, opts),
		out:       out,
		mu:        &sync.Mutex{},
		component: component,
		useColors: useColors,
	}
}

// Handle writes: emoji [COMPONENT] message key=value...
func (h *ColorHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	color, reset := componentColors[h.component], colorReset
	if !h.useColors {
		color, reset = "", ""
	}

	fmt.Fprintf(h.out, "%s%s [%s]%s %s", color, getLevelEmoji(r.Level), h.component, reset, r.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(h.out, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(h.out, " %s=%v", a.Key, a.Value)
		return true
	})
	fmt.Fprintln(h.out)

	return nil
}

// WithAttrs returns a new handler with the given attributes
func (h *ColorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ColorHandler{
		Handler:   h.Handler.WithAttrs(attrs),
		out:       h.out,
		mu:        h.mu,
		component: h.component,
		useColors: h.useColors,
		attrs:     append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
	}
}

// WithGroup returns a new handler with the given group
func (h *ColorHandler) WithGroup(name string) slog.Handler {
	return &ColorHandler{
		Handler:   h.Handler.WithGroup(name),
		out:       h.out,
		mu:        h.mu,
		component: h.component,
		useColors: h.useColors,
		attrs:     h.attrs,
	}
}

func getLevelEmoji(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "\U0001F534" // Red circle
	case level >= slog.LevelWarn:
		return "\U0001F7E1" // Yellow circle
	case level >= slog.LevelInfo:
		return "\U0001F535" // Blue circle
	default:
		return "\U0001F7E3" // Purple circle
	}
}

// Logger wraps slog.Logger with component-specific helpers
type Logger struct {
	*slog.Logger
	component Component
}

var (
	levelMu      sync.RWMutex
	defaultLevel = slog.LevelInfo
)

// SetDebug switches loggers created afterwards between debug and info level.
func SetDebug(enabled bool) {
	levelMu.Lock()
	defer levelMu.Unlock()
	if enabled {
		defaultLevel = slog.LevelDebug
	} else {
		defaultLevel = slog.LevelInfo
	}
}

func currentLevel() slog.Level {
	levelMu.RLock()
	defer levelMu.RUnlock()
	return defaultLevel
}

// New creates a component logger writing to stderr
func New(component Component) *Logger {
	useColors := os.Getenv("NO_COLOR") == "" && os.Getenv("TERM") != "dumb"
	return NewWithWriter(component, os.Stderr, useColors)
}

// NewWithWriter creates a logger with a custom writer
func NewWithWriter(component Component, w io.Writer, useColors bool) *Logger {
	handler := NewColorHandler(w, component, useColors, currentLevel())
	return &Logger{
		Logger:    slog.New(handler),
		component: component,
	}
}

// Discard returns a logger that drops everything. Handy as a default in library code.
func Discard(component Component) *Logger {
	return NewWithWriter(component, io.Discard, false)
}

// With returns a component logger that adds args to every record
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger:    l.Logger.With(args...),
		component: l.component,
	}
}

// Flow logs a directional message (incoming or outgoing) at debug level
func (l *Logger) Flow(dir Direction, msg string, args ...any) {
	prefix := ""
	if dir != DirectionNone {
		prefix = string(dir) + " "
	}
	l.Debug(prefix+msg, args...)
}

// Success logs a success message
func (l *Logger) Success(msg string, args ...any) {
	l.Info("✅ "+msg, args...)
}

// Scope logs scope-related info
func (l *Logger) Scope(msg string, args ...any) {
	l.Info("\U0001F511 "+msg, args...)
}
