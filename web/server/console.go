package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "warning", "error"
}

// ConsoleHandler is a slog.Handler that forwards records to a render's
// browser console and to the server log
type ConsoleHandler struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	next        slog.Handler
	level       slog.Leveler
	attrs       []slog.Attr
}

// NewConsoleHandler creates a handler for a specific render. next receives
// every record as well; it may be nil.
func NewConsoleHandler(renderID string, consoleChan chan<- ConsoleMessage, next slog.Handler, level slog.Leveler) *ConsoleHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &ConsoleHandler{
		renderID:    renderID,
		consoleChan: consoleChan,
		next:        next,
		level:       level,
	}
}

// Enabled implements slog.Handler
func (h *ConsoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level >= h.level.Level() {
		return true
	}
	return h.next != nil && h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler
func (h *ConsoleHandler) Handle(ctx context.Context, record slog.Record) error {
	if h.next != nil && h.next.Enabled(ctx, record.Level) {
		forwarded := record.Clone()
		forwarded.AddAttrs(slog.String("render", h.renderID))
		if err := h.next.Handle(ctx, forwarded); err != nil {
			return err
		}
	}

	if h.consoleChan == nil || record.Level < h.level.Level() {
		return nil
	}

	// Send without blocking the renderer; drop when the client falls behind
	select {
	case h.consoleChan <- ConsoleMessage{
		Message:   h.format(record),
		Timestamp: record.Time,
		Level:     consoleLevel(record.Level),
	}:
	default:
	}
	return nil
}

// WithAttrs implements slog.Handler
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	if h.next != nil {
		clone.next = h.next.WithAttrs(attrs)
	}
	return &clone
}

// WithGroup implements slog.Handler. Groups only apply to the server log.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	clone := *h
	if h.next != nil {
		clone.next = h.next.WithGroup(name)
	}
	return &clone
}

// format renders "message key=value ..." for the browser console
func (h *ConsoleHandler) format(record slog.Record) string {
	var b strings.Builder
	b.WriteString(record.Message)

	write := func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Resolve())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	record.Attrs(write)
	return b.String()
}

func consoleLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warning"
	case level >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}
