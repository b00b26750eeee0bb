package server

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "warn", "error"
}

// consoleHandler forwards log records to the server log and, as console
// events, to the clients watching a render
type consoleHandler struct {
	next    slog.Handler
	publish func(Event)
	attrs   []slog.Attr
}

func newConsoleHandler(next slog.Handler, publish func(Event)) *consoleHandler {
	return &consoleHandler{next: next, publish: publish}
}

func (h *consoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo || h.next.Enabled(ctx, level)
}

func (h *consoleHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= slog.LevelInfo {
		h.publish(Event{Type: EventConsole, Console: &ConsoleMessage{
			Message:   formatRecord(record, h.attrs),
			Timestamp: record.Time,
			Level:     strings.ToLower(record.Level.String()),
		}})
	}
	if h.next.Enabled(ctx, record.Level) {
		return h.next.Handle(ctx, record)
	}
	return nil
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &consoleHandler{
		next:    h.next.WithAttrs(attrs),
		publish: h.publish,
		attrs:   append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	return &consoleHandler{next: h.next.WithGroup(name), publish: h.publish, attrs: h.attrs}
}

// formatRecord renders "message key=value ..." for the browser console
func formatRecord(record slog.Record, attrs []slog.Attr) string {
	var sb strings.Builder
	sb.WriteString(record.Message)
	write := func(a slog.Attr) bool {
		sb.WriteString(" ")
		sb.WriteString(a.Key)
		sb.WriteString("=")
		sb.WriteString(a.Value.String())
		return true
	}
	for _, a := range attrs {
		write(a)
	}
	record.Attrs(write)
	return sb.String()
}
