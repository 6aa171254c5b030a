package guest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/reglet-dev/reglet-codec/log"
)

// LogHandler is a slog.Handler that forwards records to the host's
// log_message function. Filtering by level happens on the guest; the host
// applies its own level again.
type LogHandler struct {
	transport Transport
	level     slog.Leveler
	attrs     []slog.Attr
	group     string
}

// NewLogHandler returns a handler sending records through t, or
// DefaultTransport when t is nil. A nil level means slog.LevelInfo.
func NewLogHandler(t Transport, level slog.Leveler) *LogHandler {
	if t == nil {
		t = DefaultTransport()
	}
	if level == nil {
		level = slog.LevelInfo
	}
	return &LogHandler{transport: t, level: level}
}

// Enabled implements slog.Handler.
func (h *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler. Delivery failures are reported on stderr
// instead of returned, so logging never breaks the caller.
func (h *LogHandler) Handle(ctx context.Context, record slog.Record) error {
	r := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	r.AddAttrs(h.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		r.AddAttrs(h.qualify(a))
		return true
	})

	payload, err := json.Marshal(log.RecordToWire(r))
	if err != nil {
		fmt.Fprintf(os.Stderr, "guest: failed to marshal log message: %v, original: %s\n", err, record.Message)
		return nil
	}
	if _, err := h.transport.Call(ctx, funcLogMessage, payload); err != nil {
		fmt.Fprintf(os.Stderr, "guest: failed to send log message: %v, original: %s\n", err, record.Message)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, h.qualify(a))
	}
	return &clone
}

// WithGroup implements slog.Handler. Groups become dotted key prefixes.
func (h *LogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = h.qualifyKey(name)
	return &clone
}

func (h *LogHandler) qualify(a slog.Attr) slog.Attr {
	a.Key = h.qualifyKey(a.Key)
	return a
}

func (h *LogHandler) qualifyKey(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}
