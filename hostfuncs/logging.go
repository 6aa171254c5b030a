package hostfuncs

import (
	"context"
	"log/slog"

	"github.com/reglet-dev/reglet-codec/domain/entities"
	"github.com/reglet-dev/reglet-codec/log"
)

// LogMessageResponse acknowledges a forwarded guest log record.
type LogMessageResponse struct {
	Error *entities.ErrorDetail `json:"error,omitempty"`
}

// newLogMessageFunc returns a host function that replays guest log records
// through logger. A nil logger uses slog.Default() at call time.
func newLogMessageFunc(logger *slog.Logger) HostFunc[log.LogMessageWire, LogMessageResponse] {
	return func(ctx context.Context, msg log.LogMessageWire) LogMessageResponse {
		record, err := msg.Record()
		if err != nil {
			return LogMessageResponse{Error: entities.NewErrorDetail("validation", err.Error()).WithCode("log_level")}
		}

		l := logger
		if l == nil {
			l = slog.Default()
		}
		if !l.Enabled(ctx, record.Level) {
			return LogMessageResponse{}
		}
		record.AddAttrs(slog.String("source", "guest"))
		if err := l.Handler().Handle(ctx, record); err != nil {
			return LogMessageResponse{Error: entities.NewErrorDetail("internal", err.Error())}
		}
		return LogMessageResponse{}
	}
}

// PerformLogMessage writes a guest log record to slog.Default().
func PerformLogMessage(ctx context.Context, msg log.LogMessageWire) LogMessageResponse {
	return newLogMessageFunc(nil)(ctx, msg)
}
