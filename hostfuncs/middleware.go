package hostfuncs

import (
	"context"
	"log/slog"
	"time"
)

// Middleware is a function that wraps a ByteHandler to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
type Middleware func(next ByteHandler) ByteHandler

// RegistryOption is a functional option for configuring a HandlerRegistry.
type RegistryOption func(*registryBuilder)

// PanicRecoveryMiddleware returns a middleware that catches panics and converts
// them to structured ErrorResponse JSON instead of crashing the host.
func PanicRecoveryMiddleware() Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) (resp []byte, err error) {
			defer func() {
				if r := recover(); r != nil {
					slog.ErrorContext(ctx, "hostfuncs: recovered panic", "function", functionName(ctx), "panic", r)
					resp = NewPanicError(r).ToJSON()
					err = nil
				}
			}()
			return next(ctx, payload)
		}
	}
}

// LoggingMiddleware returns a middleware that logs every invocation at debug
// level and failures at error level. A nil logger uses slog.Default().
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			l := logger
			if l == nil {
				l = slog.Default()
			}
			name := functionName(ctx)
			start := time.Now()

			resp, err := next(ctx, payload)
			if err != nil {
				l.ErrorContext(ctx, "host function failed", "function", name, "error", err)
				return resp, err
			}
			attrs := append([]any{
				"function", name,
				"request_bytes", len(payload),
				"response_bytes", len(resp),
				"duration", time.Since(start),
			}, statAttrs(ctx)...)
			l.DebugContext(ctx, "host function completed", attrs...)
			return resp, nil
		}
	}
}
