package hostfuncs

import (
	"context"
	"encoding/json"
	"fmt"

	domainerrors "github.com/reglet-dev/reglet-codec/domain/errors"
)

// HostFunc is a generic function signature for host functions.
// It accepts a context and a typed request, and returns a typed response.
type HostFunc[Req any, Resp any] func(context.Context, Req) Resp

// ByteHandler is a function that accepts raw bytes (JSON) and returns raw bytes (JSON).
// This is the common interface that WASM runtimes can easily use.
type ByteHandler func(context.Context, []byte) ([]byte, error)

// NewJSONHandler wraps a typed HostFunc into a ByteHandler.
//
// Requests that fail to unmarshal or fail struct validation produce a
// VALIDATION_ERROR response rather than a Go error, so the guest always gets
// JSON back. Only response marshalling failures surface as Go errors.
//
// Usage:
//
//	decode := hostfuncs.NewJSONHandler(hostfuncs.PerformHexDecode)
//	respBytes, err := decode(ctx, []byte(`{"input":"616263"}`))
func NewJSONHandler[Req any, Resp any](fn HostFunc[Req, Resp]) ByteHandler {
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		var req Req
		if err := json.Unmarshal(payload, &req); err != nil {
			return NewValidationError(fmt.Sprintf("failed to unmarshal request: %v", err)).ToJSON(), nil
		}

		if err := validateRequest(req); err != nil {
			verr := &domainerrors.ValidationError{Function: functionName(ctx), Err: err}
			return NewValidationError(verr.Error()).ToJSON(), nil
		}

		resp := fn(ctx, req)

		respBytes, err := json.Marshal(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}

		return respBytes, nil
	}
}

// functionName returns the invoked function name, or "unknown" outside a HostContext.
func functionName(ctx context.Context) string {
	if hc, ok := ctx.(HostContext); ok && hc.FunctionName() != "" {
		return hc.FunctionName()
	}
	return "unknown"
}
