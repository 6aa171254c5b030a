package hostfuncs

import (
	"encoding/json"
	stdErrors "errors"

	domainerrors "github.com/reglet-dev/reglet-codec/domain/errors"
)

// ErrorResponse represents a structured error that can be returned as JSON to guests.
// Guests receive consistent, parseable errors instead of WASM traps.
type ErrorResponse struct {
	// Error is a machine-readable error type identifier (e.g., "VALIDATION_ERROR", "INTERNAL_ERROR").
	Error string `json:"error"`

	// Message is a human-readable error description.
	Message string `json:"message"`

	// Code is a numeric error code (e.g., 400, 500).
	Code int `json:"code"`
}

// ToJSON serializes the ErrorResponse to JSON bytes.
func (e ErrorResponse) ToJSON() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	return data
}

// NewValidationError creates an error response for bad input (e.g., malformed JSON).
func NewValidationError(message string) ErrorResponse {
	return ErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Code:    400,
	}
}

// NewNotFoundError creates an error response for unknown handler names.
func NewNotFoundError(name string) ErrorResponse {
	return ErrorResponse{
		Error:   "NOT_FOUND",
		Message: "unknown host function: " + name,
		Code:    404,
	}
}

// NewInternalError creates an error response for unexpected failures.
func NewInternalError(message string) ErrorResponse {
	return ErrorResponse{
		Error:   "INTERNAL_ERROR",
		Message: message,
		Code:    500,
	}
}

// NewPanicError creates an error response for recovered panics.
func NewPanicError(panicValue any) ErrorResponse {
	var msg string
	if err, ok := panicValue.(error); ok {
		msg = err.Error()
	} else if s, ok := panicValue.(string); ok {
		msg = s
	} else {
		msg = "panic recovered"
	}
	return ErrorResponse{
		Error:   "INTERNAL_ERROR",
		Message: "panic: " + msg,
		Code:    500,
	}
}

// NewErrorResponse maps a Go error to an ErrorResponse. Validation and
// request size errors become VALIDATION_ERROR, everything else INTERNAL_ERROR.
func NewErrorResponse(err error) ErrorResponse {
	var sizeErr *domainerrors.RequestSizeError
	if stdErrors.As(err, &sizeErr) {
		return NewValidationError(err.Error())
	}
	if domainerrors.ToErrorDetail(err).Type == "validation" {
		return NewValidationError(err.Error())
	}
	return NewInternalError(err.Error())
}
