// Package errors provides domain-specific error types for the codec host layer.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/reglet-dev/reglet-codec/codec"
	"github.com/reglet-dev/reglet-codec/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is implemented by errors that can describe themselves as an
// ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to a structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	if stdErrors.Is(err, codec.ErrUnknownEncoding) {
		return &entities.ErrorDetail{Message: err.Error(), Type: "validation", Code: "unknown_encoding"}
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// CodecError reports a failed encode or decode at the host boundary.
type CodecError struct {
	Err      error
	Op       string
	Encoding string
}

func (e *CodecError) Error() string {
	if e.Encoding != "" {
		return fmt.Sprintf("%s (%s) failed: %v", e.Op, e.Encoding, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *CodecError) ToErrorDetail() *entities.ErrorDetail {
	detail := &entities.ErrorDetail{Message: e.Error(), Type: "codec", Code: e.Op}
	if stdErrors.Is(e.Err, codec.ErrUnknownEncoding) {
		detail.Type = "validation"
	}
	return detail
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}

// ValidationError reports a host function request that failed validation.
type ValidationError struct {
	Err      error
	Function string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s request: %v", e.Function, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ValidationError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "validation", Code: e.Function}
}

// RequestSizeError reports a guest request larger than the host accepts.
type RequestSizeError struct {
	Size  uint32
	Limit uint32
}

func (e *RequestSizeError) Error() string {
	return fmt.Sprintf("request size %d exceeds maximum %d bytes", e.Size, e.Limit)
}

// ToErrorDetail implements DetailedError.
func (e *RequestSizeError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "validation", Code: "request_size"}
}

// WireFormatError represents a wire format encoding/decoding error.
type WireFormatError struct {
	Err       error
	Operation string
	Type      string
}

func (e *WireFormatError) Error() string {
	return fmt.Sprintf("wire format %s failed for %s: %v", e.Operation, e.Type, e.Err)
}

func (e *WireFormatError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *WireFormatError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "wire_format", Code: e.Operation}
}
