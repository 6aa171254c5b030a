package hostfuncs

import (
	"context"
	"log/slog"

	"github.com/reglet-dev/reglet-codec/wireformat"
)

// Host function names exported by the built-in bundles.
const (
	FuncBase64Decode      = "base64_decode"
	FuncBase64DecodedSize = "base64_decoded_size"
	FuncHexDecode         = "hex_decode"
	FuncStringEncode      = "string_encode"
	FuncStringDecode      = "string_decode"
	FuncLogMessage        = "log_message"
)

// HostFuncBundle is a pre-configured set of related host functions.
// Bundles allow registering multiple handlers at once for common use cases.
type HostFuncBundle interface {
	// Handlers returns a map of handler names to ByteHandler functions.
	Handlers() map[string]ByteHandler
}

// staticBundle implements HostFuncBundle with a fixed set of handlers.
type staticBundle struct {
	handlers map[string]ByteHandler
}

func (b *staticBundle) Handlers() map[string]ByteHandler {
	return b.handlers
}

// CodecBundle returns a bundle with the codec host functions:
// base64_decode, base64_decoded_size, hex_decode, string_encode, string_decode.
func CodecBundle(opts ...CodecOption) HostFuncBundle {
	cfg := defaultCodecConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	f := newCodecFuncs(cfg)

	return &staticBundle{
		handlers: map[string]ByteHandler{
			FuncBase64Decode:      NewJSONHandler(reporting(f.base64Decode)),
			FuncBase64DecodedSize: NewJSONHandler(PerformBase64DecodedSize),
			FuncHexDecode:         NewJSONHandler(reporting(f.hexDecode)),
			FuncStringEncode:      NewJSONHandler(PerformStringEncode),
			FuncStringDecode:      NewJSONHandler(reporting(f.stringDecode)),
		},
	}
}

// reporting adapts a decode function to a HostFunc that records its outcome
// on the HostContext for middleware.
func reporting[Req any](decode func(Req) wireformat.DecodeResponseWire) HostFunc[Req, wireformat.DecodeResponseWire] {
	return func(ctx context.Context, req Req) wireformat.DecodeResponseWire {
		resp := decode(req)
		reportDecode(ctx, resp)
		return resp
	}
}

// LogBundle returns a bundle with the guest logging host function:
// log_message. Records are written to logger, or slog.Default() when nil.
func LogBundle(logger *slog.Logger) HostFuncBundle {
	return &staticBundle{
		handlers: map[string]ByteHandler{
			FuncLogMessage: NewJSONHandler(newLogMessageFunc(logger)),
		},
	}
}

// compositeBundle combines multiple bundles into one.
type compositeBundle struct {
	bundles []HostFuncBundle
}

func (b *compositeBundle) Handlers() map[string]ByteHandler {
	result := make(map[string]ByteHandler)
	for _, bundle := range b.bundles {
		for name, handler := range bundle.Handlers() {
			result[name] = handler
		}
	}
	return result
}

// CombineBundles merges bundles; later bundles win on name clashes.
func CombineBundles(bundles ...HostFuncBundle) HostFuncBundle {
	return &compositeBundle{bundles: bundles}
}

// AllBundles returns a bundle containing all built-in host functions with
// default settings.
func AllBundles() HostFuncBundle {
	return CombineBundles(CodecBundle(), LogBundle(nil))
}

// WithBundle registers all handlers from a bundle.
func WithBundle(bundle HostFuncBundle) RegistryOption {
	return func(b *registryBuilder) {
		for name, handler := range bundle.Handlers() {
			b.add(name, handler)
		}
	}
}

// WithHandler registers a typed host function with automatic JSON handling.
//
// Example usage:
//
//	WithHandler("echo", func(ctx context.Context, req EchoRequest) EchoResponse {
//	    return EchoResponse{Text: req.Text}
//	})
func WithHandler[Req any, Resp any](name string, fn HostFunc[Req, Resp]) RegistryOption {
	return func(b *registryBuilder) {
		b.add(name, NewJSONHandler(fn))
	}
}
