package host

import (
	"log/slog"

	"github.com/reglet-dev/reglet-codec/hostfuncs"
	"github.com/reglet-dev/reglet-codec/infrastructure/wazero"
)

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithHostFunctions configures the executor with a host function registry.
// Without it the executor registers AllBundles behind panic recovery.
func WithHostFunctions(registry *hostfuncs.HandlerRegistry) Option {
	return func(e *Executor) {
		e.registry = registry
	}
}

// WithCodecOptions configures the codec bundle of the default registry.
func WithCodecOptions(opts ...hostfuncs.CodecOption) Option {
	return func(e *Executor) {
		e.codecOpts = append(e.codecOpts, opts...)
	}
}

// WithAdapterOptions configures how the registry is exposed to guests.
func WithAdapterOptions(opts ...wazero.AdapterOption) Option {
	return func(e *Executor) {
		e.adapterOpts = append(e.adapterOpts, opts...)
	}
}

// WithLogger sets the logger for guest log records and host diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}
