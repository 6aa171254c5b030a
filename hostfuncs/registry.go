package hostfuncs

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrEmptyHandlerName is returned when a handler is registered without a name.
	ErrEmptyHandlerName = errors.New("handler name cannot be empty")

	// ErrDuplicateHandler is returned when two handlers share a name.
	ErrDuplicateHandler = errors.New("duplicate handler name")
)

// HandlerRegistry maps host function names to handlers. It is built once by
// NewRegistry and never changes afterwards, so lookups need no locking.
type HandlerRegistry struct {
	handlers map[string]ByteHandler
	names    []string
}

type registryBuilder struct {
	handlers   map[string]ByteHandler
	middleware []Middleware
	errs       []error
}

// NewRegistry builds a registry from opts. Every registration error is
// reported, joined.
//
// Example usage:
//
//	registry, err := NewRegistry(
//	    WithMiddleware(PanicRecoveryMiddleware(), LoggingMiddleware(nil)),
//	    WithBundle(CodecBundle(WithMaxOutputSize(1<<20))),
//	    WithHandler("echo", echo),
//	)
func NewRegistry(opts ...RegistryOption) (*HandlerRegistry, error) {
	b := &registryBuilder{handlers: make(map[string]ByteHandler)}
	for _, opt := range opts {
		opt(b)
	}
	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}

	wrapped := make(map[string]ByteHandler, len(b.handlers))
	for name, h := range b.handlers {
		wrapped[name] = chain(h, b.middleware)
	}

	return &HandlerRegistry{
		handlers: wrapped,
		names:    slices.Sorted(maps.Keys(b.handlers)),
	}, nil
}

// chain wraps h so that mw[0] runs outermost.
func chain(h ByteHandler, mw []Middleware) ByteHandler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// Invoke dispatches a host function call by name.
// Unknown names yield a NOT_FOUND ErrorResponse rather than a Go error.
func (r *HandlerRegistry) Invoke(ctx context.Context, name string, payload []byte) ([]byte, error) {
	handler, ok := r.handlers[name]
	if !ok {
		return NewNotFoundError(name).ToJSON(), nil
	}
	return handler(HostContextFrom(ctx, name), payload)
}

// Has reports whether name is registered.
func (r *HandlerRegistry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Len returns the number of registered handlers.
func (r *HandlerRegistry) Len() int {
	return len(r.names)
}

// Names returns the registered names in sorted order.
func (r *HandlerRegistry) Names() []string {
	return slices.Clone(r.names)
}

func (b *registryBuilder) add(name string, handler ByteHandler) {
	if name == "" {
		b.errs = append(b.errs, ErrEmptyHandlerName)
		return
	}
	if _, exists := b.handlers[name]; exists {
		b.errs = append(b.errs, fmt.Errorf("%w: %q", ErrDuplicateHandler, name))
		return
	}
	b.handlers[name] = handler
}

// WithByteHandler registers a raw ByteHandler with the given name.
// Use WithHandler for type-safe registration with automatic JSON handling.
func WithByteHandler(name string, handler ByteHandler) RegistryOption {
	return func(b *registryBuilder) {
		b.add(name, handler)
	}
}

// WithMiddleware adds middleware to the registry.
// Middleware executes in FIFO order (first added wraps first).
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}
