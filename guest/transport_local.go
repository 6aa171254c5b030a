//go:build !wasip1

package guest

import (
	"context"
	"sync"

	"github.com/reglet-dev/reglet-codec/hostfuncs"
)

// LocalTransport calls handlers of an in-process registry.
type LocalTransport struct {
	registry *hostfuncs.HandlerRegistry
}

// NewLocalTransport returns a transport that invokes registry directly.
func NewLocalTransport(registry *hostfuncs.HandlerRegistry) *LocalTransport {
	return &LocalTransport{registry: registry}
}

// Call implements Transport.
func (t *LocalTransport) Call(ctx context.Context, function string, payload []byte) ([]byte, error) {
	return t.registry.Invoke(ctx, function, payload)
}

var defaultRegistry = sync.OnceValues(func() (*hostfuncs.HandlerRegistry, error) {
	return hostfuncs.NewRegistry(
		hostfuncs.WithBundle(hostfuncs.AllBundles()),
		hostfuncs.WithMiddleware(hostfuncs.PanicRecoveryMiddleware()),
	)
})

// DefaultTransport returns a transport over an in-process registry holding
// every built-in bundle.
func DefaultTransport() Transport {
	reg, err := defaultRegistry()
	if err != nil {
		return TransportFunc(func(context.Context, string, []byte) ([]byte, error) {
			return nil, err
		})
	}
	return NewLocalTransport(reg)
}
