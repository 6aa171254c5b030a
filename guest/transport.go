package guest

import (
	"context"
)

// Transport delivers one host function call and returns the raw response.
type Transport interface {
	Call(ctx context.Context, function string, payload []byte) ([]byte, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, function string, payload []byte) ([]byte, error)

// Call implements Transport.
func (f TransportFunc) Call(ctx context.Context, function string, payload []byte) ([]byte, error) {
	return f(ctx, function, payload)
}
