package hostfuncs

import (
	"context"
	"sync"

	"github.com/reglet-dev/reglet-codec/wireformat"
)

// HostContext is the context every handler receives from HandlerRegistry.Invoke.
// It names the function being served and carries values that handlers report
// back to middleware, such as decode statistics.
type HostContext interface {
	context.Context

	// FunctionName returns the name of the host function being invoked.
	FunctionName() string

	// SetValue stores a value for the duration of one invocation.
	SetValue(key, value any)

	// GetValue retrieves a value set by SetValue.
	GetValue(key any) (value any, ok bool)
}

// StatKey names a decode statistic reported through HostContext.
type StatKey string

// Statistics recorded by the decode handlers.
const (
	StatWritten   StatKey = "written"
	StatExpected  StatKey = "expected"
	StatTruncated StatKey = "truncated"
)

var statKeys = []StatKey{StatWritten, StatExpected, StatTruncated}

type hostContext struct {
	context.Context
	funcName string

	mu     sync.Mutex
	values map[any]any
}

// NewHostContext wraps ctx for an invocation of funcName.
func NewHostContext(ctx context.Context, funcName string) HostContext {
	return &hostContext{Context: ctx, funcName: funcName}
}

func (c *hostContext) FunctionName() string {
	return c.funcName
}

func (c *hostContext) SetValue(key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = value
}

func (c *hostContext) GetValue(key any) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	return v, ok
}

// HostContextFrom returns ctx itself when it already is a HostContext and
// wraps it otherwise.
func HostContextFrom(ctx context.Context, funcName string) HostContext {
	if hc, ok := ctx.(HostContext); ok {
		return hc
	}
	return NewHostContext(ctx, funcName)
}

// reportDecode records the outcome of a decode on ctx.
func reportDecode(ctx context.Context, resp wireformat.DecodeResponseWire) {
	hc, ok := ctx.(HostContext)
	if !ok {
		return
	}
	hc.SetValue(StatWritten, resp.Written)
	hc.SetValue(StatExpected, resp.Expected)
	hc.SetValue(StatTruncated, resp.Truncated)
}

// statAttrs returns the statistics recorded on ctx as slog key/value pairs.
func statAttrs(ctx context.Context) []any {
	hc, ok := ctx.(HostContext)
	if !ok {
		return nil
	}
	var attrs []any
	for _, key := range statKeys {
		if v, ok := hc.GetValue(key); ok {
			attrs = append(attrs, string(key), v)
		}
	}
	return attrs
}
