package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/reglet-dev/reglet-codec/hostfuncs"
	"github.com/reglet-dev/reglet-codec/infrastructure/wazero"
	"github.com/reglet-dev/reglet-codec/internal/abi"
	wz "github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// ErrExportNotFound is returned when a guest lacks a requested export.
var ErrExportNotFound = errors.New("export not found")

// Executor manages the lifecycle of WASM guests sharing one runtime.
type Executor struct {
	runtime     wz.Runtime
	registry    *hostfuncs.HandlerRegistry
	logger      *slog.Logger
	codecOpts   []hostfuncs.CodecOption
	adapterOpts []wazero.AdapterOption
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}

	if e.registry == nil {
		reg, err := hostfuncs.NewRegistry(
			hostfuncs.WithBundle(hostfuncs.CombineBundles(
				hostfuncs.CodecBundle(e.codecOpts...),
				hostfuncs.LogBundle(e.logger),
			)),
			hostfuncs.WithMiddleware(
				hostfuncs.PanicRecoveryMiddleware(),
				hostfuncs.LoggingMiddleware(e.logger),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create default registry: %w", err)
		}
		e.registry = reg
	}

	rt := wz.NewRuntime(ctx)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate WASI: %w", err)
	}
	e.runtime = rt

	adapterOpts := append([]wazero.AdapterOption{wazero.WithLogger(e.logger)}, e.adapterOpts...)
	if err := wazero.RegisterWithRuntime(ctx, rt, e.registry, adapterOpts...); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}

	return e, nil
}

// Registry returns the host functions exposed to guests.
func (e *Executor) Registry() *hostfuncs.HandlerRegistry {
	return e.registry
}

// Close releases resources held by the executor and every loaded plugin.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// PluginInstance represents an instantiated WASM plugin.
type PluginInstance struct {
	name   string
	module api.Module
}

// LoadPlugin instantiates a WASM module under the given name.
// Reactor modules exporting "_initialize" are initialized before returning.
func (e *Executor) LoadPlugin(ctx context.Context, name string, wasmBytes []byte) (*PluginInstance, error) {
	cfg := wz.NewModuleConfig().WithName(name).WithStartFunctions()
	mod, err := e.runtime.InstantiateWithConfig(wazero.WithPluginName(ctx, name), wasmBytes, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module %q: %w", name, err)
	}

	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(wazero.WithPluginName(ctx, name)); err != nil {
			_ = mod.Close(ctx)
			return nil, fmt.Errorf("failed to call _initialize: %w", err)
		}
	}

	e.logger.DebugContext(ctx, "plugin loaded", "plugin", name)
	return &PluginInstance{name: name, module: mod}, nil
}

// Name returns the name the plugin was loaded under.
func (p *PluginInstance) Name() string {
	return p.name
}

// Close releases the plugin's module.
func (p *PluginInstance) Close(ctx context.Context) error {
	return p.module.Close(ctx)
}

// Call invokes a guest export with the signature (i64) -> i64. The payload is
// copied into memory obtained from the guest's "allocate" export and the
// response is copied out; a "deallocate" export, when present, frees it.
func (p *PluginInstance) Call(ctx context.Context, export string, payload []byte) ([]byte, error) {
	ctx = wazero.WithPluginName(ctx, p.name)

	f := p.module.ExportedFunction(export)
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrExportNotFound, export)
	}

	packed, err := p.writeInput(ctx, payload)
	if err != nil {
		return nil, err
	}

	results, err := f.Call(ctx, packed)
	if err != nil {
		return nil, fmt.Errorf("call %q: %w", export, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	return p.readOutput(ctx, results[0])
}

func (p *PluginInstance) writeInput(ctx context.Context, input []byte) (uint64, error) {
	if len(input) == 0 {
		return 0, nil
	}

	allocate := p.module.ExportedFunction("allocate")
	if allocate == nil {
		return 0, fmt.Errorf("%w: guest does not export 'allocate'", ErrExportNotFound)
	}
	res, err := allocate.Call(ctx, uint64(len(input)))
	if err != nil {
		return 0, fmt.Errorf("failed to allocate in guest: %w", err)
	}
	if len(res) == 0 {
		return 0, errors.New("allocate returned no results")
	}

	ptr := uint32(res[0]) //nolint:gosec // G115: WASM32 pointers are always 32-bit
	if !p.module.Memory().Write(ptr, input) {
		return 0, errors.New("failed to write input to guest memory")
	}
	return abi.PackPtrLen(ptr, uint32(len(input))), nil //nolint:gosec // G115: bounded by guest memory
}

func (p *PluginInstance) readOutput(ctx context.Context, packed uint64) ([]byte, error) {
	ptr, length := abi.UnpackPtrLen(packed)
	if length == 0 {
		return nil, nil
	}
	if err := abi.CheckPtrLen(ptr, length); err != nil {
		return nil, err
	}

	data, ok := p.module.Memory().Read(ptr, length)
	if !ok {
		return nil, fmt.Errorf("response [%d, %d) is outside guest memory", ptr, uint64(ptr)+uint64(length))
	}
	out := make([]byte, len(data))
	copy(out, data)

	if dealloc := p.module.ExportedFunction("deallocate"); dealloc != nil {
		if _, err := dealloc.Call(ctx, uint64(ptr), uint64(length)); err != nil {
			return nil, fmt.Errorf("failed to free response: %w", err)
		}
	}
	return out, nil
}
