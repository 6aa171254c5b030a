package wazero

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/reglet-dev/reglet-codec/hostfuncs"
	"github.com/reglet-dev/reglet-codec/internal/abi"
	"github.com/reglet-dev/reglet-codec/internal/testutil"
	"github.com/reglet-dev/reglet-codec/wireformat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

func TestDefaultAdapterConfig(t *testing.T) {
	cfg := defaultAdapterConfig()

	assert.Equal(t, "reglet_host", cfg.ModuleName)
	assert.Equal(t, uint32(hostfuncs.DefaultMaxRequestSize), cfg.MaxRequestSize)
	assert.NotNil(t, cfg.Logger)
}

func TestAdapterOptions(t *testing.T) {
	cfg := defaultAdapterConfig()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	WithModuleName("custom_module")(&cfg)
	WithMaxRequestSize(2048)(&cfg)
	WithLogger(logger)(&cfg)
	WithLogger(nil)(&cfg)

	assert.Equal(t, "custom_module", cfg.ModuleName)
	assert.Equal(t, uint32(2048), cfg.MaxRequestSize)
	assert.Same(t, logger, cfg.Logger)
}

func TestPluginNameContext(t *testing.T) {
	ctx := context.Background()
	_, ok := PluginNameFromContext(ctx)
	assert.False(t, ok)

	ctx = WithPluginName(ctx, "decoder")
	name, ok := PluginNameFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "decoder", name)
}

func newRegistry(t *testing.T) *hostfuncs.HandlerRegistry {
	t.Helper()
	registry, err := hostfuncs.NewRegistry(
		hostfuncs.WithBundle(hostfuncs.CodecBundle()),
		hostfuncs.WithMiddleware(hostfuncs.PanicRecoveryMiddleware()),
	)
	require.NoError(t, err)
	return registry
}

func TestRegisterWithRuntime_ExportsRegistry(t *testing.T) {
	ctx := context.Background()
	runtime := wazero.NewRuntime(ctx)
	t.Cleanup(func() { _ = runtime.Close(ctx) })

	registry := newRegistry(t)
	require.NoError(t, RegisterWithRuntime(ctx, runtime, registry))

	host := runtime.Module(DefaultModuleName)
	require.NotNil(t, host)
	defs := host.ExportedFunctionDefinitions()
	for _, name := range registry.Names() {
		def, ok := defs[name]
		require.True(t, ok, "missing export %s", name)
		assert.Equal(t, []api.ValueType{api.ValueTypeI64}, def.ParamTypes())
		assert.Equal(t, []api.ValueType{api.ValueTypeI64}, def.ResultTypes())
	}
}

func TestRegisterWithRuntime_DuplicateModule(t *testing.T) {
	ctx := context.Background()
	runtime := wazero.NewRuntime(ctx)
	t.Cleanup(func() { _ = runtime.Close(ctx) })

	registry := newRegistry(t)
	require.NoError(t, RegisterWithRuntime(ctx, runtime, registry))
	assert.Error(t, RegisterWithRuntime(ctx, runtime, registry))
}

// callGuest writes request into the proxy guest, calls through to the host
// function and returns the response bytes.
func callGuest(t *testing.T, function string, request []byte, opts ...AdapterOption) []byte {
	t.Helper()
	ctx := context.Background()
	runtime := wazero.NewRuntime(ctx)
	t.Cleanup(func() { _ = runtime.Close(ctx) })

	require.NoError(t, RegisterWithRuntime(ctx, runtime, newRegistry(t), opts...))

	guest, err := runtime.InstantiateWithConfig(ctx,
		testutil.ProxyGuest(DefaultModuleName, function),
		wazero.NewModuleConfig().WithName("guest"))
	require.NoError(t, err)

	ptr := uint32(0)
	if len(request) > 0 {
		ptr = testutil.RequestOffset
		require.True(t, guest.Memory().Write(ptr, request))
	}

	results, err := guest.ExportedFunction("call").Call(ctx, abi.PackPtrLen(ptr, uint32(len(request))))
	require.NoError(t, err)

	respPtr, respLen := abi.UnpackPtrLen(results[0])
	require.Equal(t, uint32(testutil.ResponseOffset), respPtr)
	data, ok := guest.Memory().Read(respPtr, respLen)
	require.True(t, ok)
	return bytes.Clone(data)
}

func TestHandleRegistryCall_HexDecode(t *testing.T) {
	resp := callGuest(t, hostfuncs.FuncHexDecode, []byte(`{"input":"48656c6c6f"}`))

	var out wireformat.DecodeResponseWire
	require.NoError(t, json.Unmarshal(resp, &out))
	assert.Nil(t, out.Error)
	assert.Equal(t, []byte("Hello"), out.Data)
	assert.Equal(t, 5, out.Written)
}

func TestHandleRegistryCall_Base64Units(t *testing.T) {
	resp := callGuest(t, hostfuncs.FuncBase64Decode, []byte(`{"units":[83,71,107,61]}`))

	var out wireformat.DecodeResponseWire
	require.NoError(t, json.Unmarshal(resp, &out))
	assert.Equal(t, []byte("Hi"), out.Data)
}

func TestHandleRegistryCall_RequestTooLarge(t *testing.T) {
	resp := callGuest(t, hostfuncs.FuncHexDecode, []byte(`{"input":"48656c6c6f"}`), WithMaxRequestSize(8))

	var out hostfuncs.ErrorResponse
	require.NoError(t, json.Unmarshal(resp, &out))
	assert.Equal(t, "VALIDATION_ERROR", out.Error)
	assert.Contains(t, out.Message, "exceeds maximum 8 bytes")
}

func TestHandleRegistryCall_NullPointer(t *testing.T) {
	ctx := context.Background()
	runtime := wazero.NewRuntime(ctx)
	t.Cleanup(func() { _ = runtime.Close(ctx) })
	require.NoError(t, RegisterWithRuntime(ctx, runtime, newRegistry(t)))

	guest, err := runtime.InstantiateWithConfig(ctx,
		testutil.ProxyGuest(DefaultModuleName, hostfuncs.FuncHexDecode),
		wazero.NewModuleConfig().WithName("guest"))
	require.NoError(t, err)

	results, err := guest.ExportedFunction("call").Call(ctx, abi.PackPtrLen(0, 12))
	require.NoError(t, err)

	ptr, length := abi.UnpackPtrLen(results[0])
	data, ok := guest.Memory().Read(ptr, length)
	require.True(t, ok)

	var out hostfuncs.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "VALIDATION_ERROR", out.Error)
	assert.Contains(t, out.Message, "null pointer")
}

func TestHandleRegistryCall_MalformedJSON(t *testing.T) {
	resp := callGuest(t, hostfuncs.FuncHexDecode, []byte(`{"input":`))

	var out hostfuncs.ErrorResponse
	require.NoError(t, json.Unmarshal(resp, &out))
	assert.Equal(t, "VALIDATION_ERROR", out.Error)
}
