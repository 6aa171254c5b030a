// Package host runs WebAssembly guests that use the codec host functions.
//
// An Executor owns a wazero runtime with WASI preview 1, exposes a
// hostfuncs.HandlerRegistry as the "reglet_host" import module, and loads
// guest modules. PluginInstance.Call invokes a guest export using the same
// packed i64 ptr+len convention the host functions use.
package host
