// Package wazero exposes a hostfuncs.HandlerRegistry to WebAssembly guests
// running in the wazero runtime.
//
// Every handler is exported from one host module (default "reglet_host") with
// the signature (i64) -> i64. The argument and the result pack a guest memory
// pointer in the high 32 bits and a length in the low 32 bits. The guest
// must export "allocate" so the host can place responses in its memory; the
// guest owns and frees that memory afterwards.
//
// # Basic Usage
//
//	registry, err := hostfuncs.NewRegistry(
//	    hostfuncs.WithBundle(hostfuncs.AllBundles()),
//	)
//	if err != nil {
//	    return err
//	}
//
//	runtime := wazero.NewRuntime(ctx)
//	err = wazero.RegisterWithRuntime(ctx, runtime, registry)
//
// Failures never trap the guest: oversized requests, bad pointers and handler
// errors come back as hostfuncs.ErrorResponse JSON.
package wazero
