//go:build wasip1

package guest

import (
	"context"
	"fmt"

	"github.com/reglet-dev/reglet-codec/internal/abi"
)

//go:wasmimport reglet_host base64_decode
//nolint:revive // intentional snake_case to match WASM import convention
func host_base64_decode(requestPacked uint64) uint64

//go:wasmimport reglet_host base64_decoded_size
//nolint:revive // intentional snake_case to match WASM import convention
func host_base64_decoded_size(requestPacked uint64) uint64

//go:wasmimport reglet_host hex_decode
//nolint:revive // intentional snake_case to match WASM import convention
func host_hex_decode(requestPacked uint64) uint64

//go:wasmimport reglet_host string_encode
//nolint:revive // intentional snake_case to match WASM import convention
func host_string_encode(requestPacked uint64) uint64

//go:wasmimport reglet_host string_decode
//nolint:revive // intentional snake_case to match WASM import convention
func host_string_decode(requestPacked uint64) uint64

//go:wasmimport reglet_host log_message
//nolint:revive // intentional snake_case to match WASM import convention
func host_log_message(requestPacked uint64) uint64

var hostImports = map[string]func(uint64) uint64{
	funcBase64Decode:      host_base64_decode,
	funcBase64DecodedSize: host_base64_decoded_size,
	funcHexDecode:         host_hex_decode,
	funcStringEncode:      host_string_encode,
	funcStringDecode:      host_string_decode,
	funcLogMessage:        host_log_message,
}

// hostTransport calls the host through wasm imports.
type hostTransport struct{}

func (hostTransport) Call(_ context.Context, function string, payload []byte) ([]byte, error) {
	fn, ok := hostImports[function]
	if !ok {
		return nil, fmt.Errorf("guest: no host import for %q", function)
	}

	request := abi.PtrFromBytes(payload)
	defer abi.Free(request)

	response := fn(request)
	if response == 0 {
		return nil, fmt.Errorf("guest: host returned no response for %s", function)
	}
	return abi.BytesFromPtr(response), nil
}

// DefaultTransport returns the transport backed by the reglet_host imports.
func DefaultTransport() Transport {
	return hostTransport{}
}
