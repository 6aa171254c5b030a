// Package hostfuncs provides the host side of the codec binding layer as pure
// Go byte handlers. It has NO WASM runtime dependencies: any runtime adapter
// copies the request out of guest memory, calls HandlerRegistry.Invoke and
// copies the response back.
//
// Built-in bundles expose the codec package (base64_decode, hex_decode,
// base64_decoded_size, string_encode, string_decode) and guest logging
// (log_message).
package hostfuncs
