// Package codec implements the byte/string conversion helpers used at the
// boundary between a host runtime and its extensions.
//
// The Base64 and Hex decoders operate on raw code units (8-bit or 16-bit) and
// write into a caller-supplied buffer. They never return errors: a short count
// means the buffer filled up or the input was malformed. Base64 decoding is
// lenient (unknown units are skipped) while Hex decoding stops at the first
// invalid digit pair.
//
// All functions are safe for concurrent use; the only shared state is the
// read-only Base64 lookup table.
package codec
