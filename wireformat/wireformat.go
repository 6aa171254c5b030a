// Package wireformat defines the JSON wire format structures for communication
// between the WASM host and guest extensions. These types must remain stable
// and backward compatible as they define the ABI contract.
package wireformat

import (
	"github.com/reglet-dev/reglet-codec/domain/entities"
)

// ErrorDetail is the structured error embedded in every response.
type ErrorDetail = entities.ErrorDetail

// EncodedInputWire carries encoded text from Guest to Host. Guests holding
// UTF-16 strings send Units; everyone else sends Input. Units wins when both
// are present.
type EncodedInputWire struct {
	Input string   `json:"input,omitempty" jsonschema:"description=Encoded text as 8-bit code units"`
	Units []uint16 `json:"units,omitempty" jsonschema:"description=Encoded text as UTF-16 code units"`
}

// Wide reports whether the input is carried as 16-bit units.
func (w EncodedInputWire) Wide() bool {
	return len(w.Units) > 0
}

// Len returns the number of code units in the input.
func (w EncodedInputWire) Len() int {
	if w.Wide() {
		return len(w.Units)
	}
	return len(w.Input)
}

// DecodeRequestWire is the request for base64_decode and hex_decode.
type DecodeRequestWire struct {
	// Capacity is the size of the output buffer. When omitted the host sizes
	// the buffer from the input.
	Capacity *int `json:"capacity,omitempty" validate:"omitempty,gte=0" jsonschema:"minimum=0"`
	EncodedInputWire
}

// DecodeResponseWire is the response for base64_decode, hex_decode and string_decode.
type DecodeResponseWire struct {
	Error *ErrorDetail `json:"error,omitempty"`
	Data  []byte       `json:"data"`
	// Written is the number of bytes decoded into Data.
	Written int `json:"written"`
	// Expected is the sizing estimate for the input. For Base64 it counts
	// skipped units too, so it may exceed what the input actually decodes to.
	Expected int `json:"expected"`
	// Truncated is set when a buffer of Expected bytes would have received
	// more than Written.
	Truncated bool `json:"truncated,omitempty"`
}

// SizeRequestWire is the request for base64_decoded_size.
type SizeRequestWire struct {
	EncodedInputWire
}

// SizeResponseWire is the response for base64_decoded_size.
type SizeResponseWire struct {
	Error *ErrorDetail `json:"error,omitempty"`
	Size  int          `json:"size"`
}

// StringDecodeRequestWire is the request for string_decode.
type StringDecodeRequestWire struct {
	Capacity *int   `json:"capacity,omitempty" validate:"omitempty,gte=0" jsonschema:"minimum=0"`
	Input    string `json:"input"`
	// Encoding defaults to "binary" when empty.
	Encoding string `json:"encoding,omitempty" validate:"omitempty,encoding" jsonschema:"enum=ascii,enum=utf8,enum=base64,enum=ucs2,enum=binary,enum=hex,enum=buffer"`
}

// StringEncodeRequestWire is the request for string_encode.
type StringEncodeRequestWire struct {
	Data     []byte `json:"data"`
	Encoding string `json:"encoding" validate:"required,encoding" jsonschema:"required,enum=ascii,enum=utf8,enum=base64,enum=ucs2,enum=binary,enum=hex,enum=buffer"`
}

// StringEncodeResponseWire is the response for string_encode.
type StringEncodeResponseWire struct {
	Error *ErrorDetail `json:"error,omitempty"`
	Text  string       `json:"text"`
}
