package hostfuncs

import (
	"context"

	"github.com/reglet-dev/reglet-codec/codec"
	domainerrors "github.com/reglet-dev/reglet-codec/domain/errors"
	"github.com/reglet-dev/reglet-codec/wireformat"
)

// CodecOption configures the codec host functions.
type CodecOption func(*codecConfig)

type codecConfig struct {
	maxOutputSize int
}

func defaultCodecConfig() codecConfig {
	return codecConfig{maxOutputSize: DefaultMaxOutputSize}
}

// WithMaxOutputSize caps the output buffer of every decode call.
// Non-positive values are ignored.
func WithMaxOutputSize(n int) CodecOption {
	return func(c *codecConfig) {
		if n > 0 {
			c.maxOutputSize = n
		}
	}
}

// outputCapacity picks the buffer size for a decode: the requested capacity
// if any, otherwise the estimate, never more than the configured maximum.
func (c codecConfig) outputCapacity(requested *int, estimate int) int {
	n := estimate
	if requested != nil {
		n = *requested
	}
	return max(0, min(n, c.maxOutputSize))
}

// decodeResult builds the response for a decoder that wrote n bytes into buf.
// When buf was smaller than expected, decode is re-run with room for expected
// bytes to tell truncation apart from malformed or padded input.
func decodeResult(buf []byte, n, expected int, decode func([]byte) int) wireformat.DecodeResponseWire {
	resp := wireformat.DecodeResponseWire{
		Data:     buf[:n],
		Written:  n,
		Expected: expected,
	}
	if n < expected && len(buf) < expected {
		resp.Truncated = decode(make([]byte, expected)) > n
	}
	return resp
}

// PerformBase64Decode decodes req with the lenient Base64 decoder.
func PerformBase64Decode(_ context.Context, req wireformat.DecodeRequestWire) wireformat.DecodeResponseWire {
	return newCodecFuncs(defaultCodecConfig()).base64Decode(req)
}

// PerformHexDecode decodes req with the strict hex decoder.
func PerformHexDecode(_ context.Context, req wireformat.DecodeRequestWire) wireformat.DecodeResponseWire {
	return newCodecFuncs(defaultCodecConfig()).hexDecode(req)
}

// PerformBase64DecodedSize returns the decoded size estimate for req.
func PerformBase64DecodedSize(_ context.Context, req wireformat.SizeRequestWire) wireformat.SizeResponseWire {
	if req.Wide() {
		return wireformat.SizeResponseWire{Size: codec.Base64DecodedSize(req.Units)}
	}
	return wireformat.SizeResponseWire{Size: codec.Base64DecodedSize([]byte(req.Input))}
}

// PerformStringEncode converts bytes to a string in the requested encoding.
func PerformStringEncode(_ context.Context, req wireformat.StringEncodeRequestWire) wireformat.StringEncodeResponseWire {
	enc, ok := codec.LookupEncoding(req.Encoding)
	if !ok {
		err := &domainerrors.CodecError{Op: "string_encode", Encoding: req.Encoding, Err: codec.ErrUnknownEncoding}
		return wireformat.StringEncodeResponseWire{Error: domainerrors.ToErrorDetail(err)}
	}
	text, err := codec.Encode(req.Data, enc)
	if err != nil {
		cerr := &domainerrors.CodecError{Op: "string_encode", Encoding: enc.String(), Err: err}
		return wireformat.StringEncodeResponseWire{Error: domainerrors.ToErrorDetail(cerr)}
	}
	return wireformat.StringEncodeResponseWire{Text: text}
}

// PerformStringDecode converts a string to bytes in the requested encoding
// (binary when omitted).
func PerformStringDecode(_ context.Context, req wireformat.StringDecodeRequestWire) wireformat.DecodeResponseWire {
	return newCodecFuncs(defaultCodecConfig()).stringDecode(req)
}

// codecFuncs binds the decode operations to a configuration.
type codecFuncs struct {
	cfg codecConfig
}

func newCodecFuncs(cfg codecConfig) codecFuncs {
	return codecFuncs{cfg: cfg}
}

func (f codecFuncs) base64Decode(req wireformat.DecodeRequestWire) wireformat.DecodeResponseWire {
	if req.Wide() {
		return decodeUnits(f.cfg, req.Capacity, req.Units, codec.Base64DecodedSize[uint16], codec.DecodeBase64[uint16])
	}
	return decodeUnits(f.cfg, req.Capacity, []byte(req.Input), codec.Base64DecodedSize[byte], codec.DecodeBase64[byte])
}

func (f codecFuncs) hexDecode(req wireformat.DecodeRequestWire) wireformat.DecodeResponseWire {
	if req.Wide() {
		return decodeUnits(f.cfg, req.Capacity, req.Units, hexDecodedSize[uint16], codec.DecodeHex[uint16])
	}
	return decodeUnits(f.cfg, req.Capacity, []byte(req.Input), hexDecodedSize[byte], codec.DecodeHex[byte])
}

func (f codecFuncs) stringDecode(req wireformat.StringDecodeRequestWire) wireformat.DecodeResponseWire {
	enc := codec.ParseEncoding(req.Encoding, codec.Binary)
	expected := codec.DecodeBytes(req.Input, enc)
	decode := func(dst []byte) int { return codec.DecodeWrite(dst, req.Input, enc) }

	buf := make([]byte, f.cfg.outputCapacity(req.Capacity, expected))
	return decodeResult(buf, decode(buf), expected, decode)
}

func hexDecodedSize[T codec.CodeUnit](src []T) int {
	return len(src) / 2
}

func decodeUnits[T codec.CodeUnit](
	cfg codecConfig,
	capacity *int,
	src []T,
	size func([]T) int,
	decodeFn func([]byte, []T) int,
) wireformat.DecodeResponseWire {
	expected := size(src)
	decode := func(dst []byte) int { return decodeFn(dst, src) }

	buf := make([]byte, cfg.outputCapacity(capacity, expected))
	return decodeResult(buf, decode(buf), expected, decode)
}
