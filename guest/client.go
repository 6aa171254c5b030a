package guest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/reglet-dev/reglet-codec/codec"
	domainerrors "github.com/reglet-dev/reglet-codec/domain/errors"
	"github.com/reglet-dev/reglet-codec/wireformat"
)

// Host function names, mirrored from hostfuncs so wasm builds need not link it.
const (
	funcBase64Decode      = "base64_decode"
	funcBase64DecodedSize = "base64_decoded_size"
	funcHexDecode         = "hex_decode"
	funcStringEncode      = "string_encode"
	funcStringDecode      = "string_decode"
	funcLogMessage        = "log_message"
)

// HostError is a call the host rejected outright (bad request, unknown
// function, recovered panic).
type HostError struct {
	Kind    string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (e *HostError) Error() string {
	return fmt.Sprintf("host %s (%d): %s", e.Kind, e.Code, e.Message)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTransport replaces the default transport.
func WithTransport(t Transport) ClientOption {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// Client calls the codec host functions.
type Client struct {
	transport Transport
}

// NewClient returns a client using DefaultTransport unless overridden.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = DefaultTransport()
	}
	return c
}

// Decode runs base64_decode or hex_decode and returns the full response.
func (c *Client) Decode(ctx context.Context, function string, req wireformat.DecodeRequestWire) (wireformat.DecodeResponseWire, error) {
	var resp wireformat.DecodeResponseWire
	if err := call(ctx, c.transport, function, req, &resp); err != nil {
		return resp, err
	}
	if resp.Error != nil {
		return resp, resp.Error
	}
	return resp, nil
}

// DecodeBase64 decodes s leniently. The host sizes the output.
func (c *Client) DecodeBase64(ctx context.Context, s string) ([]byte, error) {
	resp, err := c.Decode(ctx, funcBase64Decode, wireformat.DecodeRequestWire{
		EncodedInputWire: wireformat.EncodedInputWire{Input: s},
	})
	return resp.Data, err
}

// DecodeBase64Units decodes UTF-16 code units leniently.
func (c *Client) DecodeBase64Units(ctx context.Context, units []uint16) ([]byte, error) {
	resp, err := c.Decode(ctx, funcBase64Decode, wireformat.DecodeRequestWire{
		EncodedInputWire: wireformat.EncodedInputWire{Units: units},
	})
	return resp.Data, err
}

// DecodeBase64Into decodes s into dst and returns the number of bytes written.
func (c *Client) DecodeBase64Into(ctx context.Context, dst []byte, s string) (int, error) {
	return c.decodeInto(ctx, funcBase64Decode, dst, s)
}

// Base64DecodedSize returns the host's size estimate for s.
func (c *Client) Base64DecodedSize(ctx context.Context, s string) (int, error) {
	var resp wireformat.SizeResponseWire
	req := wireformat.SizeRequestWire{EncodedInputWire: wireformat.EncodedInputWire{Input: s}}
	if err := call(ctx, c.transport, funcBase64DecodedSize, req, &resp); err != nil {
		return 0, err
	}
	if resp.Error != nil {
		return 0, resp.Error
	}
	return resp.Size, nil
}

// DecodeHex decodes s strictly, stopping at the first invalid pair.
func (c *Client) DecodeHex(ctx context.Context, s string) ([]byte, error) {
	resp, err := c.Decode(ctx, funcHexDecode, wireformat.DecodeRequestWire{
		EncodedInputWire: wireformat.EncodedInputWire{Input: s},
	})
	return resp.Data, err
}

// DecodeHexInto decodes s into dst and returns the number of bytes written.
func (c *Client) DecodeHexInto(ctx context.Context, dst []byte, s string) (int, error) {
	return c.decodeInto(ctx, funcHexDecode, dst, s)
}

func (c *Client) decodeInto(ctx context.Context, function string, dst []byte, s string) (int, error) {
	capacity := len(dst)
	resp, err := c.Decode(ctx, function, wireformat.DecodeRequestWire{
		Capacity:         &capacity,
		EncodedInputWire: wireformat.EncodedInputWire{Input: s},
	})
	if err != nil {
		return 0, err
	}
	return copy(dst, resp.Data), nil
}

// Encode renders data as a string in the given encoding.
func (c *Client) Encode(ctx context.Context, data []byte, enc codec.Encoding) (string, error) {
	if !enc.Valid() {
		return "", &domainerrors.CodecError{Op: "encode", Encoding: enc.String(), Err: codec.ErrUnknownEncoding}
	}

	var resp wireformat.StringEncodeResponseWire
	req := wireformat.StringEncodeRequestWire{Data: data, Encoding: enc.String()}
	if err := call(ctx, c.transport, funcStringEncode, req, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", resp.Error
	}
	return resp.Text, nil
}

// DecodeString converts s to bytes in the given encoding.
func (c *Client) DecodeString(ctx context.Context, s string, enc codec.Encoding) ([]byte, error) {
	if !enc.Valid() {
		return nil, &domainerrors.CodecError{Op: "decode", Encoding: enc.String(), Err: codec.ErrUnknownEncoding}
	}

	var resp wireformat.DecodeResponseWire
	req := wireformat.StringDecodeRequestWire{Input: s, Encoding: enc.String()}
	if err := call(ctx, c.transport, funcStringDecode, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.Data, nil
}

// call marshals req, sends it, and unmarshals the response into resp.
// Host-level rejections come back as *HostError.
func call[Req any, Resp any](ctx context.Context, t Transport, function string, req Req, resp *Resp) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return &domainerrors.WireFormatError{Err: err, Operation: "marshal", Type: function}
	}

	data, err := t.Call(ctx, function, payload)
	if err != nil {
		return fmt.Errorf("%s: %w", function, err)
	}

	// ErrorResponse carries a string "error"; typed responses carry an object.
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return &domainerrors.WireFormatError{Err: err, Operation: "unmarshal", Type: function}
	}
	if len(envelope.Error) > 0 && envelope.Error[0] == '"' {
		hostErr := &HostError{}
		if err := json.Unmarshal(data, hostErr); err != nil {
			return &domainerrors.WireFormatError{Err: err, Operation: "unmarshal", Type: function}
		}
		return hostErr
	}

	if err := json.Unmarshal(data, resp); err != nil {
		return &domainerrors.WireFormatError{Err: err, Operation: "unmarshal", Type: function}
	}
	return nil
}
