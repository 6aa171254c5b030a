package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		enc  Encoding
		want string
	}{
		{name: "ascii strips high bit", data: []byte{'a', 0xE2, 'c'}, enc: ASCII, want: "abc"},
		{name: "utf8 valid", data: []byte("héllo"), enc: UTF8, want: "héllo"},
		{name: "utf8 invalid replaced", data: []byte{'a', 0xFF, 'b'}, enc: UTF8, want: "a\uFFFDb"},
		{name: "buffer raw", data: []byte{'a', 0xFF}, enc: Buffer, want: "a\xff"},
		{name: "base64", data: []byte("abc"), enc: Base64, want: "YWJj"},
		{name: "hex", data: []byte("abc"), enc: Hex, want: "616263"},
		{name: "binary", data: []byte{'a', 0xE9, 0xFF}, enc: Binary, want: "aéÿ"},
		{name: "ucs2", data: []byte{'h', 0, 'i', 0, 0x2D, 0x4E}, enc: UCS2, want: "hi中"},
		{name: "ucs2 odd byte dropped", data: []byte{'h', 0, 'i'}, enc: UCS2, want: "h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.data, tt.enc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown encoding", func(t *testing.T) {
		_, err := Encode([]byte("x"), Encoding(77))
		assert.ErrorIs(t, err, ErrUnknownEncoding)
	})
}

func TestDecodeBytes(t *testing.T) {
	tests := []struct {
		name string
		s    string
		enc  Encoding
		want int
	}{
		{name: "utf8 counts bytes", s: "héllo", enc: UTF8, want: 6},
		{name: "buffer counts bytes", s: "héllo", enc: Buffer, want: 6},
		{name: "binary counts units", s: "héllo", enc: Binary, want: 5},
		{name: "ascii counts units", s: "abc", enc: ASCII, want: 3},
		{name: "ucs2 two bytes per unit", s: "hi", enc: UCS2, want: 4},
		{name: "ucs2 surrogate pair", s: "😀", enc: UCS2, want: 4},
		{name: "hex", s: "616263", enc: Hex, want: 3},
		{name: "hex odd", s: "61626", enc: Hex, want: 2},
		{name: "base64", s: "YWI=", enc: Base64, want: 2},
		{name: "unknown", s: "abc", enc: Encoding(9), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeBytes(tt.s, tt.enc))
		})
	}
}

func TestDecodeWrite(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		enc      Encoding
		capacity int
		want     []byte
	}{
		{name: "utf8", s: "héllo", enc: UTF8, capacity: 6, want: []byte("héllo")},
		{name: "utf8 keeps rune whole", s: "héllo", enc: UTF8, capacity: 2, want: []byte("h")},
		{name: "buffer splits freely", s: "héllo", enc: Buffer, capacity: 2, want: []byte{'h', 0xC3}},
		{name: "binary low byte", s: "aé中", enc: Binary, capacity: 3, want: []byte{'a', 0xE9, 0x2D}},
		{name: "ascii", s: "abc", enc: ASCII, capacity: 2, want: []byte("ab")},
		{name: "ucs2", s: "hi", enc: UCS2, capacity: 4, want: []byte{'h', 0, 'i', 0}},
		{name: "ucs2 whole units only", s: "hi", enc: UCS2, capacity: 3, want: []byte{'h', 0}},
		{name: "hex", s: "616263", enc: Hex, capacity: 3, want: []byte("abc")},
		{name: "hex wide input", s: "61é2", enc: Hex, capacity: 2, want: []byte("a")},
		{name: "base64", s: "YWJj", enc: Base64, capacity: 3, want: []byte("abc")},
		{name: "base64 wide input skips", s: "YW中Jj", enc: Base64, capacity: 3, want: []byte("abc")},
		{name: "unknown", s: "abc", enc: Encoding(9), capacity: 3, want: []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, tt.capacity)
			n := DecodeWrite(dst, tt.s, tt.enc)
			assert.Equal(t, tt.want, dst[:n])
		})
	}
}

func TestEncodeDecodeWrite_RoundTrip(t *testing.T) {
	data := []byte{0x00, 0x7F, 0x80, 0xC3, 0xFF, 0x10}

	for _, enc := range []Encoding{Binary, Base64, Hex, Buffer} {
		t.Run(enc.String(), func(t *testing.T) {
			s, err := Encode(data, enc)
			require.NoError(t, err)

			dst := make([]byte, DecodeBytes(s, enc))
			n := DecodeWrite(dst, s, enc)
			assert.Equal(t, data, dst[:n])
		})
	}
}
