package codec

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var ucs2 = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Encode converts data to a string using enc.
//
// ASCII drops the high bit of every byte, Binary maps each byte to the rune
// of the same value, UCS2 reads little-endian 16-bit units (a trailing odd
// byte is ignored) and UTF8 replaces invalid sequences with U+FFFD. Buffer
// copies the bytes unchanged.
func Encode(data []byte, enc Encoding) (string, error) {
	switch enc {
	case ASCII:
		out := make([]byte, len(data))
		for i, b := range data {
			out[i] = b & 0x7F
		}
		return string(out), nil
	case UTF8:
		return strings.ToValidUTF8(string(data), string(utf8.RuneError)), nil
	case Buffer:
		return string(data), nil
	case Base64:
		return EncodeBase64(data), nil
	case Hex:
		return EncodeHex(data), nil
	case Binary:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", enc, err)
		}
		return string(out), nil
	case UCS2:
		out, err := ucs2.NewDecoder().Bytes(data[:len(data)&^1])
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", enc, err)
		}
		return string(out), nil
	}
	return "", fmt.Errorf("encode: %w: %d", ErrUnknownEncoding, int(enc))
}

// DecodeBytes returns the number of bytes DecodeWrite produces for s with
// an unbounded buffer. Unknown encodings yield 0.
func DecodeBytes(s string, enc Encoding) int {
	switch enc {
	case UTF8, Buffer:
		return len(s)
	case ASCII, Binary:
		return utf16Len(s)
	case UCS2:
		return utf16Len(s) * 2
	case Hex:
		return utf16Len(s) / 2
	case Base64:
		if isASCII(s) {
			return Base64DecodedSize([]byte(s))
		}
		return Base64DecodedSize(UTF16Units(s))
	}
	return 0
}

// DecodeWrite decodes s into dst using enc and returns the number of bytes
// written. Output is truncated to len(dst): UTF8 never splits a multi-byte
// sequence and UCS2 never splits a code unit.
//
// ASCII and Binary keep the low byte of every UTF-16 unit of s.
func DecodeWrite(dst []byte, s string, enc Encoding) int {
	switch enc {
	case Buffer:
		return copy(dst, s)
	case UTF8:
		n := min(len(dst), len(s))
		for n > 0 && n < len(s) && !utf8.RuneStart(s[n]) {
			n--
		}
		return copy(dst, s[:n])
	case ASCII, Binary:
		if isASCII(s) {
			return copy(dst, s)
		}
		units := UTF16Units(s)
		n := min(len(dst), len(units))
		for i := 0; i < n; i++ {
			dst[i] = byte(units[i])
		}
		return n
	case UCS2:
		out, err := ucs2.NewEncoder().String(s)
		if err != nil {
			return 0
		}
		return copy(dst[:len(dst)&^1], out)
	case Hex:
		if isASCII(s) {
			return DecodeHex(dst, []byte(s))
		}
		return DecodeHex(dst, UTF16Units(s))
	case Base64:
		if isASCII(s) {
			return DecodeBase64(dst, []byte(s))
		}
		return DecodeBase64(dst, UTF16Units(s))
	}
	return 0
}
