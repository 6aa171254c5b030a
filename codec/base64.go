package codec

import (
	"encoding/base64"
)

const (
	// invalidSymbol marks units that are skipped while decoding.
	invalidSymbol = 0xFF
	// paddingSymbol marks '=' which terminates decoding.
	paddingSymbol = 0xFE

	padding = '='
)

// base64DecodeMap maps every byte value to its 6-bit symbol value, or to one of
// the markers above. Standard ('+', '/') and URL-safe ('-', '_') alphabets
// decode to the same values.
var base64DecodeMap = newBase64DecodeMap()

func newBase64DecodeMap() [256]byte {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

	var m [256]byte
	for i := range m {
		m[i] = invalidSymbol
	}
	for i := 0; i < len(alphabet); i++ {
		m[alphabet[i]] = byte(i)
	}
	m['-'] = 62
	m['_'] = 63
	m[padding] = paddingSymbol
	return m
}

func base64Value[T CodeUnit](u T) byte {
	if uint16(u) > 0xFF {
		return invalidSymbol
	}
	return base64DecodeMap[byte(u)]
}

// Base64DecodedSize returns the number of bytes src decodes to.
// Up to two trailing '=' are ignored. A single symbol left over after the
// last full quartet cannot be decoded and contributes nothing.
func Base64DecodedSize[T CodeUnit](src []T) int {
	size := len(src)
	if size < 2 {
		return 0
	}
	if src[size-1] == padding {
		size--
		if src[size-1] == padding {
			size--
		}
	}
	return base64DecodedSizeFast(size)
}

// base64DecodedSizeFast applies the quartet formula to an already trimmed length.
func base64DecodedSizeFast(size int) int {
	n := size / 4 * 3
	switch size % 4 {
	case 2:
		n++
	case 3:
		n += 2
	}
	return n
}

// DecodeBase64 decodes src into dst and returns the number of bytes written.
//
// Units that are not part of either Base64 alphabet (whitespace, line breaks,
// stray characters, anything above 0xFF) are skipped. Decoding stops at the
// first '=' or at the end of src, keeping the bytes already assembled from a
// partial quartet, and stops early once dst is full.
func DecodeBase64[T CodeUnit](dst []byte, src []T) int {
	i := 0
	next := func() (byte, bool) {
		for i < len(src) {
			v := base64Value(src[i])
			i++
			switch v {
			case invalidSymbol:
				continue
			case paddingSymbol:
				i = len(src)
				return 0, false
			default:
				return v, true
			}
		}
		return 0, false
	}

	n := 0
	for n < len(dst) {
		a, ok := next()
		if !ok {
			break
		}
		b, ok := next()
		if !ok {
			break
		}
		dst[n] = a<<2 | b>>4
		n++
		if n == len(dst) {
			break
		}

		c, ok := next()
		if !ok {
			break
		}
		dst[n] = (b&0x0F)<<4 | c>>2
		n++
		if n == len(dst) {
			break
		}

		d, ok := next()
		if !ok {
			break
		}
		dst[n] = (c&0x03)<<6 | d
		n++
	}
	return n
}

// DecodeBase64String decodes s into a freshly allocated buffer sized with
// Base64DecodedSize.
func DecodeBase64String(s string) []byte {
	src := []byte(s)
	buf := make([]byte, Base64DecodedSize(src))
	return buf[:DecodeBase64(buf, src)]
}

// EncodeBase64 returns the padded, standard-alphabet encoding of src.
func EncodeBase64(src []byte) string {
	return base64.StdEncoding.EncodeToString(src)
}
