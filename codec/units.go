package codec

import (
	"unicode/utf16"
	"unicode/utf8"
)

// CodeUnit is a single fixed-width element of encoded text as seen by the
// decoders: one byte for Latin-1/ASCII strings, one uint16 for UTF-16 strings.
type CodeUnit interface {
	~byte | ~uint16
}

// UTF16Units returns the UTF-16 code units of s.
// Runes outside the BMP are split into surrogate pairs.
func UTF16Units(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// isASCII reports whether s can be handed to the decoders as single-byte units.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// utf16Len returns the number of UTF-16 code units needed to represent s.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if utf16.RuneLen(r) == 2 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
