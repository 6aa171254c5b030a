package codec

import (
	"encoding/hex"
)

func hexValue[T CodeUnit](u T) (byte, bool) {
	switch {
	case u >= '0' && u <= '9':
		return byte(u - '0'), true
	case u >= 'a' && u <= 'f':
		return byte(u-'a') + 10, true
	case u >= 'A' && u <= 'F':
		return byte(u-'A') + 10, true
	}
	return 0, false
}

// DecodeHex decodes digit pairs from src into dst and returns the number of
// bytes written. At most min(len(dst), len(src)/2) pairs are decoded; a
// trailing unpaired digit is ignored. Decoding stops at the first pair that
// contains a non-hex unit.
func DecodeHex[T CodeUnit](dst []byte, src []T) int {
	n := min(len(dst), len(src)/2)
	for i := 0; i < n; i++ {
		hi, ok := hexValue(src[2*i])
		if !ok {
			return i
		}
		lo, ok := hexValue(src[2*i+1])
		if !ok {
			return i
		}
		dst[i] = hi<<4 | lo
	}
	return n
}

// DecodeHexString decodes s into a buffer of len(s)/2 bytes.
func DecodeHexString(s string) []byte {
	src := []byte(s)
	buf := make([]byte, len(src)/2)
	return buf[:DecodeHex(buf, src)]
}

// EncodeHex returns the lowercase hex encoding of src.
func EncodeHex(src []byte) string {
	return hex.EncodeToString(src)
}
