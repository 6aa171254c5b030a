package codec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEncoding is returned when an encoding name or value is not recognized.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Encoding identifies how a string maps to bytes.
type Encoding int

// Supported encodings.
const (
	ASCII Encoding = iota
	UTF8
	Base64
	UCS2
	Binary
	Hex
	Buffer
)

var encodingNames = map[Encoding]string{
	ASCII:  "ascii",
	UTF8:   "utf8",
	Base64: "base64",
	UCS2:   "ucs2",
	Binary: "binary",
	Hex:    "hex",
	Buffer: "buffer",
}

// encodingAliases lists every accepted spelling, lowercased.
var encodingAliases = map[string]Encoding{
	"ascii":    ASCII,
	"utf8":     UTF8,
	"utf-8":    UTF8,
	"base64":   Base64,
	"ucs2":     UCS2,
	"ucs-2":    UCS2,
	"utf16le":  UCS2,
	"utf-16le": UCS2,
	"binary":   Binary,
	"latin1":   Binary,
	"hex":      Hex,
	"buffer":   Buffer,
}

// ParseEncoding returns the encoding named by name, ignoring case.
// Unknown or empty names yield def.
func ParseEncoding(name string, def Encoding) Encoding {
	if enc, ok := LookupEncoding(name); ok {
		return enc
	}
	return def
}

// LookupEncoding returns the encoding named by name, ignoring case, and
// whether the name was recognized.
func LookupEncoding(name string) (Encoding, bool) {
	enc, ok := encodingAliases[strings.ToLower(strings.TrimSpace(name))]
	return enc, ok
}

// Valid reports whether e is one of the supported encodings.
func (e Encoding) Valid() bool {
	_, ok := encodingNames[e]
	return ok
}

// String returns the canonical name of the encoding.
func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// MarshalText implements encoding.TextMarshaler.
func (e Encoding) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEncoding, int(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unlike ParseEncoding it
// rejects unknown names.
func (e *Encoding) UnmarshalText(text []byte) error {
	enc, ok := LookupEncoding(string(text))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEncoding, string(text))
	}
	*e = enc
	return nil
}
