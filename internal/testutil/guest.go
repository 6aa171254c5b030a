// Package testutil builds minimal WebAssembly guest modules for host tests.
package testutil

const (
	// RequestOffset is where tests place request payloads in guest memory.
	RequestOffset = 16

	// ResponseOffset is the address the fixture's allocate export always returns.
	ResponseOffset = 1024
)

// ProxyGuest returns a wasm binary that imports module.function with the
// packed (i64) -> i64 signature and re-exports it as "call". It also exports
// one page of "memory" and an "allocate" function that returns ResponseOffset.
func ProxyGuest(module, function string) []byte {
	types := concat(
		[]byte{0x02},
		[]byte{0x60, 0x01, 0x7f, 0x01, 0x7f}, // (i32) -> i32
		[]byte{0x60, 0x01, 0x7e, 0x01, 0x7e}, // (i64) -> i64
	)
	imports := concat(
		[]byte{0x01},
		name(module),
		name(function),
		[]byte{0x00, 0x01}, // func, type 1
	)
	funcs := []byte{0x02, 0x00, 0x01}
	memory := []byte{0x01, 0x00, 0x01} // one memory, min 1 page
	exports := concat(
		[]byte{0x03},
		name("memory"), []byte{0x02, 0x00},
		name("allocate"), []byte{0x00, 0x01},
		name("call"), []byte{0x00, 0x02},
	)
	allocate := []byte{0x00, 0x41, 0x80, 0x08, 0x0b}   // i32.const 1024
	call := []byte{0x00, 0x20, 0x00, 0x10, 0x00, 0x0b} // local.get 0; call 0
	code := concat(
		[]byte{0x02},
		[]byte{byte(len(allocate))}, allocate,
		[]byte{byte(len(call))}, call,
	)

	return concat(
		[]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00},
		section(0x01, types),
		section(0x02, imports),
		section(0x03, funcs),
		section(0x05, memory),
		section(0x07, exports),
		section(0x0a, code),
	)
}

// EmptyGuest is the smallest valid wasm module.
func EmptyGuest() []byte {
	return []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
}

func section(id byte, content []byte) []byte {
	return concat([]byte{id}, uleb(uint32(len(content))), content) //nolint:gosec // G115: fixture sections are tiny
}

func name(s string) []byte {
	return concat(uleb(uint32(len(s))), []byte(s)) //nolint:gosec // G115: fixture names are tiny
}

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
