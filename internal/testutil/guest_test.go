package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUleb(t *testing.T) {
	assert.Equal(t, []byte{0x05}, uleb(5))
	assert.Equal(t, []byte{0x80, 0x01}, uleb(128))
	assert.Equal(t, []byte{0xe5, 0x8e, 0x26}, uleb(624485))
}

func TestProxyGuestHeader(t *testing.T) {
	wasm := ProxyGuest("reglet_host", "hex_decode")
	assert.Equal(t, EmptyGuest(), wasm[:8])
	assert.Contains(t, string(wasm), "hex_decode")
	assert.Contains(t, string(wasm), "allocate")
}
