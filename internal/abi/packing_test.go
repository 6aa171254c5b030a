package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackPtrLen(t *testing.T) {
	tests := []struct {
		name   string
		ptr    uint32
		length uint32
		want   uint64
	}{
		{name: "typical values", ptr: 0x12345678, length: 0xABCDEF00, want: (uint64(0x12345678) << PtrHighBits) | uint64(0xABCDEF00)},
		{name: "zero pointer zero length", ptr: 0, length: 0, want: 0},
		{name: "max pointer", ptr: 0xFFFFFFFF, length: 1, want: (uint64(0xFFFFFFFF) << PtrHighBits) | 1},
		{name: "max both", ptr: 0xFFFFFFFF, length: 0xFFFFFFFF, want: 0xFFFFFFFFFFFFFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed := PackPtrLen(tt.ptr, tt.length)
			assert.Equal(t, tt.want, packed)

			gotPtr, gotLen := UnpackPtrLen(packed)
			assert.Equal(t, tt.ptr, gotPtr)
			assert.Equal(t, tt.length, gotLen)
		})
	}
}

func TestCheckPtrLen(t *testing.T) {
	assert.NoError(t, CheckPtrLen(0, 0))
	assert.NoError(t, CheckPtrLen(16, 4))
	assert.Error(t, CheckPtrLen(0, 4))
}
