// Package abi defines the packed pointer/length convention shared by the host
// adapter and guest code. On wasip1 it also owns the guest's linear-memory
// allocations handed to and received from the host.
package abi

import "fmt"

// PtrHighBits is the shift applied to the pointer half of a packed value.
const PtrHighBits = 32

// PackPtrLen packs a pointer and length into a single uint64.
// Pointer is stored in the high 32 bits, length in the low 32 bits.
func PackPtrLen(ptr, length uint32) uint64 {
	return (uint64(ptr) << PtrHighBits) | uint64(length)
}

// UnpackPtrLen unpacks a uint64 into its pointer and length. It does not
// validate the pair; see CheckPtrLen.
func UnpackPtrLen(packed uint64) (ptr, length uint32) {
	ptr = uint32(packed >> PtrHighBits) //nolint:gosec // G115: Packed format stores 32-bit values
	length = uint32(packed)             //nolint:gosec // G115: Packed format stores 32-bit values
	return ptr, length
}

// CheckPtrLen rejects a null pointer paired with a non-zero length.
func CheckPtrLen(ptr, length uint32) error {
	if ptr == 0 && length > 0 {
		return fmt.Errorf("abi: null pointer (0x0) with non-zero length (%d)", length)
	}
	return nil
}
