//go:build wasip1

package abi

import (
	"fmt"
	"sync"
	"unsafe"
)

// MaxTotalAllocations bounds the memory the guest keeps pinned for the host.
const MaxTotalAllocations = 100 * 1024 * 1024 // 100 MB

// pinned keeps allocated slices reachable so the GC does not reclaim memory
// the host is still reading or writing.
var pinned = struct {
	sync.Mutex
	ptrs  map[uint32][]byte
	total int
}{
	ptrs: make(map[uint32][]byte),
}

// allocate reserves size bytes for the host to write a response into.
//
//go:wasmexport allocate
func allocate(size uint32) uint32 {
	if size == 0 {
		return 0
	}

	pinned.Lock()
	defer pinned.Unlock()

	if pinned.total+int(size) > MaxTotalAllocations {
		panic(fmt.Sprintf("abi: allocation of %d bytes exceeds limit (%d of %d in use)",
			size, pinned.total, MaxTotalAllocations))
	}

	buf := make([]byte, size)
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))
	pinned.ptrs[ptr] = buf
	pinned.total += int(size)
	return ptr
}

// deallocate releases a pinned allocation. Unknown pointers are ignored.
//
//go:wasmexport deallocate
func deallocate(ptr uint32, _ uint32) {
	pinned.Lock()
	defer pinned.Unlock()

	buf, ok := pinned.ptrs[ptr]
	if !ok {
		return
	}
	delete(pinned.ptrs, ptr)
	pinned.total = max(0, pinned.total-len(buf))
}

// PtrFromBytes copies data into pinned memory and returns its packed ptr/len.
func PtrFromBytes(data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}
	size := uint32(len(data))
	ptr := allocate(size)
	copy(unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), size), data) //nolint:gosec // G103: WASM linear memory access
	return PackPtrLen(ptr, size)
}

// BytesFromPtr copies the bytes behind a packed ptr/len out of linear memory
// and releases the allocation.
func BytesFromPtr(packed uint64) []byte {
	ptr, length := UnpackPtrLen(packed)
	if ptr == 0 || length == 0 {
		return nil
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), length) //nolint:gosec // G103: WASM linear memory access
	data := make([]byte, length)
	copy(data, src)
	deallocate(ptr, length)
	return data
}

// Free releases the allocation behind a packed ptr/len.
func Free(packed uint64) {
	ptr, length := UnpackPtrLen(packed)
	if ptr != 0 && length > 0 {
		deallocate(ptr, length)
	}
}
