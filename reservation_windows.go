//go:build windows

package mmapfile

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// reservation is a contiguous range of capacity bytes of virtual address
// space reserved but not committed, acquired once per resizable object via
// VirtualAlloc(MEM_RESERVE). See resizablefile_windows.go for the
// file-backed case, which reserves via CreateFileMapping's SEC_RESERVE flag
// instead of this type.
type reservation struct {
	base uintptr
	size uint64
}

func newReservation(capacity uint64) (*reservation, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(capacity), windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		return nil, newMappingError("VirtualAlloc reserve", err)
	}
	return &reservation{base: addr, size: capacity}, nil
}

func (r *reservation) capacity() uint64 { return r.size }

func (r *reservation) address() []byte {
	if r.base == 0 || r.size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(r.base)), r.size)
}

func (r *reservation) close() error {
	if r.base == 0 {
		return nil
	}
	base := r.base
	r.base = 0
	if err := windows.VirtualFree(base, 0, windows.MEM_RELEASE); err != nil {
		return newMappingError("VirtualFree release", err)
	}
	return nil
}
