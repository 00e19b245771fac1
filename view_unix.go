//go:build unix

package mmapfile

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// view is a live mapping of some region of a file (or, for a whole-file
// mapping, of the entire file) into the process's address space.
type view struct {
	data  []byte
	fixed bool // created via the raw MAP_FIXED syscall, not unix.Mmap
}

// mapView creates a plain (non-fixed) mapping, used by File/WritableFile.
func mapView(fd int, length int, writable, private bool) (*view, error) {
	if length == 0 {
		return &view{}, nil
	}
	prot := unix.PROT_READ
	if writable {
		prot |= unix.PROT_WRITE
	}
	flags := unix.MAP_SHARED
	if private {
		flags = unix.MAP_PRIVATE
	}
	data, err := unix.Mmap(fd, 0, length, prot, flags)
	if err != nil {
		return nil, newMappingError("mmap", err)
	}
	return &view{data: data}, nil
}

// mapFixedView maps length bytes of fd at the given address, which must lie
// within a reservation the caller owns, using MAP_FIXED | MAP_SHARED.
//
// golang.org/x/sys/unix.Mmap has no parameter for an explicit address, so
// the fixed-address form issues the mmap(2) syscall directly. Because this
// slice was never handed to unix.Mmap, it is not registered in its internal
// mmapper.active map, so unix.Munmap would reject it; see unreserveFixed
// for how such a view is torn down instead.
func mapFixedView(addr uintptr, fd int, length int) (*view, error) {
	if length == 0 {
		return &view{}, nil
	}
	prot := unix.PROT_READ | unix.PROT_WRITE
	flags := unix.MAP_SHARED | unix.MAP_FIXED
	r1, _, errno := unix.Syscall6(unix.SYS_MMAP, addr, uintptr(length), uintptr(prot), uintptr(flags), uintptr(fd), 0)
	if errno != 0 {
		return nil, newMappingError("mmap fixed", errno)
	}
	return &view{data: unsafe.Slice((*byte)(unsafe.Pointer(r1)), length), fixed: true}, nil
}

func (v *view) sync(flags SyncFlag) error {
	if len(v.data) == 0 {
		return nil
	}
	return v.syncRange(0, len(v.data), flags)
}

func (v *view) syncRange(offset, length int, flags SyncFlag) error {
	if offset < 0 || length < 0 || offset+length > len(v.data) {
		return newMappingError("msync", unix.EINVAL)
	}
	if length == 0 {
		return nil
	}
	f := unix.MS_SYNC
	if flags == SyncAsync {
		f = unix.MS_ASYNC
	}
	// msync needs a page-aligned start address; v.data begins on a page
	// boundary, so round offset down to the page that contains it.
	start := offset - offset%int(pageSize())
	if err := unix.Msync(v.data[start:offset+length], f); err != nil {
		return newMappingError("msync", err)
	}
	return nil
}

// addressOf returns the address of a reservation's backing slice, or 0 for
// an empty reservation.
func addressOf(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}

func (v *view) unmap() error {
	if len(v.data) == 0 {
		v.data = nil
		return nil
	}
	data := v.data
	fixed := v.fixed
	v.data = nil
	v.fixed = false
	if fixed {
		return unreserveFixed(uintptr(unsafe.Pointer(&data[0])), len(data))
	}
	if err := unix.Munmap(data); err != nil {
		return newMappingError("munmap", err)
	}
	return nil
}

// unreserveFixed tears down a fixed view by remapping its range back to a
// PROT_NONE | MAP_ANONYMOUS guard rather than munmapping it, so the range
// stays reserved and cannot be claimed by an unrelated mmap before the next
// grow reclaims it with mapFixedView.
func unreserveFixed(addr uintptr, length int) error {
	prot := unix.PROT_NONE
	flags := unix.MAP_FIXED | unix.MAP_ANONYMOUS | unix.MAP_PRIVATE
	_, _, errno := unix.Syscall6(unix.SYS_MMAP, addr, uintptr(length), uintptr(prot), uintptr(flags), ^uintptr(0), 0)
	if errno != 0 {
		return newMappingError("mmap fixed guard", errno)
	}
	return nil
}
