//go:build windows

package mmapfile

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// view is a live mapping of some region of a file into the process's
// address space, backed by a CreateFileMapping + MapViewOfFile pair.
type view struct {
	data    []byte
	mapping windows.Handle
}

func mapView(handle windows.Handle, length int, writable, private bool) (*view, error) {
	if length == 0 {
		return &view{}, nil
	}
	prot := uint32(windows.PAGE_READONLY)
	access := uint32(windows.FILE_MAP_READ)
	switch {
	case private:
		prot = windows.PAGE_WRITECOPY
		access = windows.FILE_MAP_COPY
	case writable:
		prot = windows.PAGE_READWRITE
		access = windows.FILE_MAP_WRITE
	}
	maxSizeHigh := uint32(uint64(length) >> 32)
	maxSizeLow := uint32(length)
	mapping, err := windows.CreateFileMapping(handle, nil, prot, maxSizeHigh, maxSizeLow, nil)
	if err != nil {
		return nil, newMappingError("CreateFileMapping", err)
	}
	addr, err := windows.MapViewOfFile(mapping, access, 0, 0, uintptr(length))
	if err != nil {
		windows.CloseHandle(mapping)
		return nil, newMappingError("MapViewOfFile", err)
	}
	return &view{data: unsafe.Slice((*byte)(unsafe.Pointer(addr)), length), mapping: mapping}, nil
}

func (v *view) sync(flags SyncFlag) error {
	if len(v.data) == 0 {
		return nil
	}
	return v.syncRange(0, len(v.data), flags)
}

// syncRange flushes a range with FlushViewOfFile. SyncAsync behaves like
// SyncDefault since Windows has no separate asynchronous flush call.
func (v *view) syncRange(offset, length int, flags SyncFlag) error {
	if offset < 0 || length < 0 || offset+length > len(v.data) {
		return newMappingError("FlushViewOfFile", windows.ERROR_INVALID_PARAMETER)
	}
	if length == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&v.data[offset]))
	if err := windows.FlushViewOfFile(addr, uintptr(length)); err != nil {
		return newMappingError("FlushViewOfFile", err)
	}
	return nil
}

func (v *view) unmap() error {
	if len(v.data) == 0 {
		v.data = nil
		return nil
	}
	addr := uintptr(unsafe.Pointer(&v.data[0]))
	v.data = nil
	if err := windows.UnmapViewOfFile(addr); err != nil {
		return newMappingError("UnmapViewOfFile", err)
	}
	if v.mapping != 0 {
		windows.CloseHandle(v.mapping)
		v.mapping = 0
	}
	return nil
}
