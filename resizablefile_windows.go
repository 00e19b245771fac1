//go:build windows

package mmapfile

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"
)

// ResizableFile is a file-backed mapping that can grow up to capacity
// without moving the address returned by Data.
//
// The original implementation this package is modeled on extends a mapping
// in place on Windows using the undocumented NtCreateSection/NtExtendSection
// pair from ntdll.dll. This package instead uses the documented
// CreateFileMapping SEC_RESERVE flag: a single MapViewOfFile reserves the
// full capacity once, and each Resize commits (or, when growing, extends
// the file backing) up to the new size with VirtualAlloc(MEM_COMMIT).
// Shrinking only truncates the file; the pages beyond the new size stay
// committed until Close, since VirtualFree(MEM_DECOMMIT) cannot partially
// decommit a mapped file view.
//
// mu guards Resize, Sync, SyncRange, and Close; state is swapped only while
// mu is held, so Data/Size/Capacity stay lock-free reads.
type ResizableFile struct {
	handle    *fileHandle
	mapping   windows.Handle
	base      uintptr
	capacity  uint64
	mu        sync.Mutex
	committed uint64
	state     atomic.Pointer[resizableFileState]
}

// OpenResizableFile opens or creates path and maps it so that it can later
// grow up to capacity bytes without its Data address changing.
func OpenResizableFile(path string, capacity uint64) (*ResizableFile, error) {
	h, err := openFileHandle(path, modeCreateOrOpenReadWrite)
	if err != nil {
		return nil, err
	}
	existing, err := h.size()
	if err != nil {
		h.close()
		return nil, err
	}
	if existing > capacity {
		h.close()
		return nil, outOfMemory(existing, capacity)
	}
	capHigh := uint32(capacity >> 32)
	capLow := uint32(capacity)
	mapping, err := windows.CreateFileMapping(windows.Handle(h.f.Fd()), nil,
		windows.PAGE_READWRITE|windows.SEC_RESERVE, capHigh, capLow, nil)
	if err != nil {
		h.close()
		return nil, newMappingError("CreateFileMapping reserve", err)
	}
	base, err := windows.MapViewOfFile(mapping, windows.FILE_MAP_WRITE, 0, 0, uintptr(capacity))
	if err != nil {
		windows.CloseHandle(mapping)
		h.close()
		return nil, newMappingError("MapViewOfFile reserve", err)
	}
	f := &ResizableFile{handle: h, mapping: mapping, base: base, capacity: capacity}
	f.state.Store(&resizableFileState{})
	if existing > 0 {
		if err := f.commit(existing); err != nil {
			f.Close()
			return nil, err
		}
		f.state.Store(&resizableFileState{data: unsafe.Slice((*byte)(unsafe.Pointer(base)), existing), size: existing})
	}
	return f, nil
}

// Data returns the mapped bytes.
func (f *ResizableFile) Data() []byte {
	s := f.state.Load()
	if s == nil || s.invalid {
		return nil
	}
	return s.data
}

// Size returns the current mapped size. While a prior Resize has left the
// object invalid, Size reports 0 until a Resize call recovers it.
func (f *ResizableFile) Size() uint64 {
	s := f.state.Load()
	if s == nil || s.invalid {
		return 0
	}
	return s.size
}

// Capacity returns the maximum size Resize can grow to.
func (f *ResizableFile) Capacity() uint64 { return f.capacity }

// Resize changes the file's size in place.
func (f *ResizableFile) Resize(size uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if size > f.capacity {
		return outOfMemory(size, f.capacity)
	}
	if err := f.handle.truncate(size); err != nil {
		f.state.Store(&resizableFileState{invalid: true})
		return err
	}
	if size > f.committed {
		if err := f.commit(size); err != nil {
			f.state.Store(&resizableFileState{invalid: true})
			return err
		}
	}
	if size == 0 {
		f.state.Store(&resizableFileState{})
		return nil
	}
	f.state.Store(&resizableFileState{data: unsafe.Slice((*byte)(unsafe.Pointer(f.base)), size), size: size})
	return nil
}

// commit grows the committed range to size, a no-op for any prefix already
// committed by an earlier call.
func (f *ResizableFile) commit(size uint64) error {
	if size <= f.committed {
		return nil
	}
	if _, err := windows.VirtualAlloc(f.base, uintptr(size), windows.MEM_COMMIT, windows.PAGE_READWRITE); err != nil {
		return newMappingError("VirtualAlloc commit", err)
	}
	f.committed = size
	return nil
}

// Sync flushes dirty pages to the backing file.
func (f *ResizableFile) Sync(flags SyncFlag) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	size := f.Size()
	if size == 0 {
		return nil
	}
	if err := windows.FlushViewOfFile(f.base, uintptr(size)); err != nil {
		return newMappingError("FlushViewOfFile", err)
	}
	return nil
}

// SyncRange flushes a byte range of dirty pages to the backing file.
func (f *ResizableFile) SyncRange(offset, length int, flags SyncFlag) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	size := f.Size()
	if offset < 0 || length < 0 || uint64(offset+length) > size {
		return newMappingError("FlushViewOfFile", windows.ERROR_INVALID_PARAMETER)
	}
	if length == 0 {
		return nil
	}
	if err := windows.FlushViewOfFile(f.base+uintptr(offset), uintptr(length)); err != nil {
		return newMappingError("FlushViewOfFile", err)
	}
	return nil
}

// Close flushes, unmaps, and closes the file.
func (f *ResizableFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	size := f.Size()
	f.state.Store(&resizableFileState{invalid: true})
	if size > 0 {
		if err := windows.FlushViewOfFile(f.base, uintptr(size)); err != nil {
			logSyncFailure(f.handle.path, newMappingError("FlushViewOfFile", err))
		}
	}
	var unmapErr error
	if f.base != 0 {
		if err := windows.UnmapViewOfFile(f.base); err != nil {
			unmapErr = newMappingError("UnmapViewOfFile", err)
			logUnmapFailure(f.handle.path, unmapErr)
		}
		f.base = 0
	}
	if f.mapping != 0 {
		windows.CloseHandle(f.mapping)
		f.mapping = 0
	}
	closeErr := f.handle.close()
	if unmapErr != nil {
		return unmapErr
	}
	return closeErr
}
