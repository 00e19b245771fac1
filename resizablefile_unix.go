//go:build unix

package mmapfile

import (
	"sync"
	"sync/atomic"
)

// ResizableFile is a file-backed mapping that can grow up to capacity
// without moving the address returned by Data. A PROT_NONE reservation of
// the full capacity is made once, and each Resize tears down the current
// MAP_FIXED|MAP_SHARED view and remaps a new one at the same base address.
//
// mu guards Resize, Sync, SyncRange, and Close; state is swapped only while
// mu is held, so Data/Size/Capacity stay lock-free reads.
type ResizableFile struct {
	handle      *fileHandle
	reservation *reservation
	mu          sync.Mutex
	view        *view
	state       atomic.Pointer[resizableFileState]
}

// OpenResizableFile opens or creates path and maps it so that it can later
// grow up to capacity bytes without its Data address changing. If the file
// already holds more than capacity bytes of content, OpenResizableFile
// fails with an OutOfMemoryError.
func OpenResizableFile(path string, capacity uint64) (*ResizableFile, error) {
	h, err := openFileHandle(path, modeCreateOrOpenReadWrite)
	if err != nil {
		return nil, err
	}
	r, err := newReservation(capacity)
	if err != nil {
		h.close()
		return nil, err
	}
	existing, err := h.size()
	if err != nil {
		r.close()
		h.close()
		return nil, err
	}
	if existing > capacity {
		r.close()
		h.close()
		return nil, outOfMemory(existing, capacity)
	}
	f := &ResizableFile{handle: h, reservation: r}
	f.state.Store(&resizableFileState{})
	if existing > 0 {
		if err := f.remap(existing); err != nil {
			r.close()
			h.close()
			return nil, err
		}
	}
	return f, nil
}

// Data returns the mapped bytes. Its address is stable across Resize calls
// as long as the new size never exceeds Capacity.
func (f *ResizableFile) Data() []byte {
	s := f.state.Load()
	if s == nil || s.invalid {
		return nil
	}
	return s.data
}

// Size returns the file's current mapped size. While a prior Resize has
// left the object invalid, Size reports 0 until a Resize call recovers it.
func (f *ResizableFile) Size() uint64 {
	s := f.state.Load()
	if s == nil || s.invalid {
		return 0
	}
	return s.size
}

// Capacity returns the maximum size Resize can grow to.
func (f *ResizableFile) Capacity() uint64 { return f.reservation.capacity() }

// Resize changes the file's size, truncating or extending its backing
// file and remapping it in place. It fails with an OutOfMemoryError,
// leaving the object unchanged, if size exceeds Capacity.
//
// Resize unmaps the current view before truncating the file and mapping
// the new size at the same base address. If the unmap, the truncate or the
// new mapping fails, the object is left invalid: Data returns nil and Size
// returns 0 until a later Resize succeeds.
func (f *ResizableFile) Resize(size uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if size > f.Capacity() {
		return outOfMemory(size, f.Capacity())
	}
	if f.view != nil {
		if err := f.view.unmap(); err != nil {
			f.state.Store(&resizableFileState{invalid: true})
			return err
		}
		f.view = nil
	}
	if err := f.handle.truncate(size); err != nil {
		f.state.Store(&resizableFileState{invalid: true})
		return err
	}
	if size == 0 {
		f.state.Store(&resizableFileState{})
		return nil
	}
	return f.remap(size)
}

// remap creates a MAP_FIXED view of size bytes at the reservation's base
// address. Any failure here leaves the reservation's range without a
// PROT_NONE guard mapping over the gap it briefly occupied, which is why
// Resize marks the object invalid rather than retrying.
func (f *ResizableFile) remap(size uint64) error {
	v, err := mapFixedView(addressOf(f.reservation.address()), int(f.handle.f.Fd()), int(size))
	if err != nil {
		f.state.Store(&resizableFileState{invalid: true})
		return err
	}
	f.view = v
	f.state.Store(&resizableFileState{data: v.data, size: size})
	return nil
}

// Sync flushes dirty pages to the backing file.
func (f *ResizableFile) Sync(flags SyncFlag) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.view == nil {
		return nil
	}
	return f.view.sync(flags)
}

// SyncRange flushes a byte range of dirty pages to the backing file.
func (f *ResizableFile) SyncRange(offset, length int, flags SyncFlag) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.view == nil {
		return nil
	}
	return f.view.syncRange(offset, length, flags)
}

// Close flushes, unmaps, releases the reservation, and closes the file.
func (f *ResizableFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Store(&resizableFileState{invalid: true})
	if f.view != nil {
		if err := f.view.sync(SyncDefault); err != nil {
			logSyncFailure(f.handle.path, err)
		}
		if err := f.view.unmap(); err != nil {
			logUnmapFailure(f.handle.path, err)
		}
	}
	resErr := f.reservation.close()
	closeErr := f.handle.close()
	if resErr != nil {
		return resErr
	}
	return closeErr
}
