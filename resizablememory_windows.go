//go:build windows

package mmapfile

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"
)

// ResizableMemory is anonymous memory that can grow up to capacity without
// its Data address changing. A MEM_RESERVE reservation is made once, and
// each Resize commits or decommits whole pages at the edge of the mapped
// range with VirtualAlloc/VirtualFree rather than remapping.
//
// mu guards Resize and Close; state is swapped only while mu is held, so
// Data/Size/Capacity stay lock-free reads.
type ResizableMemory struct {
	reservation *reservation
	mu          sync.Mutex
	mappedSize  uint64
	state       atomic.Pointer[resizableMemoryState]
}

// NewResizableMemory reserves capacity bytes of address space and commits
// initialSize bytes of it.
func NewResizableMemory(initialSize, capacity uint64) (*ResizableMemory, error) {
	if initialSize > capacity {
		return nil, outOfMemory(initialSize, capacity)
	}
	r, err := newReservation(capacity)
	if err != nil {
		return nil, err
	}
	m := &ResizableMemory{reservation: r}
	m.state.Store(&resizableMemoryState{})
	if err := m.Resize(initialSize); err != nil {
		r.close()
		return nil, err
	}
	return m, nil
}

// Data returns the mapped bytes.
func (m *ResizableMemory) Data() []byte {
	s := m.state.Load()
	if s == nil {
		return nil
	}
	return s.data
}

// Size returns the current logical size.
func (m *ResizableMemory) Size() uint64 {
	s := m.state.Load()
	if s == nil {
		return 0
	}
	return s.size
}

// Capacity returns the maximum size Resize can grow to.
func (m *ResizableMemory) Capacity() uint64 { return m.reservation.capacity() }

// Resize changes the logical size, committing newly-covered pages read-write
// or decommitting pages that fall out of range.
func (m *ResizableMemory) Resize(size uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if size > m.Capacity() {
		return outOfMemory(size, m.Capacity())
	}
	newMappedSize := alignUpToPageSize(size)
	base := m.reservation.base
	switch {
	case newMappedSize > m.mappedSize:
		length := newMappedSize - m.mappedSize
		if length > 0 {
			if _, err := windows.VirtualAlloc(base+uintptr(m.mappedSize), uintptr(length),
				windows.MEM_COMMIT, windows.PAGE_READWRITE); err != nil {
				return newMappingError("VirtualAlloc commit", err)
			}
		}
	case newMappedSize < m.mappedSize:
		length := m.mappedSize - newMappedSize
		if length > 0 {
			if err := windows.VirtualFree(base+uintptr(newMappedSize), uintptr(length), windows.MEM_DECOMMIT); err != nil {
				return newMappingError("VirtualFree decommit", err)
			}
		}
	}
	m.mappedSize = newMappedSize
	if size == 0 {
		m.state.Store(&resizableMemoryState{})
	} else {
		m.state.Store(&resizableMemoryState{data: unsafe.Slice((*byte)(unsafe.Pointer(base)), size), size: size})
	}
	return nil
}

// Close releases the reservation.
func (m *ResizableMemory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Store(&resizableMemoryState{})
	return m.reservation.close()
}
