//go:build unix

package mmapfile

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// ResizableMemory is anonymous memory that can grow up to capacity without
// its Data address changing. A PROT_NONE reservation is made once, and
// each Resize commits or decommits whole pages at the edge of the mapped
// range with mprotect/madvise rather than remapping.
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
// or decommitting pages that fall out of range. It fails with an
// OutOfMemoryError, leaving the object unchanged, if size exceeds Capacity.
func (m *ResizableMemory) Resize(size uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if size > m.Capacity() {
		return outOfMemory(size, m.Capacity())
	}
	newMappedSize := alignUpToPageSize(size)
	base := m.reservation.address()
	switch {
	case newMappedSize > m.mappedSize:
		region := base[m.mappedSize:newMappedSize]
		if len(region) > 0 {
			if err := unix.Mprotect(region, unix.PROT_READ|unix.PROT_WRITE); err != nil {
				return newMappingError("mprotect commit", err)
			}
		}
	case newMappedSize < m.mappedSize:
		region := base[newMappedSize:m.mappedSize]
		if len(region) > 0 {
			if err := unix.Mprotect(region, unix.PROT_NONE); err != nil {
				return newMappingError("mprotect decommit", err)
			}
			if err := unix.Madvise(region, unix.MADV_DONTNEED); err != nil {
				return newMappingError("madvise decommit", err)
			}
		}
	}
	m.mappedSize = newMappedSize
	if size == 0 {
		m.state.Store(&resizableMemoryState{})
	} else {
		m.state.Store(&resizableMemoryState{data: base[:size:size], size: size})
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
