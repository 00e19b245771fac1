//go:build unix

package mmapfile

import "golang.org/x/sys/unix"

// reservation is a contiguous range of capacity bytes of virtual address
// space with no accessible pages, acquired once per resizable object by
// reserving with PROT_NONE | MAP_PRIVATE | MAP_ANONYMOUS | MAP_NORESERVE.
type reservation struct {
	data []byte // PROT_NONE mapping; data[0]'s address is the reservation base
}

func newReservation(capacity uint64) (*reservation, error) {
	data, err := unix.Mmap(-1, 0, int(capacity), unix.PROT_NONE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_NORESERVE)
	if err != nil {
		return nil, newMappingError("mmap reserve", err)
	}
	return &reservation{data: data}, nil
}

func (r *reservation) capacity() uint64 { return uint64(len(r.data)) }

// address returns the reservation's fixed base address as a byte offset
// slice of length capacity, to be sliced further by callers.
func (r *reservation) address() []byte { return r.data }

// close releases the entire reserved range. It is only safe to call after
// every view mapped into the range has already been unmapped.
func (r *reservation) close() error {
	if r.data == nil {
		return nil
	}
	data := r.data
	r.data = nil
	if err := unix.Munmap(data); err != nil {
		return newMappingError("munmap reserve", err)
	}
	return nil
}
