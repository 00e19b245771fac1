//go:build linux

package mmapfile

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// resident reports whether any page backing b is currently resident,
// using mincore(2). It is used to check that decommitting a shrunk range
// of ResizableMemory actually releases the underlying pages rather than
// merely hiding them behind a protection change.
func resident(t *testing.T, b []byte) bool {
	t.Helper()
	if len(b) == 0 {
		return false
	}
	vec := make([]byte, (len(b)+int(pageSize())-1)/int(pageSize()))
	// golang.org/x/sys/unix has no mincore wrapper, so issue the syscall directly.
	var err error
	_, _, errno := unix.Syscall(unix.SYS_MINCORE, uintptr(unsafe.Pointer(&b[0])), uintptr(len(b)), uintptr(unsafe.Pointer(&vec[0])))
	if errno != 0 {
		err = errno
	}
	require.NoError(t, err)
	for _, v := range vec {
		if v&1 != 0 {
			return true
		}
	}
	return false
}

func TestResizableMemoryDecommitReleasesResidency(t *testing.T) {
	m, err := NewResizableMemory(pageSize()*4, 1<<20)
	require.NoError(t, err)
	defer m.Close()

	full := m.reservation.address()[:pageSize()*4]
	copy(full, []byte("touch every page"))
	for i := uint64(0); i < 4; i++ {
		full[i*pageSize()] = 1
	}
	require.True(t, resident(t, full))

	require.NoError(t, m.Resize(pageSize()))

	shrunkAway := m.reservation.address()[pageSize() : pageSize()*4]
	require.False(t, resident(t, shrunkAway))
}
