//go:build unix

package mmapfile

import (
	"sync"

	"golang.org/x/sys/unix"
)

var (
	pageSizeOnce  sync.Once
	cachedPageSize uint64
)

// pageSize returns the OS page size, queried once and cached.
func pageSize() uint64 {
	pageSizeOnce.Do(func() {
		cachedPageSize = uint64(unix.Getpagesize())
	})
	return cachedPageSize
}

// allocationGranularity equals pageSize on Unix; Windows has a coarser one.
func allocationGranularity() uint64 {
	return pageSize()
}

func alignUpToPageSize(n uint64) uint64 {
	ps := pageSize()
	if n%ps == 0 {
		return n
	}
	return (n/ps + 1) * ps
}
