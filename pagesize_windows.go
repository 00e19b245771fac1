//go:build windows

package mmapfile

import (
	"sync"

	"golang.org/x/sys/windows"
)

var (
	pageSizeOnce           sync.Once
	cachedPageSize         uint64
	cachedAllocGranularity uint64
)

func querySystemInfo() {
	var info windows.SystemInfo
	windows.GetSystemInfo(&info)
	cachedPageSize = uint64(info.PageSize)
	cachedAllocGranularity = uint64(info.AllocationGranularity)
}

// pageSize returns the OS page size, queried once and cached.
func pageSize() uint64 {
	pageSizeOnce.Do(querySystemInfo)
	return cachedPageSize
}

// allocationGranularity returns the minimum alignment of a mapped view's
// base address, which on Windows is coarser than the page size (typically
// 64KiB).
func allocationGranularity() uint64 {
	pageSizeOnce.Do(querySystemInfo)
	return cachedAllocGranularity
}

func alignUpToPageSize(n uint64) uint64 {
	ps := pageSize()
	if n%ps == 0 {
		return n
	}
	return (n/ps + 1) * ps
}
