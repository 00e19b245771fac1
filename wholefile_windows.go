//go:build windows

package mmapfile

import "golang.org/x/sys/windows"

func newWholeFileView(h *fileHandle, size uint64, writable, private bool) (*view, error) {
	return mapView(windows.Handle(h.f.Fd()), int(size), writable, private)
}
