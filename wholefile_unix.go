//go:build unix

package mmapfile

func newWholeFileView(h *fileHandle, size uint64, writable, private bool) (*view, error) {
	return mapView(int(h.f.Fd()), int(size), writable, private)
}
