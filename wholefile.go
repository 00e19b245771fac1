package mmapfile

import (
	"sync"
	"sync/atomic"
)

// File is a read-only mapping of an entire file. Its Data slice keeps a
// stable address for the object's lifetime; File never resizes.
//
// mu serializes Close; data is an atomic snapshot so Data never blocks on
// mu, and a slice Data returned before Close must not be used after it.
type File struct {
	handle *fileHandle
	mu     sync.Mutex
	view   *view
	data   atomic.Pointer[[]byte]
	size   uint64
}

// OpenReadOnly maps path read-only, shared with other mappers of the same
// file (MAP_SHARED / FILE_MAP_READ).
func OpenReadOnly(path string) (*File, error) {
	return openWholeFile(path, false, false)
}

// OpenReadOnlyPrivate maps path read-only with copy-on-write semantics
// (MAP_PRIVATE): writes other processes make to the file after mapping are
// not guaranteed to be visible, and the mapping never writes back.
func OpenReadOnlyPrivate(path string) (*File, error) {
	return openWholeFile(path, false, true)
}

func openWholeFile(path string, writable, private bool) (*File, error) {
	h, err := openFileHandle(path, modeReadOnly)
	if err != nil {
		return nil, err
	}
	size, err := h.size()
	if err != nil {
		h.close()
		return nil, err
	}
	v, err := newWholeFileView(h, size, writable, private)
	if err != nil {
		h.close()
		return nil, err
	}
	f := &File{handle: h, view: v, size: size}
	f.data.Store(&v.data)
	return f, nil
}

// Data returns the mapped bytes. The returned slice is valid until Close.
func (f *File) Data() []byte {
	p := f.data.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Size returns the file's size at the time it was opened.
func (f *File) Size() uint64 { return f.size }

// Close unmaps the file and closes its handle.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data.Store(nil)
	unmapErr := f.view.unmap()
	closeErr := f.handle.close()
	if unmapErr != nil {
		return unmapErr
	}
	return closeErr
}

// WritableFile is a read-write mapping of an entire, pre-existing extent of
// a file. Like File, it never resizes; see ResizableFile for a mapping that
// can grow.
type WritableFile struct {
	handle *fileHandle
	mu     sync.Mutex
	view   *view
	data   atomic.Pointer[[]byte]
	size   uint64
}

// OpenWritable maps path read-write, sharing writes back to the file
// (MAP_SHARED / FILE_MAP_WRITE).
func OpenWritable(path string) (*WritableFile, error) {
	h, err := openFileHandle(path, modeReadWrite)
	if err != nil {
		return nil, err
	}
	size, err := h.size()
	if err != nil {
		h.close()
		return nil, err
	}
	v, err := newWholeFileView(h, size, true, false)
	if err != nil {
		h.close()
		return nil, err
	}
	f := &WritableFile{handle: h, view: v, size: size}
	f.data.Store(&v.data)
	return f, nil
}

// Data returns the mapped bytes. The returned slice is valid until Close.
func (f *WritableFile) Data() []byte {
	p := f.data.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Size returns the file's size at the time it was opened.
func (f *WritableFile) Size() uint64 { return f.size }

// Sync flushes dirty pages to the backing file.
func (f *WritableFile) Sync(flags SyncFlag) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view.sync(flags)
}

// SyncRange flushes a byte range of dirty pages to the backing file.
func (f *WritableFile) SyncRange(offset, length int, flags SyncFlag) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view.syncRange(offset, length, flags)
}

// Close flushes and unmaps the file. A failure to flush is logged rather
// than returned, since by the time Close runs there may be no meaningful
// way for the caller to react beyond what an explicit prior Sync already
// allowed for.
func (f *WritableFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.view.sync(SyncDefault); err != nil {
		logSyncFailure(f.handle.path, err)
	}
	f.data.Store(nil)
	unmapErr := f.view.unmap()
	if unmapErr != nil {
		logUnmapFailure(f.handle.path, unmapErr)
	}
	closeErr := f.handle.close()
	if unmapErr != nil {
		return unmapErr
	}
	return closeErr
}
