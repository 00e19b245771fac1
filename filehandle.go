package mmapfile

import "os"

// fileMode selects how openFileHandle opens the underlying file. It exists
// as a distinct type, rather than reusing os.O_* flags directly, so that a
// call site cannot accidentally pass an unsupported flag combination.
type fileMode int

const (
	modeReadOnly fileMode = iota
	modeReadWrite
	modeCreateOrOpenReadWrite
)

// fileHandle wraps an *os.File with the path it was opened from, so error
// values can carry that context.
type fileHandle struct {
	f    *os.File
	path string
}

func openFileHandle(path string, mode fileMode) (*fileHandle, error) {
	var flag int
	switch mode {
	case modeReadOnly:
		flag = os.O_RDONLY
	case modeReadWrite:
		flag = os.O_RDWR
	case modeCreateOrOpenReadWrite:
		flag = os.O_RDWR | os.O_CREATE
	}
	f, err := os.OpenFile(path, flag, 0666)
	if err != nil {
		return nil, newMappedFileError("open", path, err)
	}
	return &fileHandle{f: f, path: path}, nil
}

func (h *fileHandle) size() (uint64, error) {
	fi, err := h.f.Stat()
	if err != nil {
		return 0, newMappedFileError("stat", h.path, err)
	}
	if fi.Size() < 0 {
		return 0, nil
	}
	return uint64(fi.Size()), nil
}

func (h *fileHandle) truncate(n uint64) error {
	if err := h.f.Truncate(int64(n)); err != nil {
		return newMappedFileError("truncate", h.path, err)
	}
	return nil
}

// close reports errors from the OS close call; callers that have no one to
// report to (Close-during-drop paths) should log instead of propagating.
func (h *fileHandle) close() error {
	return h.f.Close()
}
