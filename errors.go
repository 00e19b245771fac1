package mmapfile

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory is the sentinel matched by errors.Is against any
// OutOfMemoryError returned by this package.
var ErrOutOfMemory = errors.New("mmapfile: requested size exceeds reservation capacity")

// MappingError reports a failed OS mapping call: mmap, munmap, mprotect,
// VirtualAlloc, CreateFileMapping, and the like. It carries no path context;
// see MappedFileError for failures tied to a specific file.
type MappingError struct {
	Op  string
	Err error
}

func (e *MappingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mmapfile: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("mmapfile: %s", e.Op)
}

func (e *MappingError) Unwrap() error { return e.Err }

func newMappingError(op string, err error) error {
	return &MappingError{Op: op, Err: err}
}

// MappedFileError reports a failed file-level operation (open, truncate,
// stat) and carries the path that was being operated on.
type MappedFileError struct {
	Op   string
	Path string
	Err  error
}

func (e *MappedFileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mmapfile: %s %q: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("mmapfile: %s %q", e.Op, e.Path)
}

func (e *MappedFileError) Unwrap() error { return e.Err }

func newMappedFileError(op, path string, err error) error {
	return &MappedFileError{Op: op, Path: path, Err: err}
}

// OutOfMemoryError is a purely logical failure: the caller asked to grow
// past capacity, or an existing file was already larger than the
// requested capacity at construction. It is never the result of an OS
// call failing.
type OutOfMemoryError struct {
	Requested uint64
	Capacity  uint64
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("mmapfile: requested size %d exceeds capacity %d", e.Requested, e.Capacity)
}

func (e *OutOfMemoryError) Is(target error) bool { return target == ErrOutOfMemory }

func outOfMemory(requested, capacity uint64) error {
	return &OutOfMemoryError{Requested: requested, Capacity: capacity}
}
