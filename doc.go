// Package mmapfile exposes memory-mapped files and resizable memory
// regions as first-class objects whose exported byte slice keeps the same
// underlying pointer across growth.
//
// Five constructors cover the public surface:
//
//	OpenReadOnly(path)                        - map an existing file read-only
//	OpenReadOnlyPrivate(path)                 - map read-only with copy-on-write semantics
//	OpenWritable(path)                        - map an existing file read-write
//	OpenResizableFile(path, capacity)         - a file that can grow up to capacity
//	NewResizableMemory(initialSize, capacity) - anonymous memory that can grow up to capacity
//
// The resizable types reserve capacity bytes of virtual address space once,
// at construction, and grow a committed region into that reservation.
// Data() returns a slice backed by the same address for the life of the
// object, so a pointer derived from an earlier call stays valid across a
// later Resize, as long as the object was never resized down to zero and
// back up in between.
//
// The library is synchronous: every operation blocks on the underlying
// syscall, and none of the exported types are safe for concurrent mutation
// (Resize, Sync, Close) from more than one goroutine at a time, though
// concurrent read-only access to Data() is fine. See the doc comments on
// ResizableFile and ResizableMemory for platform-specific caveats around
// the resize strategy.
package mmapfile
