package mmapfile

// resizableMemoryState is the snapshot ResizableMemory.Data/Size read
// without taking mu; Resize/Close replace it atomically while holding mu.
type resizableMemoryState struct {
	data []byte
	size uint64
}
