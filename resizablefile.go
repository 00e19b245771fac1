package mmapfile

// resizableFileState is the snapshot ResizableFile.Data/Size read without
// taking mu; Resize/Close replace it atomically while holding mu, the
// same split File and WritableFile use.
type resizableFileState struct {
	data    []byte
	size    uint64
	invalid bool
}
