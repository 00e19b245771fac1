package mmapfile

// SyncFlag controls how Sync flushes dirty pages to their backing file.
type SyncFlag int

const (
	// SyncDefault flushes synchronously, blocking until the data has been
	// written to the backing store. On Windows, Sync calls FlushViewOfFile
	// only, which starts writing the dirty pages but does not wait for them
	// to reach the disk.
	SyncDefault SyncFlag = iota
	// SyncAsync schedules the flush without waiting for it to complete.
	// On Windows, which has no separate async flush call, this behaves
	// the same as SyncDefault.
	SyncAsync
)
