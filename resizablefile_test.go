package mmapfile

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResizableFile_AddressStability(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grow.bin")
	f, err := OpenResizableFile(path, 1<<20)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, f.Resize(64))
	copy(f.Data(), "first-write")
	addr := &f.Data()[0]

	require.NoError(t, f.Resize(4096))
	require.Same(t, addr, &f.Data()[0])
	require.Equal(t, byte('f'), f.Data()[0])
}

func TestResizableFileShrinkPreservesPrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shrink.bin")
	f, err := OpenResizableFile(path, 1<<20)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, f.Resize(4096))
	copy(f.Data(), "prefix-data")

	require.NoError(t, f.Resize(16))
	require.Equal(t, []byte("prefix-data"), f.Data()[:11])
}

func TestResizableFile_CapacityEnforcement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cap.bin")
	f, err := OpenResizableFile(path, 128)
	require.NoError(t, err)
	defer f.Close()

	err = f.Resize(256)
	require.Error(t, err)
	var oom *OutOfMemoryError
	require.ErrorAs(t, err, &oom)
	require.True(t, errors.Is(err, ErrOutOfMemory))
}

func TestOpenResizableFileRejectsExistingFileAboveCapacity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "existing.bin")
	f, err := OpenResizableFile(path, 4096)
	require.NoError(t, err)
	require.NoError(t, f.Resize(4096))
	require.NoError(t, f.Close())

	_, err = OpenResizableFile(path, 100)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrOutOfMemory))
}

func TestOpenResizableFileReopensExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.bin")
	f, err := OpenResizableFile(path, 1<<20)
	require.NoError(t, err)
	require.NoError(t, f.Resize(32))
	copy(f.Data(), "persisted")
	require.NoError(t, f.Close())

	f2, err := OpenResizableFile(path, 1<<20)
	require.NoError(t, err)
	defer f2.Close()
	require.Equal(t, uint64(32), f2.Size())
	require.Equal(t, []byte("persisted"), f2.Data()[:9])
}

func TestResizableFileZeroSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.bin")
	f, err := OpenResizableFile(path, 1<<20)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, uint64(0), f.Size())
	require.Nil(t, f.Data())

	require.NoError(t, f.Resize(64))
	require.NoError(t, f.Resize(0))
	require.Equal(t, uint64(0), f.Size())
}
