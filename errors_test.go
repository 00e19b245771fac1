package mmapfile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutOfMemoryErrorMatchesSentinel(t *testing.T) {
	err := outOfMemory(100, 10)
	require.True(t, errors.Is(err, ErrOutOfMemory))

	var oom *OutOfMemoryError
	require.True(t, errors.As(err, &oom))
	require.Equal(t, uint64(100), oom.Requested)
	require.Equal(t, uint64(10), oom.Capacity)
}

func TestMappedFileErrorCarriesPath(t *testing.T) {
	err := newMappedFileError("open", "/tmp/does-not-exist", errors.New("no such file"))
	var mfe *MappedFileError
	require.True(t, errors.As(err, &mfe))
	require.Equal(t, "/tmp/does-not-exist", mfe.Path)
	require.Contains(t, err.Error(), "/tmp/does-not-exist")
}

func TestMappingErrorHasNoPath(t *testing.T) {
	err := newMappingError("mmap", errors.New("cannot allocate memory"))
	var me *MappingError
	require.True(t, errors.As(err, &me))
	require.NotContains(t, err.Error(), "path")
}
