package mmapfile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResizableMemoryGrowPreservesAddress(t *testing.T) {
	m, err := NewResizableMemory(64, 1<<20)
	require.NoError(t, err)
	defer m.Close()

	copy(m.Data(), "first-write")
	addr := &m.Data()[0]

	require.NoError(t, m.Resize(8192))
	require.Same(t, addr, &m.Data()[0])
	require.Equal(t, byte('f'), m.Data()[0])
}

func TestResizableMemory_ShrinkPreservesPrefix(t *testing.T) {
	m, err := NewResizableMemory(4096, 1<<20)
	require.NoError(t, err)
	defer m.Close()

	copy(m.Data(), "prefix-data")
	require.NoError(t, m.Resize(16))
	require.Equal(t, []byte("prefix-data"), m.Data()[:11])
}

func TestResizableMemoryRejectsOverCapacity(t *testing.T) {
	m, err := NewResizableMemory(0, 128)
	require.NoError(t, err)
	defer m.Close()

	err = m.Resize(256)
	require.Error(t, err)
	var oom *OutOfMemoryError
	require.ErrorAs(t, err, &oom)
	require.True(t, errors.Is(err, ErrOutOfMemory))
}

func TestNewResizableMemoryRejectsInitialSizeOverCapacity(t *testing.T) {
	_, err := NewResizableMemory(256, 128)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrOutOfMemory))
}

func TestResizableMemoryZeroSize(t *testing.T) {
	m, err := NewResizableMemory(0, 1<<20)
	require.NoError(t, err)
	defer m.Close()

	require.Equal(t, uint64(0), m.Size())
	require.Nil(t, m.Data())
}

func TestResizableMemoryRegrowAfterShrinkToZero(t *testing.T) {
	m, err := NewResizableMemory(4096, 1<<20)
	require.NoError(t, err)
	defer m.Close()

	copy(m.Data(), "keep-me")
	require.NoError(t, m.Resize(0))
	require.Nil(t, m.Data())

	require.NoError(t, m.Resize(4096))
	require.Equal(t, byte(0), m.Data()[0], "decommit must zero the range on regrowth")
}
