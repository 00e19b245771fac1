package mmapfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWholeFile_ReadOnlyRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0666))

	f, err := OpenReadOnly(path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, uint64(11), f.Size())
	require.Equal(t, []byte("hello world"), f.Data())
}

func TestOpenReadOnlyPrivate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0666))

	f, err := OpenReadOnlyPrivate(path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []byte("abc"), f.Data())
}

func TestOpenReadOnlyMissingFile(t *testing.T) {
	_, err := OpenReadOnly(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
	var mfe *MappedFileError
	require.ErrorAs(t, err, &mfe)
}

func TestWholeFile_WritableMutation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("0000000000"), 0666))

	f, err := OpenWritable(path)
	require.NoError(t, err)

	copy(f.Data(), "hello")
	require.NoError(t, f.Sync(SyncDefault))
	require.NoError(t, f.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("hello00000"), got)
}

func TestOpenWritableSyncRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 16), 0666))

	f, err := OpenWritable(path)
	require.NoError(t, err)
	defer f.Close()

	copy(f.Data()[4:8], "abcd")
	require.NoError(t, f.SyncRange(4, 4, SyncDefault))
	require.Error(t, f.SyncRange(10, 100, SyncDefault))
}
