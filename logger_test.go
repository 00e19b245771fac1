package mmapfile

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetLoggerReceivesDropDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	logSyncFailure("/tmp/example.bin", errSentinelForTest)

	require.Contains(t, buf.String(), "sync on close failed")
	require.Contains(t, buf.String(), "/tmp/example.bin")
}

func TestSetLoggerNilRestoresNoop(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	SetLogger(nil)

	logUnmapFailure("/tmp/example.bin", errSentinelForTest)

	require.Empty(t, buf.String())
}

var errSentinelForTest = &MappingError{Op: "test", Err: nil}
