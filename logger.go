package mmapfile

import (
	"log/slog"
	"sync/atomic"
)

// Logger wraps slog.Logger with the small set of fields this package
// reports diagnostics under.
type Logger struct {
	*slog.Logger
}

var currentLogger atomic.Pointer[Logger]

func init() {
	currentLogger.Store(noopLogger())
}

func noopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(discardWriter{}, nil))}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// SetLogger installs the logger used for best-effort diagnostics emitted
// during Close/drop, where there is no caller to return an error to. Pass
// nil to go back to discarding these diagnostics.
func SetLogger(l *slog.Logger) {
	if l == nil {
		currentLogger.Store(noopLogger())
		return
	}
	currentLogger.Store(&Logger{Logger: l})
}

func logger() *Logger { return currentLogger.Load() }

// logSyncFailure reports a failed best-effort sync during Close.
func logSyncFailure(path string, err error) {
	logger().Error("sync on close failed", "path", path, "error", err)
}

// logUnmapFailure reports a failed unmap during Close.
func logUnmapFailure(path string, err error) {
	logger().Error("unmap on close failed", "path", path, "error", err)
}
