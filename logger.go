package sketch

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all records. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger sets the package-wide default logger. Sketch instances created
// afterwards without WithLogger use it. By default nothing is logged; pass
// nil to restore that.
//
// Levels used:
//   - [slog.LevelDebug]: backend selection, cache hits, frame statistics
//   - [slog.LevelWarn]: elements skipped during rendering
//   - [slog.LevelError]: recorded diagnostics errors
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the package-wide default logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
