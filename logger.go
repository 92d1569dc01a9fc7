package planeshift

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

// liveBackends are the backends of open contexts that accept a logger.
var (
	liveMu       sync.Mutex
	liveBackends = make(map[loggerSetter]struct{})
)

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for planeshift and its backends.
// By default, planeshift produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by planeshift:
//   - [slog.LevelDebug]: commits, damage rectangles, framebuffer rebuilds
//   - [slog.LevelInfo]: backend selection
//   - [slog.LevelWarn]: backend fallback, resource release errors
//
// Example:
//
//	// Enable debug-level logging for full diagnostics:
//	planeshift.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	liveMu.Lock()
	defer liveMu.Unlock()
	for b := range liveBackends {
		b.SetLogger(l)
	}
}

// Logger returns the current logger used by planeshift.
// Backend packages call this to share the same logger configuration.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by backends that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// trackBackend passes the current logger to b if it accepts one and keeps
// it updated by later SetLogger calls until untrackBackend.
func trackBackend(b Backend) {
	ls, ok := b.(loggerSetter)
	if !ok {
		return
	}
	ls.SetLogger(Logger())
	liveMu.Lock()
	liveBackends[ls] = struct{}{}
	liveMu.Unlock()
}

func untrackBackend(b Backend) {
	if ls, ok := b.(loggerSetter); ok {
		liveMu.Lock()
		delete(liveBackends, ls)
		liveMu.Unlock()
	}
}
