package visual

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Log areas attached to records as the "area" attribute, so handlers can
// route diagnostics of one subsystem.
const (
	// AreaVisual tags records from draw operations and rendering.
	AreaVisual = "Visual"

	// AreaControl tags records from controls.
	AreaControl = "Control"
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

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for visual and all its sub-packages.
// By default, visual produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by visual:
//   - [slog.LevelDebug]: frame diagnostics (damage, rendered and skipped operations)
//   - [slog.LevelWarn]: non-fatal issues (a drawable failed to release its resources)
//   - [slog.LevelError]: a custom drawable failed while rendering
//
// Render failures of custom drawables are only visible through this logger.
// Every record carries an "area" attribute ([AreaVisual], [AreaControl]).
//
// Example:
//
//	visual.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by visual.
// Sub-packages call this to share the same logger configuration.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
