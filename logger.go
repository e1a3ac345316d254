package compositor

import (
	"log/slog"

	"github.com/gogpu/compositor/internal/logging"
)

// SetLogger configures the logger for the compositor and all its sub-packages.
// By default, the compositor produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by the compositor:
//   - [slog.LevelDebug]: ignored paint requests, sweep statistics, surface churn
//   - [slog.LevelInfo]: lifecycle events (backend selected)
//   - [slog.LevelWarn]: backing-store allocation failures
//
// Example:
//
//	// Enable info-level logging to stderr:
//	compositor.SetLogger(slog.Default())
//
//	// Enable debug-level logging for full diagnostics:
//	compositor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by the compositor.
// Sub-packages (surface/, backend/native/, integration/layercanvas/) share
// the same logger configuration.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
