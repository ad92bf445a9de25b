package viewport

import (
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/gogpu/viewport/internal/logger"
)

// SetLogger configures the logger for viewport, its sub-packages and the
// gg rasterizer. By default nothing is logged.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to restore the silent default.
//
// Log levels used by viewport:
//   - [slog.LevelDebug]: node registration, fallback kinds, skipped camera updates
//   - [slog.LevelInfo]: graphics context ready, adapter capabilities
//   - [slog.LevelWarn]: core initialize and paint failures, missing default core
//
// Example:
//
//	viewport.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logger.SetLogger(l)
	gg.SetLogger(l)
}

// Logger returns the current logger. It never returns nil.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logger.Logger()
}
