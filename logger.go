package geyserpack

import (
	"log/slog"

	"github.com/gogpu/geyserpack/internal/logging"
)

// SetLogger configures the logger for geyserpack and all its sub-packages.
// By default, geyserpack produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by geyserpack:
//   - [slog.LevelDebug]: internal diagnostics (staged frame counts, skipped providers)
//   - [slog.LevelInfo]: lifecycle events (pack extracted, glyph sheet written)
//   - [slog.LevelWarn]: non-fatal issues (undecodable frame, incomplete armor data)
//   - [slog.LevelError]: a glyph group failed
//
// Example:
//
//	geyserpack.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by geyserpack.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
