// Package iologger sets up slog logging for jvar runs.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ddbj/jvar/pkg/config"
)

// LogFile is the name of the log file inside the log directory.
const LogFile = "jvar.log"

// Init initializes the global slog logger with the given configuration.
// Creates log file in logDir if destination is "file".
// If append is true, appends to existing log file; otherwise creates fresh file.
// The returned closer releases the log file, it is a no-op for console
// destinations.
func Init(logDir string, cfg config.LogConfig, append bool) (io.Closer, error) {
	var writer io.Writer
	var closer io.Closer = nopCloser{}

	switch cfg.Destination {
	case "stdout":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	case "file":
		logPath := filepath.Join(logDir, LogFile)
		flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if append {
			flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}
		file, err := os.OpenFile(logPath, flags, 0644)
		if err != nil {
			return closer, CreateLogFileError(logPath, err)
		}
		writer = file
		closer = file
	default:
		writer = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch cfg.Format {
	case "text", "tint":
		handler = slog.NewTextHandler(writer, handlerOpts)
	default:
		handler = slog.NewJSONHandler(writer, handlerOpts)
	}

	slog.SetDefault(slog.New(handler))
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
