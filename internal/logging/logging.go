// Package logging builds the structured loggers used by the server and
// clients. Output goes to stderr, or to a size-rotated file when one is
// configured.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vovakirdan/tui-loderunner/internal/config"
)

// New creates a logger with the given prefix. The returned closer releases
// the log file, if any, and is safe to call when logging to stderr.
func New(cfg config.LoggingConfig, prefix string) (*log.Logger, io.Closer) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}

	opts := log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
		Level:           level,
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		w, closer = lj, lj
		// Files are read by tools, not people.
		opts.Formatter = log.LogfmtFormatter
	}

	logger := log.NewWithOptions(w, opts)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", cfg.Level)
	}
	return logger, closer
}

// Discard returns a logger that drops everything. Used by tests and by
// the local client, whose terminal belongs to the UI.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// AnomalyHook adapts a logger to the board's anomaly callback.
func AnomalyHook(logger *log.Logger) func(msg string, keyvals ...any) {
	return func(msg string, keyvals ...any) {
		logger.Warn(msg, keyvals...)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
