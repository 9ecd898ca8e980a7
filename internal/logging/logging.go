// Package logging builds the charmbracelet loggers used across berrymatch.
//
// The TUI owns the terminal, so interactive commands log to a file while headless
// commands and the SSH server log to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// ParseLevel maps a level name to a log level. Unknown or empty names give info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// New returns a timestamped logger writing to w.
func New(w io.Writer, prefix, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           ParseLevel(level),
	})
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OpenFile opens path for appending, creating parent directories. A leading ~ is
// expanded to the home directory.
func OpenFile(path string) (*os.File, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("logging: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: cannot create directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: cannot open %s: %w", path, err)
	}
	return f, nil
}
