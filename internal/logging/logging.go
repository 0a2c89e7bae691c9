// Package logging provides structured logging with slog for botsense.
//
// Text or JSON output, standard levels, and a component attribute on every
// record. The scoring engine itself never logs — it is pure computation —
// so this package serves the collector and CLI only.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options controls logger construction.
type Options struct {
	// Level is the minimum level: debug, info, warn, error.
	Level string

	// Format is "text" or "json".
	Format string

	// Output is "stdout", "stderr", or "file".
	Output string

	// FilePath is the log file used when Output is "file".
	FilePath string

	// Component is attached to every record.
	Component string
}

// New builds a slog.Logger from the options. Unknown values fall back to
// info/text/stderr rather than failing; logging must never block startup.
func New(opts Options) (*slog.Logger, error) {
	var w io.Writer
	switch opts.Output {
	case "stdout":
		w = os.Stdout
	case "file":
		if opts.FilePath == "" {
			return nil, fmt.Errorf("logging output is file but file_path is empty")
		}
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
	default:
		w = os.Stderr
	}

	hopts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var h slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}

	logger := slog.New(h)
	if opts.Component != "" {
		logger = logger.With("component", opts.Component)
	}
	return logger, nil
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
