// Package config handles configuration loading, validation, and hot reload
// for botsense.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"botsense/internal/analysis"
	"botsense/internal/interaction"
)

// Version is the current configuration schema version.
const Version = 1

// Config holds the complete service configuration.
type Config struct {
	// Version is the configuration schema version.
	Version int `toml:"version" json:"version" yaml:"version"`

	// Scoring holds every analyzer threshold and penalty weight.
	Scoring analysis.Config `toml:"scoring" json:"scoring" yaml:"scoring"`

	// Capacity is the per-session sample buffer size.
	Capacity int `toml:"capacity" json:"capacity" yaml:"capacity"`

	// Intake configures the event collector HTTP service.
	Intake IntakeConfig `toml:"intake" json:"intake" yaml:"intake"`

	// Storage configures the submission archive.
	Storage StorageConfig `toml:"storage" json:"storage" yaml:"storage"`

	// Logging configures structured log output.
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`
}

// IntakeConfig holds the collector's listen settings.
type IntakeConfig struct {
	// ListenAddr is the host:port the collector binds.
	ListenAddr string `toml:"listen_addr" json:"listen_addr" yaml:"listen_addr"`

	// MaxEventBytes caps the size of a single event message.
	MaxEventBytes int64 `toml:"max_event_bytes" json:"max_event_bytes" yaml:"max_event_bytes"`

	// SessionTTLSec is how long an idle session is retained before the
	// registry drops it.
	SessionTTLSec int `toml:"session_ttl_sec" json:"session_ttl_sec" yaml:"session_ttl_sec"`
}

// StorageConfig holds archive settings.
type StorageConfig struct {
	// DatabasePath is the SQLite file for archived submissions.
	// Empty disables archiving.
	DatabasePath string `toml:"database_path" json:"database_path" yaml:"database_path"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// Level is debug, info, warn, or error.
	Level string `toml:"level" json:"level" yaml:"level"`

	// Format is text or json.
	Format string `toml:"format" json:"format" yaml:"format"`

	// Output is stdout, stderr, or file.
	Output string `toml:"output" json:"output" yaml:"output"`

	// FilePath is the log file when Output is file.
	FilePath string `toml:"file_path" json:"file_path" yaml:"file_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version:  Version,
		Scoring:  analysis.DefaultConfig(),
		Capacity: interaction.DefaultCapacity,
		Intake: IntakeConfig{
			ListenAddr:    "127.0.0.1:8471",
			MaxEventBytes: 4096,
			SessionTTLSec: 900,
		},
		Storage: StorageConfig{
			DatabasePath: defaultDatabasePath(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// defaultDatabasePath returns the platform-specific default archive path.
func defaultDatabasePath() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "botsense", "submissions.db")
	case "windows":
		appData := os.Getenv("LOCALAPPDATA")
		if appData == "" {
			appData = os.Getenv("APPDATA")
		}
		return filepath.Join(appData, "botsense", "submissions.db")
	default:
		dataHome := os.Getenv("XDG_DATA_HOME")
		if dataHome == "" {
			home, _ := os.UserHomeDir()
			dataHome = filepath.Join(home, ".local", "share")
		}
		return filepath.Join(dataHome, "botsense", "submissions.db")
	}
}

// Validation errors.
var (
	ErrBadVersion   = errors.New("unsupported config version")
	ErrBadThreshold = errors.New("suspicion threshold must be in 1..100")
	ErrBadCapacity  = errors.New("capacity must be positive")
	ErrBadWeight    = errors.New("penalty weights must be non-negative")
	ErrBadLevel     = errors.New("log level must be debug, info, warn, or error")
)

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Version != Version {
		return fmt.Errorf("%w: %d", ErrBadVersion, c.Version)
	}
	if c.Scoring.SuspicionThreshold < 1 || c.Scoring.SuspicionThreshold > 100 {
		return fmt.Errorf("%w: %d", ErrBadThreshold, c.Scoring.SuspicionThreshold)
	}
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: %d", ErrBadCapacity, c.Capacity)
	}
	for _, w := range []int{
		c.Scoring.LinearityWeight, c.Scoring.SpeedWeight, c.Scoring.VariationWeight,
		c.Scoring.CoverageWeight, c.Scoring.RegularityWeight, c.Scoring.SilentWeight,
		c.Scoring.FastStartWeight,
	} {
		if w < 0 {
			return fmt.Errorf("%w: %d", ErrBadWeight, w)
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("%w: %q", ErrBadLevel, c.Logging.Level)
	}
	return nil
}
