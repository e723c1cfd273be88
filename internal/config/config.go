// Package config defines all configuration structures for the casetrace
// analysis service.  No I/O or parsing logic lives here, only plain data
// types and validation.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level       string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format      string   `mapstructure:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths"`
}

// ClassifierConfig holds text-classifier training parameters.
type ClassifierConfig struct {
	// TrainingDataPath points at the labeled JSON sample corpus fit at
	// startup.  A missing or empty file leaves the classifier in its
	// rule-based fallback state; it is never fatal.
	TrainingDataPath string `mapstructure:"training_data_path"`
}

// EntityConfig holds named-entity recognizer parameters.
type EntityConfig struct {
	// Enabled selects the lexicon tagger at startup; when false the null
	// recognizer is installed and all entity lists stay empty.
	Enabled bool `mapstructure:"enabled"`
	// ExtraLocations extends the built-in location gazetteer.
	ExtraLocations []string `mapstructure:"extra_locations"`
}

// OCRConfig holds optical-character-recognition parameters.
type OCRConfig struct {
	// Enabled allows image payloads to be routed through OCR at all.
	Enabled bool `mapstructure:"enabled"`
	// Command is the recognizer binary probed on PATH at startup.
	Command string `mapstructure:"command"`
	// Timeout bounds a single recognition run.
	Timeout time.Duration `mapstructure:"timeout"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Config is the root configuration structure for the service.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Entity     EntityConfig     `mapstructure:"entity"`
	OCR        OCRConfig        `mapstructure:"ocr"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the service.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}
	if c.Server.MaxUploadBytes < 1 {
		return fmt.Errorf("config: server.max_upload_bytes must be >= 1, got %d", c.Server.MaxUploadBytes)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	if c.OCR.Enabled {
		if c.OCR.Command == "" {
			return fmt.Errorf("config: ocr.command is required when ocr.enabled is true")
		}
		if c.OCR.Timeout <= 0 {
			return fmt.Errorf("config: ocr.timeout must be positive, got %s", c.OCR.Timeout)
		}
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("config: metrics.path is required when metrics.enabled is true")
	}

	return nil
}
