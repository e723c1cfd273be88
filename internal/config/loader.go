package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for all service settings.
const envPrefix = "CASETRACE"

// newViper builds a pre-configured Viper instance: YAML file type, CASETRACE_
// env prefix, automatic env binding, and a key replacer mapping "." to "_" so
// that nested keys like "server.port" resolve to "CASETRACE_SERVER_PORT".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Viper only consults the environment for keys it knows about, so every
	// key gets a registered default.  ApplyDefaults remains the source of
	// truth for the values.
	for key, val := range defaultSettings() {
		v.SetDefault(key, val)
	}
	return v
}

// defaultSettings flattens NewDefaultConfig into viper keys.
func defaultSettings() map[string]interface{} {
	d := NewDefaultConfig()
	return map[string]interface{}{
		"server.port":             d.Server.Port,
		"server.mode":             d.Server.Mode,
		"server.read_timeout":     d.Server.ReadTimeout,
		"server.write_timeout":    d.Server.WriteTimeout,
		"server.max_upload_bytes": d.Server.MaxUploadBytes,
		"server.shutdown_timeout": d.Server.ShutdownTimeout,

		"log.level":        d.Log.Level,
		"log.format":       d.Log.Format,
		"log.output_paths": d.Log.OutputPaths,

		"classifier.training_data_path": d.Classifier.TrainingDataPath,

		"entity.enabled":         d.Entity.Enabled,
		"entity.extra_locations": d.Entity.ExtraLocations,

		"ocr.enabled": d.OCR.Enabled,
		"ocr.command": d.OCR.Command,
		"ocr.timeout": d.OCR.Timeout,

		"metrics.enabled": d.Metrics.Enabled,
		"metrics.path":    d.Metrics.Path,
	}
}

// Load reads the YAML file at configPath, merges any CASETRACE_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.  It returns a fully-populated *Config or a descriptive error.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from CASETRACE_* environment variables,
// with no config file required.  This is the preferred loading strategy for
// containerised deployments.
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  It is intended for
// hot-reloading the safe subset of settings (log level); callers are
// responsible for applying only that subset at runtime.  The trained
// classifier and recognizer capabilities are fixed at startup and are never
// reloaded.
//
// Watch is non-blocking; viper manages the background goroutine.  A changed
// file that fails to parse or validate does not trigger onChange.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read; callers should have called Load first.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}
