// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/goccy/go-yaml"
)

// SystemConfigFile is used when the user has no configuration file
const SystemConfigFile = "/etc/choria/fileconverge/config.yaml"

// Config holds defaults for the command line, flags override these
type Config struct {
	// Provider is the provider used when a request does not name one
	Provider string `yaml:"provider,omitempty"`
	// SessionDirectory records events in a directory session store
	SessionDirectory string `yaml:"session_directory,omitempty"`
	// MetricsFile receives prometheus metrics in textfile format after each run
	MetricsFile string `yaml:"metrics_file,omitempty"`
	// LogLevel is one of debug, info, warn or error
	LogLevel string `yaml:"log_level,omitempty"`

	// Source is the file the configuration was loaded from
	Source string `yaml:"-"`
}

// UserConfigFile is the configuration file below the XDG config home
func UserConfigFile() string {
	if xdg.ConfigHome == "" {
		return ""
	}

	return filepath.Join(xdg.ConfigHome, "choria", "fileconverge", "config.yaml")
}

// Load loads the user configuration file falling back to the system one, an empty configuration is returned when neither exist
func Load() (*Config, error) {
	return LoadFirst(UserConfigFile(), SystemConfigFile)
}

// LoadFirst loads the first file in files that exists
func LoadFirst(files ...string) (*Config, error) {
	for _, file := range files {
		if file == "" {
			continue
		}

		cfg, err := LoadFile(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		return cfg, err
	}

	return &Config{}, nil
}

// LoadFile loads and validates a single configuration file, unknown keys are rejected
func LoadFile(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField())
	if err != nil {
		return nil, fmt.Errorf("invalid configuration file %s: %w", file, err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration file %s: %w", file, err)
	}

	cfg.Source = file

	return cfg, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	_, err := ParseLogLevel(c.LogLevel)
	return err
}

// ParseLogLevel parses a log level name, an empty level is warn
func ParseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", level)
	}
}
