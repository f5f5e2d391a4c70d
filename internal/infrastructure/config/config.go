// Package config loads and watches the application configuration using
// Viper, with a TOML file under the XDG config directory and SUBSTYLE_
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDirName = "substyle"

// Config is the full application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Fonts    FontsConfig    `mapstructure:"fonts"`
	Analyzer AnalyzerConfig `mapstructure:"analyzer"`
}

// DatabaseConfig configures the profile store.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FontsConfig configures the web font loader.
type FontsConfig struct {
	// StylesheetBaseURL is the root of the CSS service the loader fetches
	// web font stylesheets from.
	StylesheetBaseURL string `mapstructure:"stylesheet_base_url"`
	// RequestTimeoutSeconds bounds a single stylesheet or glyph fetch.
	// Zero means no timeout.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds"`
}

// AnalyzerConfig configures the subtitle analysis service subprocess.
type AnalyzerConfig struct {
	Command     string   `mapstructure:"command"`
	Args        []string `mapstructure:"args"`
	Model       string   `mapstructure:"model"`
	Language    string   `mapstructure:"language"`
	Device      string   `mapstructure:"device"`
	ComputeType string   `mapstructure:"compute_type"`
}

// GetConfigDir returns the directory holding the config file.
func GetConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("determine home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appDirName), nil
}

// GetDataDir returns the directory holding the profile database.
func GetDataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("determine home directory: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, appDirName), nil
}

func validateConfig(cfg *Config) error {
	switch cfg.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", cfg.Logging.Format)
	}
	if cfg.Fonts.StylesheetBaseURL == "" {
		return fmt.Errorf("fonts.stylesheet_base_url must not be empty")
	}
	if cfg.Fonts.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("fonts.request_timeout_seconds must not be negative")
	}
	return nil
}
