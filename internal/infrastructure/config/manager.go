package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"github.com/substyle/substyle/internal/logging"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	v.SetEnvPrefix("SUBSTYLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "SUBSTYLE_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind SUBSTYLE_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "SUBSTYLE_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind SUBSTYLE_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables. A
// missing config file is not an error; defaults apply.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadLocked()
}

func (m *Manager) loadLocked() error {
	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := m.viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Database.Path == "" {
		dataDir, err := GetDataDir()
		if err != nil {
			return err
		}
		cfg.Database.Path = filepath.Join(dataDir, "profiles.db")
	}

	if err := validateConfig(&cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = &cfg
	return nil
}

func (m *Manager) setDefaults() {
	m.viper.SetDefault("logging.level", "info")
	m.viper.SetDefault("logging.format", "console")
	m.viper.SetDefault("fonts.stylesheet_base_url", "https://fonts.googleapis.com")
	m.viper.SetDefault("fonts.request_timeout_seconds", 0)
	m.viper.SetDefault("analyzer.command", "python3")
	m.viper.SetDefault("analyzer.args", []string{"-m", "whisper_service"})
	m.viper.SetDefault("analyzer.model", "large-v3")
	m.viper.SetDefault("analyzer.language", "de")
	m.viper.SetDefault("analyzer.device", "auto")
	m.viper.SetDefault("analyzer.compute_type", "float16")
}

// Get returns the current configuration. Load must have been called.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// OnChange registers a callback invoked after every successful reload.
func (m *Manager) OnChange(cb func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, cb)
}

// Watch starts watching the config file for changes and reloads
// automatically. Reload outcomes are logged with the logger carried by ctx.
func (m *Manager) Watch(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return
	}

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		log := logging.FromContext(ctx)
		log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config change detected")

		m.mu.Lock()
		if err := m.loadLocked(); err != nil {
			m.mu.Unlock()
			log.Warn().Err(err).Msg("failed to reload config")
			return
		}
		cfg := m.config
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.Unlock()

		for _, cb := range callbacks {
			cb(cfg)
		}
	})

	m.watching = true
}
