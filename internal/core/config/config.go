// Package config handles configuration loading and validation for tick.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/tick/internal/core/styles"
	"github.com/colonyops/tick/internal/core/task"
)

// Config holds the application configuration.
type Config struct {
	Theme    string         `yaml:"theme"`
	Database DatabaseConfig `yaml:"database"`
	TUI      TUIConfig      `yaml:"tui"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// DatabaseConfig tunes the SQLite connection pool.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// TUIConfig holds interactive UI preferences.
type TUIConfig struct {
	DefaultFilter string `yaml:"default_filter"` // all, active, completed
	ConfirmClear  bool   `yaml:"confirm_clear"`  // prompt before `tick clear`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: styles.DefaultTheme,
		Database: DatabaseConfig{
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
		TUI: TUIConfig{
			DefaultFilter: string(task.FilterAll),
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
	if c.TUI.DefaultFilter == "" {
		c.TUI.DefaultFilter = defaults.TUI.DefaultFilter
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if _, ok := styles.GetPalette(c.Theme); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", c.Theme, styles.ThemeNames())
	}

	if _, err := task.ParseFilter(c.TUI.DefaultFilter); err != nil {
		return fmt.Errorf("tui.default_filter: %w", err)
	}

	return nil
}

// Filter returns the parsed default TUI filter.
func (c *Config) Filter() task.Filter {
	f, _ := task.ParseFilter(c.TUI.DefaultFilter)
	return f
}

// LogFile returns the default log file path inside the data directory.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "tick.log")
}
