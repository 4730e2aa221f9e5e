package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the winbridge configuration shared by the host and the CLI.
type Config struct {
	// SocketPath overrides the runtime-dir socket location when set.
	SocketPath string `yaml:"socket_path,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Host HostConfig `yaml:"host"`

	WindowDefaults WindowDefaults `yaml:"window_defaults"`
}

// HostConfig tunes the native host process.
type HostConfig struct {
	// PollIntervalMS is the event watch sampling period in milliseconds.
	PollIntervalMS int `yaml:"poll_interval_ms"`
}

// WindowDefaults applies to createWindow calls that omit the fields.
type WindowDefaults struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	TitleBarStyle string `yaml:"title_bar_style"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Host: HostConfig{
			PollIntervalMS: 200,
		},
		WindowDefaults: WindowDefaults{
			Width:         800,
			Height:        600,
			TitleBarStyle: "normal",
		},
	}
}

// DefaultConfigPath returns ~/.config/winbridge/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "winbridge", "config.yaml"), nil
}

// Load reads the configuration from the standard location. A missing file
// yields the defaults.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates a config file, applying defaults for
// unset fields.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.Host.PollIntervalMS == 0 {
		cfg.Host.PollIntervalMS = def.Host.PollIntervalMS
	}
	if cfg.WindowDefaults.Width == 0 {
		cfg.WindowDefaults.Width = def.WindowDefaults.Width
	}
	if cfg.WindowDefaults.Height == 0 {
		cfg.WindowDefaults.Height = def.WindowDefaults.Height
	}
	if cfg.WindowDefaults.TitleBarStyle == "" {
		cfg.WindowDefaults.TitleBarStyle = def.WindowDefaults.TitleBarStyle
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}

	if c.Host.PollIntervalMS < 20 || c.Host.PollIntervalMS > 5000 {
		return fmt.Errorf("host.poll_interval_ms must be between 20 and 5000 (got %d)", c.Host.PollIntervalMS)
	}

	if c.WindowDefaults.Width <= 0 || c.WindowDefaults.Height <= 0 {
		return fmt.Errorf("window_defaults dimensions must be positive (got %dx%d)",
			c.WindowDefaults.Width, c.WindowDefaults.Height)
	}

	switch c.WindowDefaults.TitleBarStyle {
	case "normal", "hidden":
	default:
		return fmt.Errorf("window_defaults.title_bar_style must be normal or hidden (got %q)",
			c.WindowDefaults.TitleBarStyle)
	}
	return nil
}

// PollInterval returns the host poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Host.PollIntervalMS) * time.Millisecond
}

// Save writes the config to the standard location, creating the directory
// if needed.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
