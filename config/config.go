// Package config loads and validates shrieker's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure
var ErrInvalid = errors.New("invalid config")

// Minimum screen size; the status lines sit on rows 22 and 23
const (
	MinRows = 24
	MinCols = 80
)

// Config holds all shrieker configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Relay   RelayConfig   `yaml:"relay"`
	Logging LoggingConfig `yaml:"logging"`
	Journal JournalConfig `yaml:"journal"`
}

// GameConfig describes how to start the game and which character to play.
// Empty character fields are chosen at random for each life.
type GameConfig struct {
	Binary      string   `yaml:"binary"`
	Args        []string `yaml:"args"`
	Rows        int      `yaml:"rows"`
	Cols        int      `yaml:"cols"`
	Character   string   `yaml:"character"`
	Gender      string   `yaml:"gender"`
	Race        string   `yaml:"race"`
	Align       string   `yaml:"align"`
	PickupTypes string   `yaml:"pickup_types"`
}

// RelayConfig tunes frame draining.
type RelayConfig struct {
	IdleTimeout string `yaml:"idle_timeout"`
	ReadSize    int    `yaml:"read_size"`
}

// LoggingConfig configures the log file.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// JournalConfig configures the SQLite game journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Game: GameConfig{
			Binary:      "nethack",
			Rows:        MinRows,
			Cols:        MinCols,
			PickupTypes: "$?+!=/",
		},
		Relay: RelayConfig{
			IdleTimeout: "300ms",
			ReadSize:    1024,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "/tmp/shrieker.log",
		},
		Journal: JournalConfig{
			Enabled: false,
			Path:    "shrieker.db",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
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

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if bin := os.Getenv("SHRIEKER_NETHACK"); bin != "" {
		c.Game.Binary = bin
	}
	if path := os.Getenv("SHRIEKER_LOG"); path != "" {
		c.Logging.File = path
	}
	if path := os.Getenv("SHRIEKER_JOURNAL"); path != "" {
		c.Journal.Path = path
		c.Journal.Enabled = true
	}
}

// GetIdleTimeout returns the relay idle timeout as a duration.
func (c *Config) GetIdleTimeout() time.Duration {
	d, err := time.ParseDuration(c.Relay.IdleTimeout)
	if err != nil || d <= 0 {
		return 300 * time.Millisecond
	}
	return d
}

// ValidLevels lists the accepted log levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Game.Binary == "" {
		return fmt.Errorf("%w: game binary not set", ErrInvalid)
	}
	if c.Game.Rows < MinRows || c.Game.Cols < MinCols {
		return fmt.Errorf("%w: screen %dx%d is smaller than %dx%d",
			ErrInvalid, c.Game.Cols, c.Game.Rows, MinCols, MinRows)
	}
	if c.Relay.IdleTimeout != "" {
		if d, err := time.ParseDuration(c.Relay.IdleTimeout); err != nil || d <= 0 {
			return fmt.Errorf("%w: idle timeout %q", ErrInvalid, c.Relay.IdleTimeout)
		}
	}
	if c.Relay.ReadSize < 0 {
		return fmt.Errorf("%w: read size %d", ErrInvalid, c.Relay.ReadSize)
	}

	validLevel := false
	for _, l := range ValidLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("%w: log level %q (valid: %v)", ErrInvalid, c.Logging.Level, ValidLevels)
	}

	if c.Journal.Enabled && c.Journal.Path == "" {
		return fmt.Errorf("%w: journal enabled without a path", ErrInvalid)
	}

	return nil
}
