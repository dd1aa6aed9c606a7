// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Business BusinessConfig `toml:"business"`
	Storage  StorageConfig  `toml:"storage"`
	Server   ServerConfig   `toml:"server"`
	Assist   AssistConfig   `toml:"assist"`
	UI       UIConfig       `toml:"ui"`
}

// BusinessConfig holds the booking window and grid settings. These must
// stay consistent across the layout, grid and availability engines for a
// deployment, which is why they live here and nowhere else.
type BusinessConfig struct {
	OpenTime    string `toml:"open_time"`    // e.g., "09:00"
	CloseTime   string `toml:"close_time"`   // e.g., "18:00"
	StepMinutes int    `toml:"step_minutes"` // grid resolution, e.g., 30
	MinMinutes  int    `toml:"min_minutes"`  // smallest bookable block
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// ServerConfig holds the HTTP booking facade settings.
type ServerConfig struct {
	Listen string `toml:"listen"` // e.g., ":8080"
}

// AssistConfig holds LLM assistant settings. Empty provider disables it.
type AssistConfig struct {
	Provider string `toml:"provider"` // "openai", "ollama"
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Business: BusinessConfig{
			OpenTime:    "09:00",
			CloseTime:   "18:00",
			StepMinutes: 30,
			MinMinutes:  30,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Server: ServerConfig{
			Listen: ":8080",
		},
		Assist: AssistConfig{
			Provider: "",
			Model:    "",
			BaseURL:  "",
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "agendum.db"
	}
	return filepath.Join(home, ".local", "share", "agendum", "agendum.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "agendum", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AGENDUM_OPEN_TIME"); v != "" {
		cfg.Business.OpenTime = v
	}
	if v := os.Getenv("AGENDUM_CLOSE_TIME"); v != "" {
		cfg.Business.CloseTime = v
	}
	if v := os.Getenv("AGENDUM_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("AGENDUM_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("AGENDUM_ASSIST_PROVIDER"); v != "" {
		cfg.Assist.Provider = v
	}
	if v := os.Getenv("AGENDUM_ASSIST_MODEL"); v != "" {
		cfg.Assist.Model = v
	}
	if v := os.Getenv("AGENDUM_ASSIST_BASE_URL"); v != "" {
		cfg.Assist.BaseURL = v
	}
	if v := os.Getenv("AGENDUM_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Business.OpenTime, "open_time"); err != nil {
		return err
	}
	if err := validateTime(c.Business.CloseTime, "close_time"); err != nil {
		return err
	}
	if c.Business.OpenTime >= c.Business.CloseTime {
		return errors.New("open_time must be before close_time")
	}
	switch c.Business.StepMinutes {
	case 15, 30, 60:
	default:
		return fmt.Errorf("step_minutes must be 15, 30 or 60, got %d", c.Business.StepMinutes)
	}
	if c.Business.MinMinutes < c.Business.StepMinutes {
		return errors.New("min_minutes cannot be smaller than step_minutes")
	}
	if c.Business.MinMinutes%c.Business.StepMinutes != 0 {
		return errors.New("min_minutes must be a multiple of step_minutes")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	hour := t[0:2]
	minute := t[3:5]
	if !isDigits(hour) || !isDigits(minute) {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// OpenMinutes returns the opening time as minutes since midnight.
func (c *Config) OpenMinutes() int {
	return timeToMinutes(c.Business.OpenTime)
}

// CloseMinutes returns the closing time as minutes since midnight.
func (c *Config) CloseMinutes() int {
	return timeToMinutes(c.Business.CloseTime)
}

func timeToMinutes(t string) int {
	if len(t) < 5 {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	return hours*60 + int(t[3]-'0')*10 + int(t[4]-'0')
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
