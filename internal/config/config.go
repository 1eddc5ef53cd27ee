package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/shift-rota/pkg/core/scheduler"
)

const (
	configFileBase = "shift_rota_config"

	// WeekStartLayout is the date format of weekStart
	WeekStartLayout = "2006-01-02"

	// DatabaseURLEnv overrides databaseURL when set
	DatabaseURLEnv = "DATABASE_URL"
)

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	MinPerShift        int    `yaml:"minPerShift" validate:"min=0"`
	MaxPerShift        int    `yaml:"maxPerShift"`
	MaxDaysPerEmployee int    `yaml:"maxDaysPerEmployee" validate:"min=1"`
	RandomSeed         int64  `yaml:"randomSeed"`
	WeekStart          string `yaml:"weekStart,omitempty"`
	DatabaseURL        string `yaml:"databaseURL,omitempty"`

	Server ServerConfig `yaml:"server"`
}

// ErrNotFound is returned when no config file exists in any searched location
var ErrNotFound = errors.New("config file not found in current directory or home directory")

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used when no file sets a value
func Default() *Config {
	defaults := scheduler.DefaultConfig()
	return &Config{
		MinPerShift:        defaults.MinPerShift,
		MaxPerShift:        defaults.MaxPerShift,
		MaxDaysPerEmployee: defaults.MaxDaysPerEmployee,
		RandomSeed:         defaults.RandomSeed,
		Server:             ServerConfig{Addr: ":8080"},
	}
}

// Load loads and validates the configuration from shift_rota_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for an environment.
// For example, env="test" looks for "shift_rota_config.test.yaml" before "shift_rota_config.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// Keys missing from the file keep their Default values.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultFromEnv returns Default with environment overrides applied.
// Used when no config file exists.
func DefaultFromEnv() *Config {
	cfg := Default()
	applyEnv(cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	if url := os.Getenv(DatabaseURLEnv); url != "" {
		cfg.DatabaseURL = url
	}
}

// Validate validates the configuration struct and checks the week start date
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.WeekStart != "" {
		start, err := time.Parse(WeekStartLayout, cfg.WeekStart)
		if err != nil {
			return fmt.Errorf("invalid weekStart %q: %w", cfg.WeekStart, err)
		}
		if start.Weekday() != time.Monday {
			return fmt.Errorf("invalid weekStart %q: must be a Monday, got %s", cfg.WeekStart, start.Weekday())
		}
	}

	return nil
}

// SchedulerConfig returns the capacity rules for a scheduling run
func (c *Config) SchedulerConfig() scheduler.Config {
	return scheduler.Config{
		MinPerShift:        c.MinPerShift,
		MaxPerShift:        c.MaxPerShift,
		MaxDaysPerEmployee: c.MaxDaysPerEmployee,
		RandomSeed:         c.RandomSeed,
	}
}

// WeekStartDate returns the parsed weekStart, or false if none is configured
func (c *Config) WeekStartDate() (time.Time, bool) {
	if c.WeekStart == "" {
		return time.Time{}, false
	}
	start, err := time.Parse(WeekStartLayout, c.WeekStart)
	if err != nil {
		return time.Time{}, false
	}
	return start, true
}

// findConfigFile searches for the config file in current directory and home directory
// If env is provided, the env specific file (e.g. "shift_rota_config.test.yaml") is preferred
func findConfigFile(env string) (string, error) {
	candidates := []string{configFileBase + ".yaml"}
	if env != "" {
		candidates = append([]string{configFileBase + "." + env + ".yaml"}, candidates...)
	}

	homeDir, homeErr := os.UserHomeDir()

	for _, name := range candidates {
		// Check current directory
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}

		// Check home directory
		if homeErr != nil {
			continue
		}
		homeConfigPath := filepath.Join(homeDir, name)
		if _, err := os.Stat(homeConfigPath); err == nil {
			return homeConfigPath, nil
		}
	}

	if homeErr != nil {
		return "", fmt.Errorf("failed to get home directory: %w", homeErr)
	}
	return "", ErrNotFound
}
