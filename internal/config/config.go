package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	envDatabaseURL = "CREWDESK_DATABASE_URL"
	envHTTPAddr    = "CREWDESK_HTTP_ADDR"
)

// RosterEntry is a person listed directly in the config file
type RosterEntry struct {
	ID    int64  `yaml:"id" validate:"required,min=1"`
	Name  string `yaml:"name" validate:"required"`
	Email string `yaml:"email,omitempty" validate:"omitempty,email"`
}

// EventSeries describes a recurring match night expanded by defineEvents
type EventSeries struct {
	Title         string `yaml:"title" validate:"required"`
	Team          string `yaml:"team,omitempty"`
	Opponent      string `yaml:"opponent,omitempty"`
	RRule         string `yaml:"rrule" validate:"required"`
	DurationWeeks int    `yaml:"durationWeeks" validate:"required,min=1,max=52"`
}

// HTTPConfig configures the API server started by the serve command
type HTTPConfig struct {
	Addr        string `yaml:"addr" validate:"required"`
	MetricsAddr string `yaml:"metricsAddr,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Storage           string        `yaml:"storage" validate:"required,oneof=postgres memory"`
	DatabaseURL       string        `yaml:"databaseURL,omitempty" validate:"required_if=Storage postgres"`
	Timezone          string        `yaml:"timezone,omitempty" validate:"omitempty,timezone"`
	LogDir            string        `yaml:"logDir,omitempty"`
	LogLevel          string        `yaml:"logLevel,omitempty" validate:"omitempty,oneof=debug info warn error"`
	HTTP              HTTPConfig    `yaml:"http"`
	Roster            []RosterEntry `yaml:"roster,omitempty" validate:"dive"`
	RosterSheetID     string        `yaml:"rosterSheetID,omitempty"`
	RosterTab         string        `yaml:"rosterTab,omitempty" validate:"required_with=RosterSheetID"`
	ScheduleSheetID   string        `yaml:"scheduleSheetID,omitempty"`
	NotifyAssignments bool          `yaml:"notifyAssignments,omitempty"`
	GmailSender       string        `yaml:"gmailSender,omitempty" validate:"omitempty,email"`
	EventSeries       []EventSeries `yaml:"eventSeries,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Location returns the configured display timezone, defaulting to UTC
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NeedsGoogle reports whether any configured feature talks to Google APIs
func (c *Config) NeedsGoogle() bool {
	return c.RosterSheetID != "" || c.ScheduleSheetID != "" || c.NotifyAssignments
}

// LoadWithEnv loads and validates crewdesk_config.<env>.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// Values from the environment (or a .env file) override the file.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, rrule syntax and roster uniqueness
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, series := range cfg.EventSeries {
		if _, err := rrule.StrToRRule(series.RRule); err != nil {
			return fmt.Errorf("invalid rrule in eventSeries[%d]: %w", i, err)
		}
	}

	seen := make(map[int64]bool)
	for _, entry := range cfg.Roster {
		if seen[entry.ID] {
			return fmt.Errorf("duplicate roster id: %d", entry.ID)
		}
		seen[entry.ID] = true
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Storage == "" {
		cfg.Storage = StoragePostgres
	}
	if cfg.LogDir == "" {
		cfg.LogDir = "logs"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(envDatabaseURL); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv(envHTTPAddr); v != "" {
		cfg.HTTP.Addr = v
	}
}

// loadDotEnv loads .env from the working directory if one exists
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}

// findConfigFile searches for the config file in current directory and home directory
// If env is provided, it is added as an extension (e.g., "crewdesk_config.test.yaml")
func findConfigFile(env string) (string, error) {
	configFileName := "crewdesk_config.yaml"
	if env != "" {
		configFileName = "crewdesk_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
