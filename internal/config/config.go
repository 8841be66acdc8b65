package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Seed import settings
	Import ImportConfig `yaml:"import"`

	// Log settings
	Log LogConfig `yaml:"log"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "sqlcipher" or "postgres"
	Path   string `yaml:"path"`   // Path to the encrypted SQLite database
	DSN    string `yaml:"dsn"`    // PostgreSQL connection string
}

type ImportConfig struct {
	SeedFile string `yaml:"seed_file"` // Flat file imported into an empty table; blank disables
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
	File   string `yaml:"file"`   // Log file; blank logs to stderr
}

// envOverrides maps environment variables onto config fields
var envOverrides = []struct {
	name  string
	field func(c *Config) *string
}{
	{"CLIENTMS_DB_DRIVER", func(c *Config) *string { return &c.Database.Driver }},
	{"CLIENTMS_DB_PATH", func(c *Config) *string { return &c.Database.Path }},
	{"CLIENTMS_DB_DSN", func(c *Config) *string { return &c.Database.DSN }},
	{"CLIENTMS_SEED_FILE", func(c *Config) *string { return &c.Import.SeedFile }},
	{"CLIENTMS_LOG_LEVEL", func(c *Config) *string { return &c.Log.Level }},
	{"CLIENTMS_LOG_FORMAT", func(c *Config) *string { return &c.Log.Format }},
	{"CLIENTMS_LOG_FILE", func(c *Config) *string { return &c.Log.File }},
}

// configDir returns ~/.config/clientms
func configDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "clientms")
	}
	return filepath.Join(homeDir, ".config", "clientms")
}

// DefaultConfigPath returns ~/.config/clientms/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := configDir()

	return &Config{
		Database: DatabaseConfig{
			Driver: "sqlcipher",
			Path:   filepath.Join(dir, "clientms.db"),
		},
		Import: ImportConfig{
			SeedFile: "clients.txt",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(dir, "clientms.log"),
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't
// exist. Environment overrides are applied on top, after loading a .env file
// from the working directory when present.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	// A missing .env is the normal case
	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	for _, o := range envOverrides {
		if v, ok := os.LookupEnv(o.name); ok {
			*o.field(c) = v
		}
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	var errs []string

	switch c.Database.Driver {
	case "sqlcipher":
		if c.Database.Path == "" {
			errs = append(errs, "database.path is required for the sqlcipher driver")
		}
	case "postgres":
		if c.Database.DSN == "" {
			errs = append(errs, "database.dsn is required for the postgres driver")
		}
	default:
		errs = append(errs, fmt.Sprintf("database.driver (%q) must be one of: sqlcipher, postgres", c.Database.Driver))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level (%q) must be one of: debug, info, warn, error", c.Log.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		errs = append(errs, fmt.Sprintf("log.format (%q) must be one of: text, json", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the directories for the database and log file
func (c *Config) EnsureDirectories() error {
	if c.Database.Driver == "sqlcipher" {
		if err := os.MkdirAll(filepath.Dir(c.Database.Path), 0700); err != nil {
			return err
		}
	}

	if c.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.Log.File), 0755); err != nil {
			return err
		}
	}

	return nil
}
