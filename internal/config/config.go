// Package config loads water-tracker settings from defaults, an optional YAML
// file, an optional .env file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the variable that points at the YAML file.
const EnvConfigPath = "WATER_TRACKER_CONFIG"

// Config holds every runtime setting.
type Config struct {
	DBPath       string `yaml:"db_path" env:"WATER_TRACKER_DB"`
	LogLevel     string `yaml:"log_level" env:"WATER_TRACKER_LOG_LEVEL"`
	LogFormat    string `yaml:"log_format" env:"WATER_TRACKER_LOG_FORMAT"`
	RequireLogin bool   `yaml:"require_login" env:"WATER_TRACKER_REQUIRE_LOGIN"`
	Username     string `yaml:"username" env:"WATER_TRACKER_USERNAME"`
	PasswordHash string `yaml:"password_hash" env:"WATER_TRACKER_PASSWORD_HASH"`
}

// Dir is the per-user directory holding the database and config file.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".water-tracker")
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		DBPath:    filepath.Join(Dir(), "water.db"),
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Load builds the configuration. path selects the YAML file; when empty,
// $WATER_TRACKER_CONFIG or ~/.water-tracker/config.yaml is used. A missing
// file or .env is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = filepath.Join(Dir(), "config.yaml")
	}
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("db_path is required")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}
