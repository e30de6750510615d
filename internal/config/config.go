package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors the sqlseed.yaml file.
type Config struct {
	DB  DBConfig  `yaml:"db"`
	Log LogConfig `yaml:"log"`
}

// DBConfig carries the connection settings handed to the manager.
type DBConfig struct {
	Driver   string `yaml:"driver"`
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// LogConfig controls log level and the optional rotating log file.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the configuration used when no file is present: a local
// SQLite database and console-only info logging.
func Default() *Config {
	return &Config{
		DB:  DBConfig{Driver: "sqlite", URL: "./sqlseed.db"},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the configuration file at path, falling back to defaults when
// path is empty or the file does not exist. Environment variables
// SQLSEED_DB_DRIVER, SQLSEED_DB_URL, SQLSEED_DB_USERNAME and
// SQLSEED_DB_PASSWORD override the file in all cases.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// optional file, defaults apply
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SQLSEED_DB_DRIVER"); v != "" {
		cfg.DB.Driver = v
	}
	if v := os.Getenv("SQLSEED_DB_URL"); v != "" {
		cfg.DB.URL = v
	}
	if v := os.Getenv("SQLSEED_DB_USERNAME"); v != "" {
		cfg.DB.Username = v
	}
	if v := os.Getenv("SQLSEED_DB_PASSWORD"); v != "" {
		cfg.DB.Password = v
	}
}
