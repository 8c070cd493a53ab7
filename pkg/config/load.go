package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load builds the configuration from, in increasing precedence, Default, the
// YAML file at path, and the environment. Each env file that exists is loaded
// into the environment first without overriding variables already set. An
// empty path skips the YAML file.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, err
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports configuration values no component can work with.
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("%w: storage type %q", ErrInvalidConfig, c.Storage.Type)
	}
	if c.Server.Address == "" {
		return fmt.Errorf("%w: empty server address", ErrInvalidConfig)
	}
	return nil
}

// ErrInvalidConfig is returned by Load and Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid configuration")

func loadEnvFiles(files ...string) error {
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to stat env file %s: %w", f, err)
		}
		existing = append(existing, f)
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env files: %w", err)
	}
	return nil
}
