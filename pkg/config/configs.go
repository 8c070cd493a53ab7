package config

import (
	"github.com/Aleph-Alpha/calltrace/pkg/calltrace"
	"github.com/Aleph-Alpha/calltrace/pkg/logger"
	"github.com/Aleph-Alpha/calltrace/pkg/metrics"
	"github.com/Aleph-Alpha/calltrace/pkg/postgres"
)

// Storage backends of the item repository.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Logger   logger.Config    `yaml:"logger"`
	Trace    calltrace.Config `yaml:"trace"`
	Postgres postgres.Config  `yaml:"postgres"`
	Metrics  metrics.Config   `yaml:"metrics"`
	Server   ServerConfig     `yaml:"server"`
	Storage  StorageConfig    `yaml:"storage"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address string `yaml:"address" envconfig:"SERVER_ADDRESS"`
}

// StorageConfig selects the item repository implementation.
type StorageConfig struct {
	// Type is "memory" or "postgres".
	Type string `yaml:"type" envconfig:"STORAGE_TYPE"`
}

// Default returns default configuration. Tracing is enabled for the item
// domain with the default name fragments.
func Default() *Config {
	return &Config{
		Logger: logger.Config{
			Level:       logger.Info,
			ServiceName: "itemservice",
			Encoding:    "json",
		},
		Trace: calltrace.Config{
			TargetPackage: "github.com/Aleph-Alpha/calltrace/internal",
			NameFragments: append([]string(nil), calltrace.DefaultNameFragments...),
		},
		Postgres: postgres.Config{
			Connection: postgres.Connection{
				Host:    "localhost",
				Port:    "5432",
				User:    "postgres",
				DbName:  "items",
				SSLMode: "disable",
			},
		},
		Metrics: metrics.Config{
			Address:                 metrics.DefaultMetricsAddress,
			EnableDefaultCollectors: true,
			Namespace:               "itemservice",
			ServiceName:             "itemservice",
		},
		Server: ServerConfig{
			Address: ":8080",
		},
		Storage: StorageConfig{
			Type: StorageMemory,
		},
	}
}
