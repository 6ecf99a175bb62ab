package config

import (
	"slices"
	"strings"
	"time"
)

// ApplyDefaults fills zero-valued fields after file and environment
// loading. Explicit values are never overwritten; booleans stay opt-in.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Telemetry.Endpoint == "" {
		cfg.Telemetry.Endpoint = "localhost:4317"
	}
	if cfg.Telemetry.SampleRate == 0 {
		cfg.Telemetry.SampleRate = 1.0
	}

	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}

	if cfg.Storage.Target == "" {
		cfg.Storage.Target = "memory"
	}
	if cfg.Storage.Cell == "" {
		cfg.Storage.Cell = "articles"
	}
	if cfg.Storage.Collection == "" {
		cfg.Storage.Collection = "articles"
	}
	if len(cfg.Storage.Collections) == 0 {
		cfg.Storage.Collections = []string{cfg.Storage.Collection}
	}
	// The served collection is always ensured, so a collections list that
	// omits it cannot leave the service writing to an un-ensured table.
	if !slices.Contains(cfg.Storage.Collections, cfg.Storage.Collection) {
		cfg.Storage.Collections = append(cfg.Storage.Collections, cfg.Storage.Collection)
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}

	// The API server re-applies these at construction; filling them here
	// keeps saved config files complete.
	if cfg.API.Port == 0 {
		cfg.API.Port = 8080
	}
	if cfg.API.ReadTimeout == 0 {
		cfg.API.ReadTimeout = 10 * time.Second
	}
	if cfg.API.WriteTimeout == 0 {
		cfg.API.WriteTimeout = 10 * time.Second
	}
	if cfg.API.IdleTimeout == 0 {
		cfg.API.IdleTimeout = 60 * time.Second
	}
	if cfg.API.RequestTimeout == 0 {
		cfg.API.RequestTimeout = 30 * time.Second
	}
}

// GetDefaultConfig returns a fully defaulted configuration, used for
// `quill init` and when no config file exists.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
