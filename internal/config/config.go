// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

// Package config provides layered configuration for SwipeEats.
//
// Configuration is loaded with Koanf v2 from three sources, later sources
// overriding earlier ones:
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH)
//  3. Environment variables (HTTP_PORT, LOG_LEVEL, DATASET_PATH, ...)
package config

import (
	"fmt"
	"time"

	"github.com/swipeeats/swipeeats/internal/recommend"
)

// Config is the top-level application configuration.
type Config struct {
	Server    ServerConfig     `koanf:"server" json:"server"`
	Logging   LoggingConfig    `koanf:"logging" json:"logging"`
	Data      DataConfig       `koanf:"data" json:"data"`
	Storage   StorageConfig    `koanf:"storage" json:"storage"`
	Session   SessionConfig    `koanf:"session" json:"session"`
	Recommend recommend.Config `koanf:"recommend" json:"recommend"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host" json:"host"`
	Port            int           `koanf:"port" json:"port"`
	Timeout         time.Duration `koanf:"timeout" json:"timeout"`
	CORSOrigins     []string      `koanf:"cors_origins" json:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs" json:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window" json:"rate_limit_window"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" json:"level"`
	Format string `koanf:"format" json:"format"`
	Caller bool   `koanf:"caller" json:"caller"`
}

// DataConfig holds restaurant dataset settings.
type DataConfig struct {
	// DatasetPath is the CSV file holding the restaurant catalog.
	DatasetPath string `koanf:"dataset_path" json:"dataset_path"`

	// UserLatitude and UserLongitude anchor distance computation when the
	// client supplies no location.
	UserLatitude  float64 `koanf:"user_latitude" json:"user_latitude"`
	UserLongitude float64 `koanf:"user_longitude" json:"user_longitude"`
}

// StorageConfig holds model persistence settings.
type StorageConfig struct {
	// Path is the BadgerDB directory for the persisted user model.
	Path string `koanf:"path" json:"path"`

	// InMemory runs BadgerDB without disk persistence. Intended for tests
	// and ephemeral deployments.
	InMemory bool `koanf:"in_memory" json:"in_memory"`
}

// SessionConfig holds swipe sprint settings.
type SessionConfig struct {
	// SprintSize is the number of cards dealt per sprint.
	SprintSize int `koanf:"sprint_size" json:"sprint_size"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Data: DataConfig{
			DatasetPath: "/data/restaurants.csv",
			// Gurgaon city center, matching the bundled dataset.
			UserLatitude:  28.4595,
			UserLongitude: 77.0266,
		},
		Storage: StorageConfig{
			Path:     "/data/model",
			InMemory: false,
		},
		Session: SessionConfig{
			SprintSize: 20,
		},
		Recommend: *recommend.DefaultConfig(),
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.RateLimitReqs < 1 {
		return fmt.Errorf("server.rate_limit_reqs must be at least 1, got %d", c.Server.RateLimitReqs)
	}
	if c.Data.DatasetPath == "" {
		return fmt.Errorf("data.dataset_path is required")
	}
	if c.Data.UserLatitude < -90 || c.Data.UserLatitude > 90 {
		return fmt.Errorf("data.user_latitude must be -90 to 90, got %v", c.Data.UserLatitude)
	}
	if c.Data.UserLongitude < -180 || c.Data.UserLongitude > 180 {
		return fmt.Errorf("data.user_longitude must be -180 to 180, got %v", c.Data.UserLongitude)
	}
	if !c.Storage.InMemory && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required unless storage.in_memory is set")
	}
	if c.Session.SprintSize < 1 {
		return fmt.Errorf("session.sprint_size must be at least 1, got %d", c.Session.SprintSize)
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}
