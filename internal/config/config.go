// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

// Package config loads layered configuration: struct defaults, then an
// optional YAML file, then FOCUSGRAPH_-prefixed environment variables,
// each layer overriding the previous.
package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/focusgraph/internal/auth"
	"github.com/tomtom215/focusgraph/internal/database"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig    `koanf:"server"`
	Database database.Config `koanf:"database"`
	Security SecurityConfig  `koanf:"security"`
	Logging  LoggingConfig   `koanf:"logging"`
	Stats    StatsConfig     `koanf:"stats"`
	Cache    CacheConfig     `koanf:"cache"`
	Feed     FeedConfig      `koanf:"feed"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// Addr returns the listen address in host:port form.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SecurityConfig controls authentication and rate limiting.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig controls the zerolog output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // "json" or "console"
	Caller bool   `koanf:"caller"`
}

// StatsConfig controls the aggregation pipeline.
type StatsConfig struct {
	// CountWorkOnly restricts streak computation to work sessions. When
	// false, breaks extend streaks too.
	CountWorkOnly bool `koanf:"count_work_only"`

	// DefaultLookbackDays is the period-aggregation window when a
	// request does not specify one.
	DefaultLookbackDays int `koanf:"default_lookback_days"`

	// Timezone is the IANA zone for day-boundary arithmetic (streaks,
	// buckets, weekly activity).
	Timezone string `koanf:"timezone"`
}

// Location resolves the configured timezone.
func (c StatsConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// CacheConfig controls the derived-view TTL cache.
type CacheConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

// FeedConfig controls the live activity feed.
type FeedConfig struct {
	// BroadcastRate caps WebSocket feed broadcasts per second.
	// Zero disables the cap.
	BroadcastRate int `koanf:"broadcast_rate"`
}

// defaultConfig returns the baseline configuration before file and env
// layers apply.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
		},
		Database: database.Config{
			Path:     "/data/focusgraph",
			InMemory: false,
		},
		Security: SecurityConfig{
			JWTSecret:         "",
			SessionTimeout:    24 * time.Hour,
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Stats: StatsConfig{
			CountWorkOnly:       true,
			DefaultLookbackDays: 30,
			Timezone:            "UTC",
		},
		Cache: CacheConfig{
			TTL: 30 * time.Second,
		},
		Feed: FeedConfig{
			BroadcastRate: 20,
		},
	}
}

// Validate checks the configuration for startup-blocking mistakes.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if len(c.Security.JWTSecret) < auth.MinSecretLength {
		return fmt.Errorf("security.jwt_secret must be at least %d characters", auth.MinSecretLength)
	}
	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("security.session_timeout must be positive")
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitRequests < 1 {
			return fmt.Errorf("security.rate_limit_requests must be at least 1")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive")
		}
	}
	if c.Stats.DefaultLookbackDays < 1 {
		return fmt.Errorf("stats.default_lookback_days must be at least 1")
	}
	if _, err := c.Stats.Location(); err != nil {
		return err
	}
	if !c.Database.InMemory && c.Database.Path == "" {
		return fmt.Errorf("database.path is required unless database.in_memory is set")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	return nil
}
