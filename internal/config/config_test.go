// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validSecret = "config-test-secret-0123456789-0123456789"

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = validSecret
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults with secret", func(c *Config) {}, false},
		{"missing jwt secret", func(c *Config) { c.Security.JWTSecret = "" }, true},
		{"short jwt secret", func(c *Config) { c.Security.JWTSecret = "short" }, true},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad timezone", func(c *Config) { c.Stats.Timezone = "Mars/Olympus" }, true},
		{"zero lookback", func(c *Config) { c.Stats.DefaultLookbackDays = 0 }, true},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, true},
		{"empty db path in memory", func(c *Config) {
			c.Database.Path = ""
			c.Database.InMemory = true
		}, false},
		{"rate limit zero requests", func(c *Config) { c.Security.RateLimitRequests = 0 }, true},
		{"rate limit disabled ignores requests", func(c *Config) {
			c.Security.RateLimitRequests = 0
			c.Security.RateLimitDisabled = true
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStatsLocation(t *testing.T) {
	cfg := StatsConfig{Timezone: "Europe/Berlin"}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location(): %v", err)
	}
	if loc.String() != "Europe/Berlin" {
		t.Errorf("location = %s, want Europe/Berlin", loc)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"FOCUSGRAPH_SERVER_PORT", "server.port"},
		{"FOCUSGRAPH_SERVER_HOST", "server.host"},
		{"FOCUSGRAPH_LOGGING_LEVEL", "logging.level"},
		{"FOCUSGRAPH_SECURITY_JWT_SECRET", "security.jwt_secret"},
		{"FOCUSGRAPH_STATS_COUNT_WORK_ONLY", "stats.count_work_only"},
		{"FOCUSGRAPH_DATABASE_IN_MEMORY", "database.in_memory"},
		{"FOCUSGRAPH_FEED_BROADCAST_RATE", "feed.broadcast_rate"},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%s) = %s, want %s", tt.env, got, tt.want)
		}
	}
}

func TestLoadLayering(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9000
security:
  jwt_secret: ` + validSecret + `
stats:
  timezone: Europe/Berlin
database:
  in_memory: true
`
	if err := os.WriteFile(configPath, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("FOCUSGRAPH_SERVER_PORT", "9100")
	t.Setenv("FOCUSGRAPH_SERVER_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	// Env overrides file.
	if cfg.Server.Port != 9100 {
		t.Errorf("port = %d, want 9100 from env", cfg.Server.Port)
	}
	// File overrides defaults.
	if cfg.Stats.Timezone != "Europe/Berlin" {
		t.Errorf("timezone = %s, want Europe/Berlin from file", cfg.Stats.Timezone)
	}
	// Defaults survive where nothing overrides.
	if cfg.Security.SessionTimeout != 24*time.Hour {
		t.Errorf("session timeout = %v, want default 24h", cfg.Security.SessionTimeout)
	}
	if !cfg.Stats.CountWorkOnly {
		t.Error("CountWorkOnly default lost")
	}
	// Comma-separated env slice.
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[0] != "https://a.example" {
		t.Errorf("CORS origins = %v, want two parsed entries", cfg.Server.CORSOrigins)
	}
}
