package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:             "8082",
		StoreBackend:     "memory",
		SQLiteDBPath:     "./data/fintrack.db",
		DefaultCurrency:  "USD",
		CacheSize:        64,
		CacheTTL:         30 * time.Second,
		ReminderInterval: time.Minute,
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8082" {
		t.Errorf("Port = %q, want 8082", cfg.Port)
	}
	if cfg.StoreBackend != "memory" {
		t.Errorf("StoreBackend = %q, want memory", cfg.StoreBackend)
	}
	if cfg.DefaultCurrency != "USD" {
		t.Errorf("DefaultCurrency = %q, want USD", cfg.DefaultCurrency)
	}
	if cfg.CacheSize != 64 {
		t.Errorf("CacheSize = %d, want 64", cfg.CacheSize)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, want 30s", cfg.CacheTTL)
	}
	if cfg.ReminderInterval != time.Minute {
		t.Errorf("ReminderInterval = %v, want 1m", cfg.ReminderInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("DEFAULT_CURRENCY", "EUR")
	t.Setenv("CACHE_SIZE", "16")
	t.Setenv("CACHE_TTL", "5s")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.StoreBackend != "sqlite" {
		t.Errorf("StoreBackend = %q, want sqlite", cfg.StoreBackend)
	}
	if cfg.DefaultCurrency != "EUR" {
		t.Errorf("DefaultCurrency = %q, want EUR", cfg.DefaultCurrency)
	}
	if cfg.CacheSize != 16 {
		t.Errorf("CacheSize = %d, want 16", cfg.CacheSize)
	}
	if cfg.CacheTTL != 5*time.Second {
		t.Errorf("CacheTTL = %v, want 5s", cfg.CacheTTL)
	}
}

func TestLoadIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("CACHE_SIZE", "lots")
	t.Setenv("CACHE_TTL", "soon")

	cfg := Load()
	if cfg.CacheSize != 64 {
		t.Errorf("CacheSize = %d, want default 64", cfg.CacheSize)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, want default 30s", cfg.CacheTTL)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"port not a number", func(c *Config) { c.Port = "http" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "must be between"},
		{"unknown backend", func(c *Config) { c.StoreBackend = "redis" }, "invalid store backend"},
		{"sqlite without path", func(c *Config) {
			c.StoreBackend = "sqlite"
			c.SQLiteDBPath = ""
		}, "path cannot be empty"},
		{"unknown currency", func(c *Config) { c.DefaultCurrency = "XXX" }, "invalid default currency"},
		{"cache size zero", func(c *Config) { c.CacheSize = 0 }, "invalid cache size"},
		{"cache TTL too small", func(c *Config) { c.CacheTTL = 100 * time.Millisecond }, "invalid cache TTL"},
		{"reminder interval too small", func(c *Config) { c.ReminderInterval = 0 }, "invalid reminder interval"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "nope"
	cfg.StoreBackend = "redis"
	cfg.CacheSize = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"invalid port", "invalid store backend", "invalid cache size"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}
