package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
)

type Config struct {
	// HTTP server
	Port string

	// Storage backend: "memory" or "sqlite"
	StoreBackend string
	SQLiteDBPath string

	// Currency used when no selection has been persisted yet
	DefaultCurrency string

	// Dashboard response cache
	CacheSize int
	CacheTTL  time.Duration

	// Reminder notification worker
	ReminderInterval time.Duration
}

func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "8082"),
		StoreBackend:     getEnv("STORE_BACKEND", "memory"),
		SQLiteDBPath:     getEnv("SQLITE_DB_PATH", "./data/fintrack.db"),
		DefaultCurrency:  getEnv("DEFAULT_CURRENCY", "USD"),
		CacheSize:        getEnvInt("CACHE_SIZE", 64),
		CacheTTL:         getEnvDuration("CACHE_TTL", 30*time.Second),
		ReminderInterval: getEnvDuration("REMINDER_INTERVAL", time.Minute),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.StoreBackend {
	case "memory":
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid store backend '%s': must be one of [memory sqlite]", c.StoreBackend))
	}

	if !core.ValidCurrency(c.DefaultCurrency) {
		errors = append(errors, fmt.Sprintf("invalid default currency '%s': unknown code", c.DefaultCurrency))
	}

	if c.CacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
	}
	if c.CacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at least 1 second", c.CacheTTL))
	}
	if c.ReminderInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid reminder interval %v: must be at least 1 second", c.ReminderInterval))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
