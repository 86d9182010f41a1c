// File path: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config controls the HTTP listener and where state is persisted.
type Config struct {
	Addr              string
	DBPath            string
	APIPrefix         string
	Timezone          string
	ShutdownTimeout   time.Duration
	ReadHeaderTimeout time.Duration
}

// DefaultConfig returns the baseline configuration used when no overrides are
// supplied.
func DefaultConfig() Config {
	return Config{
		Addr:              ":8001",
		DBPath:            filepath.Join("data", "affirmations.db"),
		APIPrefix:         "/api",
		Timezone:          "Local",
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// LoadDotEnv loads variables from the given .env files (".env" when none are
// named). It reports whether anything was loaded; a missing file is not an
// error.
func LoadDotEnv(paths ...string) (bool, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	existing := make([]string, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return false, fmt.Errorf("stat %s: %w", path, err)
		}
		existing = append(existing, path)
	}
	if len(existing) == 0 {
		return false, nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return false, fmt.Errorf("load env files: %w", err)
	}
	return true, nil
}

// Load builds a Config from defaults and AFFIRM_* environment variables.
func Load() (Config, error) {
	cfg := DefaultConfig()
	if value := strings.TrimSpace(os.Getenv("AFFIRM_ADDR")); value != "" {
		cfg.Addr = value
	}
	if value := strings.TrimSpace(os.Getenv("AFFIRM_DB_PATH")); value != "" {
		cfg.DBPath = value
	}
	if value, ok := os.LookupEnv("AFFIRM_API_PREFIX"); ok {
		cfg.APIPrefix = strings.TrimSpace(value)
	}
	if value := strings.TrimSpace(os.Getenv("AFFIRM_TIMEZONE")); value != "" {
		cfg.Timezone = value
	}
	if value := strings.TrimSpace(os.Getenv("AFFIRM_SHUTDOWN_TIMEOUT")); value != "" {
		dur, err := time.ParseDuration(value)
		if err != nil {
			return Config{}, fmt.Errorf("parse AFFIRM_SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = dur
	}
	if value := strings.TrimSpace(os.Getenv("AFFIRM_READ_HEADER_TIMEOUT")); value != "" {
		dur, err := time.ParseDuration(value)
		if err != nil {
			return Config{}, fmt.Errorf("parse AFFIRM_READ_HEADER_TIMEOUT: %w", err)
		}
		cfg.ReadHeaderTimeout = dur
	}
	cfg = ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyDefaults fills zero fields from DefaultConfig and normalises the API
// prefix to a leading slash without a trailing one. An empty prefix mounts the
// API at the root.
func ApplyDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = defaults.Addr
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = defaults.DBPath
	}
	if strings.TrimSpace(cfg.Timezone) == "" {
		cfg.Timezone = defaults.Timezone
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	prefix := strings.Trim(strings.TrimSpace(cfg.APIPrefix), "/")
	if prefix != "" {
		prefix = "/" + prefix
	}
	cfg.APIPrefix = prefix
	return cfg
}

// Validate reports configuration that cannot be served.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("listen address required")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("database path required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured time zone used to decide "today".
func (c Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}
