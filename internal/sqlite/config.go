// File path: internal/sqlite/config.go
package sqlite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config controls the location of the database file and the connection pool.
type Config struct {
	Path string `json:"path"`

	MaxOpenConns int `json:"max_open_conns"`
	MaxIdleConns int `json:"max_idle_conns"`

	ConnMaxLifetime time.Duration `json:"-"`
	ConnMaxIdleTime time.Duration `json:"-"`
	BusyTimeout     time.Duration `json:"-"`

	// Duration fields as they appear in a JSON config file.
	ConnMaxLifetimeString string `json:"conn_max_lifetime"`
	ConnMaxIdleTimeString string `json:"conn_max_idle_time"`
	BusyTimeoutString     string `json:"busy_timeout"`
}

// DefaultConfig returns the pool settings used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Path:            filepath.Join("data", "affirmations.db"),
		MaxOpenConns:    8,
		MaxIdleConns:    8,
		ConnMaxLifetime: 15 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		BusyTimeout:     5 * time.Second,
	}
}

// Merge overlays every set field of override onto c.
func (c Config) Merge(override Config) Config {
	result := c
	if trimmed := strings.TrimSpace(override.Path); trimmed != "" {
		result.Path = trimmed
	}
	if override.MaxOpenConns > 0 {
		result.MaxOpenConns = override.MaxOpenConns
	}
	if override.MaxIdleConns > 0 {
		result.MaxIdleConns = override.MaxIdleConns
	}
	if override.ConnMaxLifetime > 0 {
		result.ConnMaxLifetime = override.ConnMaxLifetime
	}
	if override.ConnMaxIdleTime > 0 {
		result.ConnMaxIdleTime = override.ConnMaxIdleTime
	}
	if override.BusyTimeout > 0 {
		result.BusyTimeout = override.BusyTimeout
	}
	return result
}

// LoadConfig layers SQLITE_CONFIG_FILE (JSON) and SQLITE_* environment
// variables over DefaultConfig.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if path := strings.TrimSpace(os.Getenv("SQLITE_CONFIG_FILE")); path != "" {
		fileCfg, err := loadConfigFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = cfg.Merge(fileCfg)
	}
	envCfg, err := loadConfigEnv()
	if err != nil {
		return Config{}, err
	}
	return cfg.Merge(envCfg), nil
}

func loadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("read sqlite config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse sqlite config: %w", err)
	}
	durations := []struct {
		name   string
		raw    string
		target *time.Duration
	}{
		{"conn_max_lifetime", cfg.ConnMaxLifetimeString, &cfg.ConnMaxLifetime},
		{"conn_max_idle_time", cfg.ConnMaxIdleTimeString, &cfg.ConnMaxIdleTime},
		{"busy_timeout", cfg.BusyTimeoutString, &cfg.BusyTimeout},
	}
	for _, d := range durations {
		if strings.TrimSpace(d.raw) == "" {
			continue
		}
		parsed, err := time.ParseDuration(strings.TrimSpace(d.raw))
		if err != nil {
			return Config{}, fmt.Errorf("parse sqlite config %s: %w", d.name, err)
		}
		*d.target = parsed
	}
	return cfg, nil
}

func loadConfigEnv() (Config, error) {
	cfg := Config{Path: strings.TrimSpace(os.Getenv("SQLITE_PATH"))}
	for key, target := range map[string]*int{
		"SQLITE_MAX_OPEN_CONNS": &cfg.MaxOpenConns,
		"SQLITE_MAX_IDLE_CONNS": &cfg.MaxIdleConns,
	} {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", key, err)
		}
		*target = value
	}
	for key, target := range map[string]*time.Duration{
		"SQLITE_CONN_MAX_LIFETIME":  &cfg.ConnMaxLifetime,
		"SQLITE_CONN_MAX_IDLE_TIME": &cfg.ConnMaxIdleTime,
		"SQLITE_BUSY_TIMEOUT":       &cfg.BusyTimeout,
	} {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			continue
		}
		value, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", key, err)
		}
		*target = value
	}
	return cfg, nil
}
