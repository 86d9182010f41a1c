// File path: internal/common/log.go
package common

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAgeDays = 28
)

var (
	logger     *slog.Logger
	loggerOnce sync.Once
)

// LogOptions describes where and how the process logger writes.
type LogOptions struct {
	Level  slog.Level
	Format string
	// File, when set, receives a copy of every record through a rotating writer.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger returns a singleton slog logger configured via LOG_LEVEL, LOG_FORMAT
// and LOG_FILE environment variables.
func Logger() *slog.Logger {
	loggerOnce.Do(func() {
		logger = NewLogger(os.Stdout, LogOptionsFromEnv())
	})
	return logger
}

// LogOptionsFromEnv reads logger settings from the environment.
func LogOptionsFromEnv() LogOptions {
	opts := LogOptions{
		Level:      parseLevel(os.Getenv("LOG_LEVEL")),
		Format:     strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT"))),
		File:       strings.TrimSpace(os.Getenv("LOG_FILE")),
		MaxSizeMB:  envInt("LOG_MAX_SIZE_MB", defaultLogMaxSizeMB),
		MaxBackups: envInt("LOG_MAX_BACKUPS", defaultLogMaxBackups),
		MaxAgeDays: envInt("LOG_MAX_AGE_DAYS", defaultLogMaxAgeDays),
	}
	return opts
}

// NewLogger builds a logger writing to out and, if configured, a rotating file.
func NewLogger(out io.Writer, opts LogOptions) *slog.Logger {
	writer := out
	if opts.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    positiveOr(opts.MaxSizeMB, defaultLogMaxSizeMB),
			MaxBackups: positiveOr(opts.MaxBackups, defaultLogMaxBackups),
			MaxAge:     positiveOr(opts.MaxAgeDays, defaultLogMaxAgeDays),
			Compress:   true,
		}
		if writer == nil {
			writer = rotating
		} else {
			writer = io.MultiWriter(writer, rotating)
		}
	}
	if writer == nil {
		writer = io.Discard
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	var handler slog.Handler
	if opts.Format == "json" {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(writer, handlerOpts)
	}
	return slog.New(handler)
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
