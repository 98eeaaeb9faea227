package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config holds logger configuration.
// Embed it in the application config for env parsing with caarlos0/env.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	Sentry SentryConfig
}

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel determines which log levels are sent to Sentry as logs ("warn" or "error").
	// Errors always create Sentry issues.
	MinLevel string `env:"SENTRY_MIN_LEVEL" envDefault:"warn"`
}

// Validate reports configuration values New would silently replace.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Format) {
	case "", FormatJSON, FormatText:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}
	if _, err := ParseLevel(c.Sentry.MinLevel); err != nil {
		return fmt.Errorf("sentry min level: %w", err)
	}
	return nil
}

// ParseLevel converts a level name (debug, info, warn, error) to slog.Level.
// An empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}
