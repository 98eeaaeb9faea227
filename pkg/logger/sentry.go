package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// newSentryHandler initializes the Sentry SDK and returns a handler feeding it.
// It reports false when no DSN is configured or initialization fails; in the
// latter case the failure is logged through fallback and logging continues
// without Sentry.
func newSentryHandler(cfg SentryConfig, fallback slog.Handler) (slog.Handler, bool) {
	if cfg.DSN == "" {
		return nil, false
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(fallback).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return nil, false
	}

	// Errors create Issues in Sentry; warnings are stored as logs for context.
	eventLevel := []slog.Level{slog.LevelError}
	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if minLevel, _ := ParseLevel(cfg.MinLevel); minLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	return sentryslog.Option{
		EventLevel: eventLevel,
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background()), true
}

// Flush waits up to timeout for buffered Sentry events to be delivered.
// It is safe to call when Sentry was never initialized.
// The signature fits a shutdown hook.
func Flush(timeout time.Duration) func(context.Context) error {
	return func(ctx context.Context) error {
		wait := timeout
		if deadline, ok := ctx.Deadline(); ok {
			wait = min(wait, time.Until(deadline))
		}
		sentry.Flush(wait)
		return nil
	}
}
