package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New creates a logger writing to stdout with optional context extractors.
// When cfg.Sentry.DSN is set, records are also sent to Sentry.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg, extractors...)
}

// NewWithWriter is New with a custom destination instead of stdout.
func NewWithWriter(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	handler := newBaseHandler(w, cfg)

	if sentryHandler, ok := newSentryHandler(cfg.Sentry, handler); ok {
		handler = newMultiHandler(handler, sentryHandler)
	}

	return slog.New(NewLogHandlerDecorator(handler, extractors...))
}

// newBaseHandler builds the JSON or text handler. Invalid values fall back
// to JSON at info level; call Config.Validate to reject them up front.
func newBaseHandler(w io.Writer, cfg Config) slog.Handler {
	level, _ := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Format, FormatText) {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
