package health

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/healthdemo/pkg/logger"
)

const defaultTimeout = 5 * time.Second

// ShowDetails controls whether responses carry per-component results.
type ShowDetails string

// Supported ShowDetails values.
const (
	ShowNever  ShowDetails = "never"
	ShowAlways ShowDetails = "always"
)

// ParseShowDetails validates a configured ShowDetails value.
func ParseShowDetails(s string) (ShowDetails, error) {
	switch v := ShowDetails(s); v {
	case ShowNever, ShowAlways:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidShowDetails, s)
	}
}

// CheckObserver is notified after every indicator invocation.
type CheckObserver func(name string, status Status, elapsed time.Duration)

// config holds endpoint configuration.
type config struct {
	logger      *slog.Logger
	observer    CheckObserver
	showDetails ShowDetails
	timeout     time.Duration
	cacheTTL    time.Duration
}

// Option configures an Endpoint.
type Option func(*config)

// WithTimeout sets the time budget for one evaluation of all indicators.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger for failed checks.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithShowDetails controls whether component results are rendered.
// Defaults to ShowNever.
func WithShowDetails(s ShowDetails) Option {
	return func(c *config) {
		if s != "" {
			c.showDetails = s
		}
	}
}

// WithCacheTTL caches evaluation results for d.
// Zero or negative disables caching (the default).
func WithCacheTTL(d time.Duration) Option {
	return func(c *config) {
		c.cacheTTL = d
	}
}

// WithObserver registers a callback invoked after each indicator runs.
func WithObserver(fn CheckObserver) Option {
	return func(c *config) {
		c.observer = fn
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout:     defaultTimeout,
		logger:      logger.NewNope(),
		showDetails: ShowNever,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
