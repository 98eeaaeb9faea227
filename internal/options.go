package internal

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/healthdemo/pkg/availability"
	"github.com/dmitrymomot/healthdemo/pkg/health"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided and also wraps the probe
// and metrics endpoints.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error.
//
// Example:
//
//	internal.WithErrorHandler(func(c internal.Context, err error) error {
//	    return c.JSON(http.StatusInternalServerError, map[string]string{
//	        "error": err.Error(),
//	    })
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets a custom 404 handler for unmatched routes.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithLogger sets the application logger. It is handed to every request
// Context and used by Run unless the Logger run option overrides it.
//
// Example:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//	internal.New(internal.WithLogger(log.With("component", "http")))
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithHealth mounts the health endpoint under basePath, serving the
// aggregate at basePath and groups or components at basePath/{name}.
func WithHealth(basePath string, e *health.Endpoint) Option {
	return func(a *App) {
		if e == nil {
			return
		}
		a.health = &healthMount{endpoint: e, basePath: normalizePath(basePath)}
	}
}

// WithMetrics serves h on GET path, typically a Prometheus handler.
func WithMetrics(path string, h http.Handler) Option {
	return func(a *App) {
		if h == nil {
			return
		}
		a.metrics = &metricsMount{handler: h, path: normalizePath(path)}
	}
}

// WithAvailability lets Run mark the application as REFUSING_TRAFFIC
// as soon as shutdown starts, so readiness probes fail while in-flight
// requests drain.
func WithAvailability(av *availability.Availability) Option {
	return func(a *App) {
		a.availability = av
	}
}
