package middlewares

import (
	"log/slog"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/healthdemo/internal"
)

// RequestObserver receives the outcome of every request, e.g. for metrics.
// route is the matched chi pattern, or "unmatched" when no route matched.
type RequestObserver func(method, route string, status int, elapsed time.Duration)

// AccessLogConfig configures the access log middleware.
type AccessLogConfig struct {
	Observer  RequestObserver
	SkipPaths []string // Exact paths that are observed but not logged
	Level     slog.Level
}

// AccessLogOption configures AccessLogConfig.
type AccessLogOption func(*AccessLogConfig)

// WithAccessLogObserver sets a callback invoked after each request.
func WithAccessLogObserver(fn RequestObserver) AccessLogOption {
	return func(cfg *AccessLogConfig) {
		cfg.Observer = fn
	}
}

// WithAccessLogSkipPaths disables log records for the given paths.
// Probe endpoints polled every few seconds are typical candidates.
func WithAccessLogSkipPaths(paths ...string) AccessLogOption {
	return func(cfg *AccessLogConfig) {
		cfg.SkipPaths = append(cfg.SkipPaths, paths...)
	}
}

// WithAccessLogLevel sets the level of successful request records.
// Server errors are always logged at error level.
func WithAccessLogLevel(level slog.Level) AccessLogOption {
	return func(cfg *AccessLogConfig) {
		cfg.Level = level
	}
}

// AccessLog returns middleware that logs one record per request with
// method, route, status and duration. Install it after RequestID so the
// record carries the request ID.
func AccessLog(opts ...AccessLogOption) internal.Middleware {
	cfg := &AccessLogConfig{Level: slog.LevelInfo}
	for _, opt := range opts {
		opt(cfg)
	}

	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)
			elapsed := time.Since(start)

			status := responseStatus(c, err)
			route := routePattern(c)

			if cfg.Observer != nil {
				cfg.Observer(c.Request().Method, route, status, elapsed)
			}

			if _, ok := skip[c.Request().URL.Path]; ok {
				return err
			}

			level := cfg.Level
			if status >= 500 {
				level = slog.LevelError
			}
			c.Logger().Log(c.Context(), level, "request completed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.String("route", route),
				slog.Int("status", status),
				slog.Duration("duration", elapsed),
			)

			return err
		}
	}
}

// responseStatus reports the status written so far, or the status the
// error handler is about to write for err.
func responseStatus(c internal.Context, err error) int {
	if rw, ok := c.Response().(*internal.ResponseWriter); ok && rw.Written() {
		return rw.Status()
	}
	if err != nil {
		if httpErr := internal.AsHTTPError(err); httpErr != nil {
			return httpErr.Code
		}
		return 500
	}
	return 200
}

// routePattern keeps metric labels bounded by never returning a raw path.
func routePattern(c internal.Context) string {
	rctx := chi.RouteContext(c.Request().Context())
	if rctx == nil {
		return unmatchedRoute
	}
	pattern := strings.ReplaceAll(rctx.RoutePattern(), "/*/", "/")
	if pattern == "" {
		return unmatchedRoute
	}
	return pattern
}

const unmatchedRoute = "unmatched"
