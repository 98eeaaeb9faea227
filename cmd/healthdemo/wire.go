package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/healthdemo/internal"
	"github.com/dmitrymomot/healthdemo/internal/config"
	"github.com/dmitrymomot/healthdemo/internal/emulate"
	"github.com/dmitrymomot/healthdemo/middlewares"
	"github.com/dmitrymomot/healthdemo/pkg/availability"
	"github.com/dmitrymomot/healthdemo/pkg/dependency"
	"github.com/dmitrymomot/healthdemo/pkg/health"
	"github.com/dmitrymomot/healthdemo/pkg/metrics"
)

// service holds the wired application and the state it owns.
type service struct {
	app          *internal.App
	availability *availability.Availability
	dependency   *dependency.State
	endpoint     *health.Endpoint
	metrics      *metrics.Metrics
}

func newService(cfg *config.Config, log *slog.Logger) (*service, error) {
	avail := availability.New(availability.WithLogger(log.With("component", "availability")))
	dep := dependency.New(dependency.WithLogger(log.With("component", "dependency")))

	reg := health.NewRegistry()
	if err := availability.Register(reg, avail); err != nil {
		return nil, fmt.Errorf("register availability indicators: %w", err)
	}
	if err := reg.Register(dependency.IndicatorName, dependency.Indicator(dep)); err != nil {
		return nil, fmt.Errorf("register dependency indicator: %w", err)
	}

	var m *metrics.Metrics
	healthOpts := []health.Option{
		health.WithLogger(log.With("component", "health")),
		health.WithTimeout(cfg.Health.Timeout),
		health.WithShowDetails(cfg.ShowDetails()),
		health.WithCacheTTL(cfg.Health.CacheTTL),
	}
	if cfg.Metrics.Enabled {
		m = metrics.New()
		m.Sync(avail, dep.IsUp())
		avail.Subscribe(m.ObserveAvailability)
		dep.Subscribe(m.ObserveDependency)
		healthOpts = append(healthOpts, health.WithObserver(m.ObserveCheck))
	}

	endpoint, err := health.NewEndpoint(reg, cfg.HealthGroups(), healthOpts...)
	if err != nil {
		return nil, fmt.Errorf("build health endpoint: %w", err)
	}

	// Probes must see toggles immediately even when results are cached.
	avail.Subscribe(func(context.Context, availability.Event) { endpoint.Invalidate() })
	dep.Subscribe(func(context.Context, bool, string) { endpoint.Invalidate() })

	accessOpts := []middlewares.AccessLogOption{}
	if !cfg.Health.LogProbes {
		accessOpts = append(accessOpts, middlewares.WithAccessLogSkipPaths(probePaths(cfg, endpoint)...))
	}
	if m != nil {
		accessOpts = append(accessOpts, middlewares.WithAccessLogObserver(m.ObserveRequest))
	}

	opts := []internal.Option{
		internal.WithLogger(log.With("component", "http")),
		internal.WithAvailability(avail),
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.AccessLog(accessOpts...),
			middlewares.Recover(),
		),
		internal.WithHealth(cfg.Health.BasePath, endpoint),
		internal.WithHandlers(emulate.New(avail, dep)),
		internal.WithErrorHandler(renderError),
		internal.WithNotFoundHandler(func(internal.Context) error {
			return internal.ErrNotFound(http.StatusText(http.StatusNotFound))
		}),
		internal.WithMethodNotAllowedHandler(func(internal.Context) error {
			return internal.ErrMethodNotAllowed(http.StatusText(http.StatusMethodNotAllowed))
		}),
	}
	if m != nil {
		opts = append(opts, internal.WithMetrics(cfg.Metrics.Path, m.Handler()))
	}

	return &service{
		app:          internal.New(opts...),
		availability: avail,
		dependency:   dep,
		endpoint:     endpoint,
		metrics:      m,
	}, nil
}

// probePaths lists the paths polled by orchestrators and scrapers.
func probePaths(cfg *config.Config, e *health.Endpoint) []string {
	base := cfg.Health.BasePath
	paths := []string{base}
	for _, g := range e.Groups() {
		paths = append(paths, base+"/"+g)
	}
	if cfg.Metrics.Enabled {
		paths = append(paths, cfg.Metrics.Path)
	}
	return paths
}

// renderError writes handler errors as JSON.
func renderError(c internal.Context, err error) error {
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	if httpErr := internal.AsHTTPError(err); httpErr != nil {
		code = httpErr.Code
		msg = httpErr.Message
	}
	if code >= http.StatusInternalServerError {
		c.LogError("request failed", "error", err)
	} else {
		c.LogWarn("request rejected", "status", code, "error", err)
	}

	body := map[string]string{"error": msg}
	if id := middlewares.GetRequestID(c); id != "" {
		body["request_id"] = id
	}
	return c.JSON(code, body)
}
