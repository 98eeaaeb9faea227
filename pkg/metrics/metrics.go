package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/healthdemo/pkg/availability"
	"github.com/dmitrymomot/healthdemo/pkg/health"
)

// Metrics contains the Prometheus collectors for availability and health checks.
type Metrics struct {
	LivenessUp    prometheus.Gauge
	ReadinessUp   prometheus.Gauge
	DependencyUp  prometheus.Gauge
	StateChanges  *prometheus.CounterVec
	CheckDuration *prometheus.HistogramVec
	HTTPDuration  *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates the collectors on a private registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		LivenessUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "healthdemo_liveness_up",
			Help: "1 when liveness is CORRECT, 0 when BROKEN",
		}),
		ReadinessUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "healthdemo_readiness_up",
			Help: "1 when readiness is ACCEPTING_TRAFFIC, 0 when REFUSING_TRAFFIC",
		}),
		DependencyUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "healthdemo_dependency_up",
			Help: "1 when the dependency is reported up, 0 otherwise",
		}),
		StateChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "healthdemo_state_changes_total",
				Help: "Total number of recorded state changes",
			},
			[]string{"kind", "state"},
		),
		CheckDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "healthdemo_health_check_duration_seconds",
				Help:    "Time spent evaluating a single health indicator",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"indicator", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "healthdemo_http_request_duration_seconds",
				Help:    "HTTP request latency by route pattern",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.LivenessUp,
		m.ReadinessUp,
		m.DependencyUp,
		m.StateChanges,
		m.CheckDuration,
		m.HTTPDuration,
	)

	return m
}

// Registry returns the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveAvailability records an availability event. It fits availability.Observer.
func (m *Metrics) ObserveAvailability(_ context.Context, e availability.Event) {
	switch e.Kind {
	case availability.KindLiveness:
		m.LivenessUp.Set(boolToFloat(e.State == string(availability.Correct)))
	case availability.KindReadiness:
		m.ReadinessUp.Set(boolToFloat(e.State == string(availability.AcceptingTraffic)))
	}
	m.StateChanges.WithLabelValues(string(e.Kind), e.State).Inc()
}

// ObserveDependency records a dependency change. It fits dependency.Observer.
func (m *Metrics) ObserveDependency(_ context.Context, up bool, _ string) {
	m.DependencyUp.Set(boolToFloat(up))
	state := "DOWN"
	if up {
		state = "UP"
	}
	m.StateChanges.WithLabelValues("dependency", state).Inc()
}

// ObserveCheck records one indicator evaluation. It fits health.CheckObserver.
func (m *Metrics) ObserveCheck(name string, status health.Status, elapsed time.Duration) {
	m.CheckDuration.WithLabelValues(name, string(status)).Observe(elapsed.Seconds())
}

// ObserveRequest records one HTTP request. It fits middlewares.RequestObserver.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Sync sets the gauges from current state without counting a change.
// Call it once after construction so the gauges do not start at zero.
func (m *Metrics) Sync(a *availability.Availability, dependencyUp bool) {
	m.LivenessUp.Set(boolToFloat(a.Liveness() == availability.Correct))
	m.ReadinessUp.Set(boolToFloat(a.Readiness() == availability.AcceptingTraffic))
	m.DependencyUp.Set(boolToFloat(dependencyUp))
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
