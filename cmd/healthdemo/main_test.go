package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/healthdemo/internal/config"
	"github.com/dmitrymomot/healthdemo/middlewares"
	"github.com/dmitrymomot/healthdemo/pkg/logger"
)

func newTestService(t *testing.T, environ map[string]string) *service {
	t.Helper()

	if environ == nil {
		environ = map[string]string{}
	}
	cfg, err := config.FromEnvironment(environ)
	require.NoError(t, err)

	svc, err := newService(cfg, logger.NewNope())
	require.NoError(t, err)
	return svc
}

type probe struct {
	code   int
	status string
	body   map[string]any
}

func get(t *testing.T, svc *service, path string) probe {
	t.Helper()

	rec := httptest.NewRecorder()
	svc.app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	p := probe{code: rec.Code}
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p.body))
		p.status, _ = p.body["status"].(string)
	}
	return p
}

func toggle(t *testing.T, svc *service, path string) {
	t.Helper()

	rec := httptest.NewRecorder()
	svc.app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, rec.Code, path)
	require.Empty(t, rec.Body.String(), path)
}

const (
	healthPath    = "/actuator/health"
	livenessPath  = "/actuator/health/liveness"
	readinessPath = "/actuator/health/readiness"
)

func TestFreshStartIsUp(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)

	for _, path := range []string{healthPath, livenessPath, readinessPath} {
		p := get(t, svc, path)
		assert.Equal(t, http.StatusOK, p.code, path)
		assert.Equal(t, "UP", p.status, path)
		assert.Equal(t, map[string]any{"status": "UP"}, p.body, path)
	}
}

func TestLivenessIssue(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)

	toggle(t, svc, "/emulate-liveness-issue")

	p := get(t, svc, livenessPath)
	assert.Equal(t, http.StatusServiceUnavailable, p.code)
	assert.Equal(t, "DOWN", p.status)

	p = get(t, svc, readinessPath)
	assert.Equal(t, http.StatusOK, p.code)
	assert.Equal(t, "UP", p.status)

	toggle(t, svc, "/emulate-liveness-recovery")

	p = get(t, svc, livenessPath)
	assert.Equal(t, http.StatusOK, p.code)
	assert.Equal(t, "UP", p.status)
}

func TestReadinessIssue(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)

	toggle(t, svc, "/emulate-readiness-issue")

	p := get(t, svc, readinessPath)
	assert.Equal(t, http.StatusServiceUnavailable, p.code)
	assert.Equal(t, "OUT_OF_SERVICE", p.status)

	p = get(t, svc, livenessPath)
	assert.Equal(t, http.StatusOK, p.code)
	assert.Equal(t, "UP", p.status)

	toggle(t, svc, "/emulate-readiness-recovery")

	p = get(t, svc, readinessPath)
	assert.Equal(t, http.StatusOK, p.code)
	assert.Equal(t, "UP", p.status)
}

func TestDependencyDown(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)

	toggle(t, svc, "/emulate-dependency-down")

	p := get(t, svc, readinessPath)
	assert.Equal(t, http.StatusServiceUnavailable, p.code)
	assert.Equal(t, "DOWN", p.status)

	p = get(t, svc, healthPath)
	assert.Equal(t, http.StatusServiceUnavailable, p.code)
	assert.Equal(t, "DOWN", p.status)

	p = get(t, svc, livenessPath)
	assert.Equal(t, http.StatusOK, p.code)
	assert.Equal(t, "UP", p.status)

	toggle(t, svc, "/emulate-dependency-up")

	p = get(t, svc, readinessPath)
	assert.Equal(t, http.StatusOK, p.code)
	assert.Equal(t, "UP", p.status)

	p = get(t, svc, healthPath)
	assert.Equal(t, http.StatusOK, p.code)
	assert.Equal(t, map[string]any{"status": "UP"}, p.body)
}

func TestDependencyDownOutranksRefusingTraffic(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)

	toggle(t, svc, "/emulate-readiness-issue")
	toggle(t, svc, "/emulate-dependency-down")

	p := get(t, svc, readinessPath)
	assert.Equal(t, http.StatusServiceUnavailable, p.code)
	assert.Equal(t, "DOWN", p.status)
}

func TestDependencyComponentDetails(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, map[string]string{"HEALTH_SHOW_DETAILS": "always"})

	toggle(t, svc, "/emulate-dependency-down")

	p := get(t, svc, "/actuator/health/dependency")
	assert.Equal(t, http.StatusServiceUnavailable, p.code)
	assert.Equal(t, map[string]any{
		"status":  "DOWN",
		"details": map[string]any{"The dependency is DOWN": float64(42)},
	}, p.body)

	p = get(t, svc, readinessPath)
	components, ok := p.body["components"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, components, "readinessState")
	assert.Contains(t, components, "dependency")
	assert.NotContains(t, components, "livenessState")
}

func TestUnknownHealthNameIsNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)

	rec := httptest.NewRecorder()
	svc.app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/actuator/health/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestCachedProbesSeeToggles(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, map[string]string{"HEALTH_CACHE_TTL": "1h"})

	assert.Equal(t, "UP", get(t, svc, readinessPath).status)

	toggle(t, svc, "/emulate-dependency-down")
	assert.Equal(t, "DOWN", get(t, svc, readinessPath).status)

	toggle(t, svc, "/emulate-dependency-up")
	assert.Equal(t, "UP", get(t, svc, readinessPath).status)
}

func TestMetricsFollowToggles(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	require.NotNil(t, svc.metrics)

	assert.InDelta(t, 1, testutil.ToFloat64(svc.metrics.DependencyUp), 0)

	toggle(t, svc, "/emulate-dependency-down")
	assert.InDelta(t, 0, testutil.ToFloat64(svc.metrics.DependencyUp), 0)

	toggle(t, svc, "/emulate-liveness-issue")
	assert.InDelta(t, 0, testutil.ToFloat64(svc.metrics.LivenessUp), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(svc.metrics.StateChanges.WithLabelValues("liveness", "BROKEN")), 0)

	rec := httptest.NewRecorder()
	svc.app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/actuator/prometheus", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthdemo_dependency_up 0")
}

func TestMetricsDisabled(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, map[string]string{"METRICS_ENABLED": "false"})
	assert.Nil(t, svc.metrics)

	rec := httptest.NewRecorder()
	svc.app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/actuator/prometheus", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnmatchedRoutesRenderJSON(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)

	p := get(t, svc, "/missing")
	assert.Equal(t, http.StatusNotFound, p.code)
	assert.Equal(t, "Not Found", p.body["error"])
	assert.NotEmpty(t, p.body["request_id"])

	rec := httptest.NewRecorder()
	svc.app.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/emulate-dependency-down", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.True(t, svc.dependency.IsUp())
}

func TestRejectedRequestsAreLoggedAsWarnings(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromEnvironment(map[string]string{})
	require.NoError(t, err)

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{Level: "info", Format: logger.FormatJSON},
		middlewares.RequestIDExtractor())

	svc, err := newService(cfg, log)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set("X-Request-ID", "req-404")
	svc.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var found bool
	for line := range bytes.Lines(buf.Bytes()) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		if entry["msg"] == "request rejected" {
			found = true
			assert.Equal(t, "WARN", entry["level"])
			assert.Equal(t, "req-404", entry["request_id"])
			assert.InDelta(t, http.StatusNotFound, entry["status"], 0)
		}
	}
	assert.True(t, found, buf.String())
}
