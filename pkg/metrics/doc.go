// Package metrics exposes availability and health check metrics for Prometheus.
package metrics
