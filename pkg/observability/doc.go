// Package observability bundles the service's structured logging, Prometheus
// metrics, health probes, OpenTelemetry tracing, and graceful shutdown.
package observability
