// Package observability provides the application's observability infrastructure:
// structured logging, Prometheus metrics, and OpenTelemetry tracing.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics for lookups and RCSB calls
//   - tracing: OpenTelemetry spans and HTTP middleware
package observability
