// Package observability groups the logging, metrics, tracing and SLO
// packages used by the API and the seeder.
//
// Subpackages:
//   - logging: slog construction and request-scoped loggers carried in the context
//   - metrics: Prometheus counters for store operations, writes and validation failures
//   - tracing: OpenTelemetry HTTP middleware and spans around store calls
//   - slo: rolling-window availability and latency indicators
//
// The domain and use case layers never import these packages; handlers,
// middleware and the persistence adapter do.
package observability
