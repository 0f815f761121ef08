// Package metrics provides the Prometheus metrics recorded below the HTTP layer.
//
// This package centralizes:
//   - Document store metrics (operation latency, failures)
//   - Business metrics (documents written, validation failures, embedded changes)
//
// HTTP request metrics live with the HTTP middleware in internal/handler/http.
// All metrics are registered with the Prometheus default registry and exposed
// via the /metrics endpoint.
//
// Example usage:
//
//	import "gowhere/internal/observability/metrics"
//
//	func (r *CountryRepo) Find(ctx context.Context, f repository.CountryFilter) {
//	    start := time.Now()
//	    // ... run the query ...
//	    metrics.RecordStoreOperation("countries", "find", time.Since(start), err)
//	}
package metrics
