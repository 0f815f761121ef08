// Package tracing provides OpenTelemetry tracing integration.
//
// It offers an HTTP server middleware that continues W3C trace context and
// a helper that wraps each document store call in a client span. Exporter
// setup is left to the process; without one the global no-op provider is used.
//
// Example usage:
//
//	import "gowhere/internal/observability/tracing"
//
//	handler := tracing.Middleware(mux)
//
//	func (r *ArticleRepo) Get(ctx context.Context, id primitive.ObjectID) {
//	    ctx, finish := tracing.StartStoreSpan(ctx, "articles", "get")
//	    defer finish(err)
//	    // ... query ...
//	}
package tracing
