// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for the logging patterns used throughout the application: JSON or text output,
// level selection from configuration, and request ID propagation.
//
// Example usage:
//
//	import "gowhere/internal/observability/logging"
//
//	func main() {
//	    logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
//	    slog.SetDefault(logger)
//	}
//
//	func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    logging.FromContext(r.Context()).Info("listing countries")
//	}
package logging
