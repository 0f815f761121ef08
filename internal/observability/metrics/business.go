package metrics

import "time"

// RecordStoreOperation records the duration of a store operation and counts it
// as failed when err is non-nil.
//
// Example:
//
//	start := time.Now()
//	_, err := coll.InsertOne(ctx, doc)
//	metrics.RecordStoreOperation("articles", "insert", time.Since(start), err)
func RecordStoreOperation(collection, operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(collection, operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(collection, operation).Inc()
	}
}

// RecordDocumentWritten counts a successful create, update or delete.
func RecordDocumentWritten(collection, operation string) {
	DocumentsWrittenTotal.WithLabelValues(collection, operation).Inc()
}

// RecordValidationFailure records a rejected write with its violation count.
func RecordValidationFailure(entity, mode string, violations int) {
	ValidationFailuresTotal.WithLabelValues(entity, mode).Inc()
	if violations > 0 {
		ValidationViolations.WithLabelValues(entity).Observe(float64(violations))
	}
}

// RecordEmbeddedChange counts a change to a child array.
// Mode is the embedded change mode (bulk, single-set, single-pull, single-push).
func RecordEmbeddedChange(collection, mode string) {
	EmbeddedChangesTotal.WithLabelValues(collection, mode).Inc()
}
