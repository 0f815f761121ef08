// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Store metrics track document store performance
var (
	// StoreOperationDuration measures store round-trip duration by collection and operation
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Document store operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"collection", "operation"},
	)

	// StoreOperationErrors counts failed store operations
	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of failed document store operations",
		},
		[]string{"collection", "operation"},
	)
)

// Business metrics track application-specific operations
var (
	// DocumentsWrittenTotal counts successful top-level writes
	DocumentsWrittenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_written_total",
			Help: "Total number of documents created, updated or deleted",
		},
		[]string{"collection", "operation"}, // operation: create, update, delete
	)

	// ValidationFailuresTotal counts write requests rejected by validation
	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_failures_total",
			Help: "Total number of write requests rejected by validation",
		},
		[]string{"entity", "mode"}, // mode: create, update
	)

	// ValidationViolations measures the number of violations per rejected request
	ValidationViolations = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "validation_violations",
			Help:    "Number of violations reported per rejected request",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		},
		[]string{"entity"},
	)

	// EmbeddedChangesTotal counts single-item and bulk changes to child arrays
	EmbeddedChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embedded_changes_total",
			Help: "Total number of changes applied to embedded child arrays",
		},
		[]string{"collection", "mode"},
	)
)
