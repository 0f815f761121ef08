package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordStoreOperation(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		operation  string
		duration   time.Duration
		err        error
		wantErrInc float64
	}{
		{
			name:       "successful find",
			collection: "countries",
			operation:  "find-ok",
			duration:   3 * time.Millisecond,
		},
		{
			name:       "failed insert",
			collection: "articles",
			operation:  "insert-fail",
			duration:   time.Second,
			err:        errors.New("connection reset"),
			wantErrInc: 1,
		},
		{
			name:       "zero duration",
			collection: "categories",
			operation:  "update-zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(StoreOperationErrors.WithLabelValues(tt.collection, tt.operation))
			assert.NotPanics(t, func() {
				RecordStoreOperation(tt.collection, tt.operation, tt.duration, tt.err)
			})
			after := testutil.ToFloat64(StoreOperationErrors.WithLabelValues(tt.collection, tt.operation))
			assert.Equal(t, tt.wantErrInc, after-before)
		})
	}
}

func TestRecordDocumentWritten(t *testing.T) {
	before := testutil.ToFloat64(DocumentsWrittenTotal.WithLabelValues("countries", "create"))
	RecordDocumentWritten("countries", "create")
	RecordDocumentWritten("countries", "create")
	after := testutil.ToFloat64(DocumentsWrittenTotal.WithLabelValues("countries", "create"))
	assert.Equal(t, 2.0, after-before)
}

func TestRecordValidationFailure(t *testing.T) {
	tests := []struct {
		name       string
		entity     string
		mode       string
		violations int
	}{
		{name: "single violation", entity: "country", mode: "create", violations: 1},
		{name: "many violations", entity: "article", mode: "update", violations: 12},
		{name: "zero violations", entity: "category", mode: "create", violations: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(ValidationFailuresTotal.WithLabelValues(tt.entity, tt.mode))
			assert.NotPanics(t, func() {
				RecordValidationFailure(tt.entity, tt.mode, tt.violations)
			})
			after := testutil.ToFloat64(ValidationFailuresTotal.WithLabelValues(tt.entity, tt.mode))
			assert.Equal(t, 1.0, after-before)
		})
	}
}

func TestRecordEmbeddedChange(t *testing.T) {
	for _, mode := range []string{"bulk", "single-set", "single-pull", "single-push"} {
		before := testutil.ToFloat64(EmbeddedChangesTotal.WithLabelValues("countries", mode))
		RecordEmbeddedChange("countries", mode)
		after := testutil.ToFloat64(EmbeddedChangesTotal.WithLabelValues("countries", mode))
		assert.Equal(t, 1.0, after-before, mode)
	}
}
