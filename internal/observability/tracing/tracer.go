package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the gowhere application.
var tracer = otel.Tracer("gowhere")

// GetTracer returns the global tracer for creating spans.
// This tracer can be used throughout the application to create new spans.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}

// StartStoreSpan starts a client span around one document store call.
// The returned finish function records err on the span and ends it.
//
//	ctx, finish := tracing.StartStoreSpan(ctx, "countries", "find")
//	docs, err := coll.Find(ctx, filter)
//	finish(err)
func StartStoreSpan(ctx context.Context, collection, operation string) (context.Context, func(error)) {
	ctx, span := tracer.Start(ctx, "mongo."+collection+"."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "mongodb"),
			attribute.String("db.collection", collection),
			attribute.String("db.operation", operation),
		),
	)
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
