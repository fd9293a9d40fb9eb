package service

import (
	"context"
	"log/slog"
	"sync"

	"savecart/database"
	"savecart/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var tracer = telemetry.Tracer("service")

var (
	storeErrorsOnce    sync.Once
	storeErrorsCounter metric.Int64Counter
)

// recordStoreFailure marks the span as failed and counts the error by operation and class.
func recordStoreFailure(ctx context.Context, span trace.Span, op string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, op)

	storeErrorsOnce.Do(func() {
		c, cerr := telemetry.Meter("store").Int64Counter("store.errors")
		if cerr != nil {
			slog.Warn("failed to create store error counter", "error", cerr)
			return
		}
		storeErrorsCounter = c
	})
	if storeErrorsCounter == nil {
		return
	}

	kind := database.ClassifyError(err)
	if kind == database.ErrorClassNone {
		kind = "canceled"
	}
	storeErrorsCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("kind", kind),
	))
}
