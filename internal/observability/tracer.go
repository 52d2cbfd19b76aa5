package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/WaadSulaiman/SocialMedia.Api"

type TraceContext struct {
	TraceID string
	SpanID  string
}

func ExtractTrace(ctx context.Context) *TraceContext {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return nil
	}

	sc := span.SpanContext()

	return &TraceContext{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// StartOperation opens a span for a usecase operation. The returned func
// ends the span and records the outcome in the operation metrics.
func StartOperation(ctx context.Context, operation string) (context.Context, func(outcome string)) {
	started := time.Now()
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, operation)

	return ctx, func(outcome string) {
		span.SetAttributes(attribute.String("operation.outcome", outcome))
		if outcome == "problem" {
			span.SetStatus(codes.Error, outcome)
		}
		span.End()

		ObserveOperation(operation, outcome, started)
	}
}
