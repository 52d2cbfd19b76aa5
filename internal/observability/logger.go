package observability

import (
	"context"

	"go.uber.org/zap"
)

// WithContext returns log enriched with the trace of ctx, if there is one.
func WithContext(ctx context.Context, log *zap.Logger) *zap.Logger {
	tc := ExtractTrace(ctx)
	if tc == nil {
		return log
	}

	return log.With(
		zap.String("trace_id", tc.TraceID),
		zap.String("span_id", tc.SpanID),
	)
}
