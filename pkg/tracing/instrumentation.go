package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Search span attributes
const (
	SearchFromKey       = attribute.Key("search.from")
	SearchToKey         = attribute.Key("search.to")
	SearchFromProvince  = attribute.Key("search.from_province")
	SearchToProvince    = attribute.Key("search.to_province")
	SearchStrategyKey   = attribute.Key("search.strategy")
	SearchResultsKey    = attribute.Key("search.results")
	SearchMaxResultsKey = attribute.Key("search.max_results")
)

// TraceOperation runs fn inside a child span, recording any returned error.
func TraceOperation(ctx context.Context, tracerName, operation string, attrs []attribute.KeyValue, fn func(context.Context) error) error {
	ctx, span := StartSpan(ctx, tracerName, operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}
