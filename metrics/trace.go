package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/odvcencio/furry-store/reducer"
	"github.com/odvcencio/furry-store/state"
)

// DefaultTracerName is used when Trace is given no tracer.
const DefaultTracerName = "github.com/odvcencio/furry-store"

// Trace wraps reduce so each run is recorded as a span named
// "<name>.reduce". A nil tracer resolves one from the global provider.
func Trace[S any](tracer trace.Tracer, name string, reduce reducer.Func[S]) reducer.Func[S] {
	if reduce == nil {
		return nil
	}
	if tracer == nil {
		tracer = otel.Tracer(DefaultTracerName)
	}
	spanName := name + ".reduce"
	return func(current S, action any) S {
		_, span := tracer.Start(context.Background(), spanName,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(
				attribute.String("store.name", name),
				attribute.String("store.action", actionLabel(action)),
			),
		)
		defer span.End()

		next := reduce(current, action)
		span.SetAttributes(attribute.Bool("store.changed", !state.Same(any(next), any(current))))
		return next
	}
}
