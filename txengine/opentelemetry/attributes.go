package opentelemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type attrBagKey struct{}

// ContextWithAttributes returns a copy of ctx carrying kv in addition to any
// attributes already stored. Spans started from the returned context receive
// them through AttrBagSpanProcessor.
func ContextWithAttributes(ctx context.Context, kv ...attribute.KeyValue) context.Context {
	if len(kv) == 0 {
		return ctx
	}

	existing := AttributesFromContext(ctx)

	merged := make([]attribute.KeyValue, 0, len(existing)+len(kv))
	merged = append(merged, existing...)
	merged = append(merged, kv...)

	return context.WithValue(ctx, attrBagKey{}, merged)
}

// AttributesFromContext returns the attributes stored by ContextWithAttributes.
func AttributesFromContext(ctx context.Context) []attribute.KeyValue {
	if ctx == nil {
		return nil
	}

	kv, _ := ctx.Value(attrBagKey{}).([]attribute.KeyValue)

	return kv
}

// AttrBagSpanProcessor copies run-scoped attributes from context into every span at start.
type AttrBagSpanProcessor struct{}

func (AttrBagSpanProcessor) OnStart(ctx context.Context, s sdktrace.ReadWriteSpan) {
	if kv := AttributesFromContext(ctx); len(kv) > 0 {
		s.SetAttributes(kv...)
	}
}

func (AttrBagSpanProcessor) OnEnd(sdktrace.ReadOnlySpan) {}

func (AttrBagSpanProcessor) Shutdown(context.Context) error { return nil }

func (AttrBagSpanProcessor) ForceFlush(context.Context) error { return nil }
