package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "todoapi"

func CreateChildSpan(ctx context.Context, name string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)

	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func AddSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func AddSpanEvent(span trace.Span, name string, attrs []attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

func GetTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)

	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}

	return ""
}

// SpanWrapper runs fn inside a child span, recording any error on it.
func SpanWrapper(ctx context.Context, name string, attrs []attribute.KeyValue, fn func(context.Context) error) error {
	ctx, span := CreateChildSpan(ctx, name, attrs)
	defer span.End()

	err := fn(ctx)

	if err != nil {
		AddSpanError(span, err)
	}

	return err
}

func DatabaseSpanWrapper(ctx context.Context, table, operation string, fn func(context.Context) error) error {
	attrs := []attribute.KeyValue{
		attribute.String("db.table", table),
		attribute.String("db.operation", operation),
	}

	return SpanWrapper(ctx, fmt.Sprintf("db.%s.%s", table, operation), attrs, fn)
}
