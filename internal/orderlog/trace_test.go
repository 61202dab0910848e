package orderlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNewEvent_WithoutSpan(t *testing.T) {
	ev := NewEvent(context.Background(), 1001, "Pending", "", "checkout")

	assert.Equal(t, 1001, ev.OrderID)
	assert.Equal(t, "Pending", ev.Status)
	assert.Empty(t, ev.TraceID)
	assert.Empty(t, ev.SpanID)
	assert.False(t, ev.RecordedAt.IsZero())
}

func TestNewEvent_WithSpan(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "checkout")
	defer span.End()

	ev := NewEvent(ctx, 1001, "Confirmed", "Pending", "checkout")
	assert.Len(t, ev.TraceID, 32)
	assert.Len(t, ev.SpanID, 16)
	assert.Equal(t, span.SpanContext().TraceID().String(), ev.TraceID)
}
