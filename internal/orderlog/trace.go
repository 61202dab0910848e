package orderlog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// TraceInfo holds the OTel identifiers extracted from a context.
type TraceInfo struct {
	// TraceID is the W3C trace ID (32 lowercase hex chars).
	// Empty string if no active span is found in the context.
	TraceID string

	// SpanID is the W3C span ID (16 lowercase hex chars).
	SpanID string
}

// ExtractTraceInfo reads the active OpenTelemetry span from ctx and returns
// its trace_id and span_id as hex strings. Without a valid span (no tracer
// provider installed, unit tests) both fields are empty.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}

	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEvent builds an Event with the trace info taken from ctx.
//
//	event := orderlog.NewEvent(ctx, 1001, "Confirmed", "Pending", "checkout")
//	_ = repo.Append(ctx, event)
func NewEvent(ctx context.Context, orderID int, status, previous, note string) *Event {
	ti := ExtractTraceInfo(ctx)

	return &Event{
		OrderID:        orderID,
		Status:         status,
		PreviousStatus: previous,
		Note:           note,
		TraceID:        ti.TraceID,
		SpanID:         ti.SpanID,
		RecordedAt:     time.Now().UTC(),
	}
}
