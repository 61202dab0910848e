// Package orderlog defines the domain types for the order event log.
//
// The log is an append-only audit trail of every status an order takes:
// Pending and Confirmed at checkout, then each operator change. Rows carry
// the trace_id of the span that was active when they were written so a log
// row can be matched to the structured log lines of the same operation.
package orderlog

import "time"

// Event is a single row in the order_events table.
type Event struct {
	// OrderID is the sequential order number.
	OrderID int

	// Status is the status the order moved to.
	Status string

	// PreviousStatus is empty for the first event of an order.
	PreviousStatus string

	// Note is a short free-text reason, e.g. "checkout" or "operator".
	Note string

	// TraceID is the W3C trace ID of the active OpenTelemetry span.
	TraceID string

	// SpanID is the specific span within the trace.
	SpanID string

	// RecordedAt is the wall-clock time of this entry.
	RecordedAt time.Time
}
