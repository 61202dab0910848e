package orderlog

import "context"

// Repository is the port for the order event log. Checkout and the order
// book depend on this abstraction, not on SQLite directly.
type Repository interface {
	// Append persists a new event. The log is append-only, never an upsert.
	Append(ctx context.Context, event *Event) error

	// History returns every event of an order, oldest first.
	History(ctx context.Context, orderID int) ([]Event, error)
}
