package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jcmexdev/storefront/internal/order/domain"
	"github.com/jcmexdev/storefront/internal/orderlog"
	"github.com/jcmexdev/storefront/internal/pkg/metrics"
	"github.com/jcmexdev/storefront/internal/pkg/telemetry"
)

const (
	noteCheckout = "checkout"
	noteOperator = "operator"
)

// StatusChange reports a successful status update.
type StatusChange struct {
	OrderID int
	From    domain.OrderStatus
	To      domain.OrderStatus
}

// Book keeps every order placed during the process, in placement order.
type Book struct {
	mu      sync.RWMutex
	orders  map[int]*domain.Order
	ids     []int
	events  orderlog.Repository // nil-safe: events are not recorded if nil
	metrics *metrics.ShopMetrics
	logger  *slog.Logger
}

func NewBook(events orderlog.Repository, m *metrics.ShopMetrics, logger *slog.Logger) *Book {
	if logger == nil {
		logger = slog.Default()
	}
	return &Book{
		orders:  make(map[int]*domain.Order),
		events:  events,
		metrics: m,
		logger:  logger,
	}
}

func (b *Book) Get(id int) (*domain.Order, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	o, ok := b.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: #%d", domain.ErrOrderNotFound, id)
	}
	return o, nil
}

// List returns the orders in the order they were placed.
func (b *Book) List() []*domain.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*domain.Order, 0, len(b.ids))
	for _, id := range b.ids {
		out = append(out, b.orders[id])
	}
	return out
}

func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.ids)
}

// UpdateStatus applies an operator status change to the order.
func (b *Book) UpdateStatus(ctx context.Context, id int, status string) (StatusChange, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "orders.UpdateStatus")
	defer span.End()

	o, err := b.Get(id)
	if err != nil {
		return StatusChange{}, err
	}
	change, err := b.setStatus(ctx, o, status, noteOperator)
	if err != nil {
		span.RecordError(err)
		b.logger.InfoContext(ctx, "status change rejected", "order_id", id, "requested", status, "error", err)
		return StatusChange{}, err
	}
	return change, nil
}

// History returns the recorded status events of an order, oldest first.
func (b *Book) History(ctx context.Context, id int) ([]orderlog.Event, error) {
	if _, err := b.Get(id); err != nil {
		return nil, err
	}
	if b.events == nil {
		return nil, nil
	}
	return b.events.History(ctx, id)
}

func (b *Book) add(ctx context.Context, o *domain.Order) error {
	b.mu.Lock()
	if _, dup := b.orders[o.ID()]; dup {
		b.mu.Unlock()
		return fmt.Errorf("%w: order #%d already exists", domain.ErrInvalidOrder, o.ID())
	}
	b.orders[o.ID()] = o
	b.ids = append(b.ids, o.ID())
	b.mu.Unlock()

	b.record(ctx, o.ID(), o.Status(), "", noteCheckout)
	return nil
}

func (b *Book) setStatus(ctx context.Context, o *domain.Order, status, note string) (StatusChange, error) {
	b.mu.Lock()
	prev, err := o.SetStatus(status)
	next := o.Status()
	b.mu.Unlock()
	if err != nil {
		return StatusChange{}, err
	}

	b.record(ctx, o.ID(), next, prev, note)
	b.logger.InfoContext(ctx, "order status updated",
		"order_id", o.ID(),
		"from", prev,
		"to", next,
		"note", note,
	)
	return StatusChange{OrderID: o.ID(), From: prev, To: next}, nil
}

func (b *Book) record(ctx context.Context, id int, status, prev domain.OrderStatus, note string) {
	if b.metrics != nil {
		b.metrics.StatusChanges.WithLabelValues(string(status)).Inc()
	}
	if b.events == nil {
		return
	}
	ev := orderlog.NewEvent(ctx, id, string(status), string(prev), note)
	if err := b.events.Append(ctx, ev); err != nil {
		b.logger.ErrorContext(ctx, "failed to append order event", "order_id", id, "status", status, "error", err)
	}
}
