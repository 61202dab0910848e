package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jcmexdev/storefront/internal/cart"
	"github.com/jcmexdev/storefront/internal/coordinator"
	"github.com/jcmexdev/storefront/internal/order/domain"
	"github.com/jcmexdev/storefront/internal/pkg/metrics"
	"github.com/jcmexdev/storefront/internal/pkg/telemetry"
)

// Inventory is the stock side of the catalog that checkout commits against.
type Inventory interface {
	CommitReduction(productID, qty int) error
	ReleaseReduction(productID, qty int) error
}

// Checkout turns carts into orders. PlaceOrder calls are serialized so the
// per-line stock commits of one order never interleave with another's.
type Checkout struct {
	mu        sync.Mutex
	inventory Inventory
	book      *Book
	ids       *Sequence
	policy    domain.TransitionPolicy
	metrics   *metrics.ShopMetrics
	logger    *slog.Logger
	now       func() time.Time
}

func NewCheckout(
	inv Inventory,
	book *Book,
	ids *Sequence,
	policy domain.TransitionPolicy,
	m *metrics.ShopMetrics,
	logger *slog.Logger,
) *Checkout {
	if ids == nil {
		ids = NewSequence(FirstOrderID)
	}
	if policy == nil {
		policy = domain.Permissive
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Checkout{
		inventory: inv,
		book:      book,
		ids:       ids,
		policy:    policy,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// PlaceOrder commits the cart's stock and records a Confirmed order.
//
// Every line's reduction runs as a saga step; if one fails the reductions
// already made are released and a *domain.StockCommitError is returned, so
// stock is left as it was. On success the cart is emptied.
func (c *Checkout) PlaceOrder(ctx context.Context, basket *cart.Cart, buyer domain.Customer) (*domain.Order, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "checkout.PlaceOrder")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if basket.IsEmpty() {
		c.count(metrics.ResultEmptyCart)
		return nil, domain.ErrEmptyCart
	}
	if buyer.ID <= 0 {
		c.count(metrics.ResultError)
		return nil, fmt.Errorf("%w: order must have a valid customer", domain.ErrInvalidOrder)
	}

	lines := basket.Lines()
	items := make([]domain.OrderItem, len(lines))
	steps := make([]coordinator.Step, 0, len(lines)+1)
	for i, l := range lines {
		items[i] = domain.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
		steps = append(steps, c.reserveStep(items[i]))
	}

	var order *domain.Order
	steps = append(steps, coordinator.NewFuncStep("create_order", func(ctx context.Context) error {
		o, err := domain.New(c.ids.Next(), buyer, items, c.now(), c.policy)
		if err != nil {
			return err
		}
		if err := c.book.add(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	}, nil))

	sagaID := newSagaID(buyer.ID)
	span.SetAttributes(attribute.String("saga.id", sagaID))
	if err := coordinator.NewOrchestrator(sagaID, steps, c.logger).Start(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "checkout failed")
		if errors.Is(err, domain.ErrStockCommit) {
			c.count(metrics.ResultStockRejected)
		} else {
			c.count(metrics.ResultError)
		}
		c.logger.WarnContext(ctx, "checkout failed", "customer_id", buyer.ID, "error", err)
		return nil, err
	}

	if _, err := c.book.setStatus(ctx, order, string(domain.StatusConfirmed), noteCheckout); err != nil {
		c.logger.ErrorContext(ctx, "placed order could not be confirmed", "order_id", order.ID(), "error", err)
	}
	basket.Clear()

	c.count(metrics.ResultPlaced)
	if c.metrics != nil {
		c.metrics.OrderValue.Observe(order.Total().InexactFloat64())
	}
	span.SetAttributes(
		attribute.Int("order.id", order.ID()),
		attribute.Int("order.items", len(items)),
	)
	c.logger.InfoContext(ctx, "order placed",
		"order_id", order.ID(),
		"customer_id", buyer.ID,
		"items", len(items),
		"total", order.Total().StringFixed(2),
	)
	return order, nil
}

// NextOrderID reports the id the next successful checkout will get.
func (c *Checkout) NextOrderID() int {
	return c.ids.Peek()
}

func (c *Checkout) reserveStep(item domain.OrderItem) coordinator.Step {
	name := "reserve_" + strconv.Itoa(item.ProductID)
	return coordinator.NewFuncStep(name,
		func(context.Context) error {
			if err := c.inventory.CommitReduction(item.ProductID, item.Quantity); err != nil {
				return &domain.StockCommitError{ProductID: item.ProductID, Name: item.Name, Err: err}
			}
			return nil
		},
		func(context.Context) error {
			return c.inventory.ReleaseReduction(item.ProductID, item.Quantity)
		},
	)
}

// newSagaID names one checkout attempt, so rollback log lines of separate
// attempts by the same customer can be told apart.
func newSagaID(customerID int) string {
	return "checkout-" + strconv.Itoa(customerID) + "-" + uuid.NewString()
}

func (c *Checkout) count(result string) {
	if c.metrics != nil {
		c.metrics.Checkouts.WithLabelValues(result).Inc()
	}
}
