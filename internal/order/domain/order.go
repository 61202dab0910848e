package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Customer identifies who placed an order. It is copied at checkout.
type Customer struct {
	ID    int
	Name  string
	Email string
}

type OrderItem struct {
	ProductID int
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is a placed purchase. Items and total are fixed at creation; only the
// status moves afterwards. Status changes are not synchronized; the order
// book serializes them.
type Order struct {
	id        int
	customer  Customer
	items     []OrderItem
	total     decimal.Decimal
	createdAt time.Time
	status    OrderStatus
	policy    TransitionPolicy
}

// New creates a Pending order from a non-empty item list.
func New(id int, customer Customer, items []OrderItem, createdAt time.Time, policy TransitionPolicy) (*Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: order id must be positive, got %d", ErrInvalidOrder, id)
	}
	if customer.ID <= 0 {
		return nil, fmt.Errorf("%w: order must have a valid customer", ErrInvalidOrder)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if policy == nil {
		policy = Permissive
	}

	snapshot := make([]OrderItem, len(items))
	copy(snapshot, items)

	total := decimal.Zero
	for _, it := range snapshot {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %s has quantity %d", ErrInvalidOrder, it.Name, it.Quantity)
		}
		total = total.Add(it.Subtotal())
	}

	return &Order{
		id:        id,
		customer:  customer,
		items:     snapshot,
		total:     total,
		createdAt: createdAt,
		status:    StatusPending,
		policy:    policy,
	}, nil
}

func (o *Order) ID() int                { return o.id }
func (o *Order) Customer() Customer     { return o.customer }
func (o *Order) Total() decimal.Decimal { return o.total }
func (o *Order) CreatedAt() time.Time   { return o.createdAt }
func (o *Order) Status() OrderStatus    { return o.status }

// Items returns a copy of the purchased items.
func (o *Order) Items() []OrderItem {
	out := make([]OrderItem, len(o.items))
	copy(out, o.items)
	return out
}

// SetStatus moves the order to the named status, matched case-insensitively.
// It returns the previous status. On error the status is unchanged.
func (o *Order) SetStatus(name string) (OrderStatus, error) {
	next, err := ParseStatus(name)
	if err != nil {
		return o.status, err
	}
	if !o.policy.Allows(o.status, next) {
		return o.status, &TransitionError{OrderID: o.id, From: o.status, To: next}
	}

	prev := o.status
	o.status = next
	return prev, nil
}

// Summary is a read-only view of an order for rendering.
type Summary struct {
	ID        int
	Customer  Customer
	Items     []OrderItem
	Total     decimal.Decimal
	CreatedAt time.Time
	Status    OrderStatus
}

func (o *Order) Summary() Summary {
	return Summary{
		ID:        o.id,
		Customer:  o.customer,
		Items:     o.Items(),
		Total:     o.total,
		CreatedAt: o.createdAt,
		Status:    o.status,
	}
}

func (o *Order) String() string {
	return fmt.Sprintf("Order #%d - %s - $%s (%s)", o.id, o.customer.Name, o.total.StringFixed(2), o.status)
}
