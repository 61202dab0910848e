package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOrder      = errors.New("invalid order")
	ErrEmptyCart         = errors.New("cannot create order from empty cart")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrOrderNotFound     = errors.New("order not found")
	ErrStockCommit       = errors.New("stock commit failed")
)

// TransitionError is returned when the order's policy rejects a status change.
type TransitionError struct {
	OrderID int
	From    OrderStatus
	To      OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order #%d: cannot move from %s to %s", e.OrderID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// StockCommitError names the product whose stock could not be taken at
// checkout. Err carries the catalog's reason.
type StockCommitError struct {
	ProductID int
	Name      string
	Err       error
}

func (e *StockCommitError) Error() string {
	return fmt.Sprintf("could not reserve stock for %s (id %d): %v", e.Name, e.ProductID, e.Err)
}

func (e *StockCommitError) Unwrap() []error { return []error{ErrStockCommit, e.Err} }
