package domain

import (
	"fmt"
	"strings"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusConfirmed  OrderStatus = "Confirmed"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

func (s OrderStatus) String() string { return string(s) }

func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// ParseStatus returns the canonical status for name, ignoring case and
// surrounding blanks.
func ParseStatus(name string) (OrderStatus, error) {
	trimmed := strings.TrimSpace(name)
	for _, s := range Statuses {
		if strings.EqualFold(string(s), trimmed) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid options are %s)", ErrInvalidStatus, name, validNames())
}

func validNames() string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// TransitionPolicy decides whether an order may move between two statuses.
type TransitionPolicy interface {
	Allows(from, to OrderStatus) bool
}

type policyFunc func(from, to OrderStatus) bool

func (f policyFunc) Allows(from, to OrderStatus) bool { return f(from, to) }

// Permissive allows any status to follow any other.
var Permissive TransitionPolicy = policyFunc(func(_, _ OrderStatus) bool { return true })

// Strict follows the fulfilment chain. Cancelled is reachable from any
// non-terminal status, terminal statuses accept nothing new, and re-setting
// the current status is a no-op.
var Strict TransitionPolicy = policyFunc(func(from, to OrderStatus) bool {
	if from == to {
		return true
	}
	if from.IsTerminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return strictNext[from] == to
})

var strictNext = map[OrderStatus]OrderStatus{
	StatusPending:    StatusConfirmed,
	StatusConfirmed:  StatusProcessing,
	StatusProcessing: StatusShipped,
	StatusShipped:    StatusDelivered,
}

// PolicyFor returns Strict when strict is set, Permissive otherwise.
func PolicyFor(strict bool) TransitionPolicy {
	if strict {
		return Strict
	}
	return Permissive
}
