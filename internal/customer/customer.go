// Package customer keeps registered shoppers and the cart each one owns.
package customer

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jcmexdev/storefront/internal/cart"
	orderdomain "github.com/jcmexdev/storefront/internal/order/domain"
)

const FirstID = 1001

var (
	ErrInvalidCustomer = errors.New("invalid customer")
	ErrNotFound        = errors.New("customer not found")
)

// Customer owns exactly one cart for the life of the process.
type Customer struct {
	id    int
	name  string
	email string
	cart  *cart.Cart
}

func (c *Customer) ID() int          { return c.id }
func (c *Customer) Name() string     { return c.name }
func (c *Customer) Email() string    { return c.email }
func (c *Customer) Cart() *cart.Cart { return c.cart }

// Ref is the copy of the customer stored on an order.
func (c *Customer) Ref() orderdomain.Customer {
	return orderdomain.Customer{ID: c.id, Name: c.name, Email: c.email}
}

func (c *Customer) String() string {
	return fmt.Sprintf("%s (%s)", c.name, c.email)
}

// Registry assigns customer ids in registration order starting at FirstID.
type Registry struct {
	mu        sync.RWMutex
	stock     cart.Stock
	customers []*Customer
}

func NewRegistry(stock cart.Stock) *Registry {
	return &Registry{stock: stock}
}

// Register validates the details and creates a customer with an empty cart.
func (r *Registry) Register(name, email string) (*Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name can't be empty", ErrInvalidCustomer)
	case len([]rune(name)) < 2:
		return nil, fmt.Errorf("%w: name is too short", ErrInvalidCustomer)
	case email == "":
		return nil, fmt.Errorf("%w: email address can't be empty", ErrInvalidCustomer)
	case !strings.Contains(email, "@"):
		return nil, fmt.Errorf("%w: email address needs an '@' symbol", ErrInvalidCustomer)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c := &Customer{
		id:    FirstID + len(r.customers),
		name:  name,
		email: email,
		cart:  cart.New(r.stock),
	}
	r.customers = append(r.customers, c)
	return c, nil
}

func (r *Registry) Get(id int) (*Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := id - FirstID
	if i < 0 || i >= len(r.customers) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return r.customers[i], nil
}

// At returns the customer at a 1-based position in registration order, as
// shown by the login menu.
func (r *Registry) At(position int) (*Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if position < 1 || position > len(r.customers) {
		return nil, fmt.Errorf("%w: choose a number between 1 and %d", ErrNotFound, len(r.customers))
	}
	return r.customers[position-1], nil
}

func (r *Registry) List() []*Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Customer, len(r.customers))
	copy(out, r.customers)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.customers)
}
