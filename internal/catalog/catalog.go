// Package catalog holds the process-wide product registry and its stock
// counters.
package catalog

import (
	"fmt"
	"sync"

	"github.com/jcmexdev/storefront/internal/catalog/domain"
)

// Catalog is the in-memory product registry. Every method takes the catalog
// lock, so each call is atomic on its own. A caller that checks stock with
// HasSufficientStock and commits later still races other writers; Checkout
// serializes its commits for that reason.
type Catalog struct {
	mu       sync.Mutex
	products map[int]*domain.Product
	order    []int
}

func New() *Catalog {
	return &Catalog{
		products: make(map[int]*domain.Product),
	}
}

// Load adds products to the catalog. The whole batch is rejected if any
// product is invalid or reuses an id.
func (c *Catalog) Load(products ...domain.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[int]struct{}, len(products))
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := c.products[p.ID]; dup {
			return fmt.Errorf("%w: product id %d is already in the catalog", domain.ErrValidation, p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: product id %d appears twice", domain.ErrValidation, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	for _, p := range products {
		c.products[p.ID] = &p
		c.order = append(c.order, p.ID)
	}
	return nil
}

// List returns a snapshot of every product in load order.
func (c *Catalog) List() []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.products[id])
	}
	return out
}

func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// FindByID returns a snapshot of the product with the given id.
func (c *Catalog) FindByID(id int) (domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
	}
	return *p, nil
}

// HasSufficientStock reports whether qty units of the product are in stock.
// Unknown products have no stock.
func (c *Catalog) HasSufficientStock(id, qty int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[id]
	if !ok {
		return false
	}
	return p.HasEnoughStock(qty)
}

// CommitReduction takes qty units out of the product's stock. It is the only
// way stock goes down.
func (c *Catalog) CommitReduction(id, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[id]
	if !ok {
		return fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
	}
	if qty <= 0 {
		return fmt.Errorf("%w: %w: can't reduce stock of %s by %d", domain.ErrInsufficientStock, domain.ErrInvalidQuantity, p.Name, qty)
	}
	if qty > p.Stock {
		return &domain.StockError{ProductID: p.ID, Name: p.Name, Requested: qty, Available: p.Stock}
	}

	p.Stock -= qty
	return nil
}

// ReleaseReduction puts back units taken by CommitReduction. Checkout uses it
// to compensate a partially committed order.
func (c *Catalog) ReleaseReduction(id, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[id]
	if !ok {
		return fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
	}
	if qty <= 0 {
		return fmt.Errorf("%w: can't restore %d units of %s", domain.ErrInvalidQuantity, qty, p.Name)
	}

	p.Stock += qty
	return nil
}
