// Package cart implements a customer's pending selection of products.
//
// Every mutation that raises a quantity is checked against the live catalog
// stock, because other customers' checkouts can shrink it between edits.
// A Cart is not safe for concurrent use.
package cart

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/catalog/domain"
)

var (
	ErrInvalidIndex = errors.New("invalid cart item number")
	ErrLineNotFound = errors.New("cart line not found")
)

// Stock is the part of the catalog a cart reads.
type Stock interface {
	FindByID(id int) (domain.Product, error)
	HasSufficientStock(id, qty int) bool
}

// Line is one product in the cart. Name and UnitPrice are copied from the
// catalog when the line is created; stock is always read live.
type Line struct {
	ID        uuid.UUID
	ProductID int
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	stock Stock
	lines []Line
}

func New(stock Stock) *Cart {
	return &Cart{stock: stock}
}

// Add puts qty units of a product in the cart, merging with an existing line
// for the same product. On error the cart is unchanged.
func (c *Cart) Add(productID, qty int) (Line, error) {
	if qty < 1 {
		return Line{}, fmt.Errorf("%w: quantity must be at least 1, got %d", domain.ErrInvalidQuantity, qty)
	}

	p, err := c.stock.FindByID(productID)
	if err != nil {
		return Line{}, err
	}

	if i := c.indexOfProduct(productID); i >= 0 {
		total := c.lines[i].Quantity + qty
		if !c.stock.HasSufficientStock(productID, total) {
			return Line{}, &domain.StockError{ProductID: p.ID, Name: p.Name, Requested: total, Available: p.Stock}
		}
		c.lines[i].Quantity = total
		return c.lines[i], nil
	}

	if !c.stock.HasSufficientStock(productID, qty) {
		return Line{}, &domain.StockError{ProductID: p.ID, Name: p.Name, Requested: qty, Available: p.Stock}
	}

	line := Line{
		ID:        uuid.New(),
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  qty,
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// UpdateQuantity sets the quantity of the line at index (0-based). Use
// Remove to drop a line.
func (c *Cart) UpdateQuantity(index, qty int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	return c.setQuantity(index, qty)
}

// UpdateLine is UpdateQuantity addressed by line id.
func (c *Cart) UpdateLine(id uuid.UUID, qty int) error {
	i := c.indexOfLine(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLineNotFound, id)
	}
	return c.setQuantity(i, qty)
}

// Remove drops the line at index (0-based) and returns it.
func (c *Cart) Remove(index int) (Line, error) {
	if err := c.checkIndex(index); err != nil {
		return Line{}, err
	}
	line := c.lines[index]
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return line, nil
}

// RemoveLine is Remove addressed by line id.
func (c *Cart) RemoveLine(id uuid.UUID) (Line, error) {
	i := c.indexOfLine(id)
	if i < 0 {
		return Line{}, fmt.Errorf("%w: %s", ErrLineNotFound, id)
	}
	return c.Remove(i)
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) setQuantity(i, qty int) error {
	if qty < 1 {
		return fmt.Errorf("%w: quantity must be at least 1, got %d (remove the item instead)", domain.ErrInvalidQuantity, qty)
	}

	line := c.lines[i]
	if !c.stock.HasSufficientStock(line.ProductID, qty) {
		available := 0
		if p, err := c.stock.FindByID(line.ProductID); err == nil {
			available = p.Stock
		}
		return &domain.StockError{ProductID: line.ProductID, Name: line.Name, Requested: qty, Available: available}
	}

	c.lines[i].Quantity = qty
	return nil
}

func (c *Cart) checkIndex(index int) error {
	if index < 0 || index >= len(c.lines) {
		return fmt.Errorf("%w: %d is outside 1..%d", ErrInvalidIndex, index+1, len(c.lines))
	}
	return nil
}

func (c *Cart) indexOfProduct(productID int) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) indexOfLine(id uuid.UUID) int {
	for i, l := range c.lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}
