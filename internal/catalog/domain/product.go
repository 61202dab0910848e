package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 250
)

// Product is a catalog entry. Name, price and description are fixed once the
// product is loaded; Stock is only changed by the catalog.
type Product struct {
	ID          int
	Name        string
	Price       decimal.Decimal
	Description string
	Stock       int
}

// NewProduct builds a validated product. Name and description are trimmed.
func NewProduct(id int, name string, price decimal.Decimal, description string, stock int) (Product, error) {
	p := Product{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Price:       price,
		Description: strings.TrimSpace(description),
		Stock:       stock,
	}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (p Product) Validate() error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("%w: product id must be a positive number, got %d", ErrValidation, p.ID)
	case p.Name == "":
		return fmt.Errorf("%w: product name can't be empty", ErrValidation)
	case utf8.RuneCountInString(p.Name) > MaxNameLength:
		return fmt.Errorf("%w: product name is longer than %d characters", ErrValidation, MaxNameLength)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: price of %q can't be negative", ErrValidation, p.Name)
	case utf8.RuneCountInString(p.Description) > MaxDescriptionLength:
		return fmt.Errorf("%w: description of %q is longer than %d characters", ErrValidation, p.Name, MaxDescriptionLength)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock of %q can't be negative", ErrValidation, p.Name)
	}
	return nil
}

// IsAvailable reports whether at least one unit is in stock.
func (p Product) IsAvailable() bool {
	return p.Stock > 0
}

// HasEnoughStock reports whether qty units can be taken from the current stock.
func (p Product) HasEnoughStock(qty int) bool {
	return qty <= p.Stock
}

func (p Product) String() string {
	return fmt.Sprintf("%s ($%s)", p.Name, p.Price.StringFixed(2))
}
