package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jcmexdev/storefront/internal/catalog/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

// seedProduct keeps the price as text so "85.50" is parsed exactly.
type seedProduct struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Price       string `yaml:"price"`
	Description string `yaml:"description"`
	Stock       int    `yaml:"stock"`
}

// DefaultProducts returns the built-in sample catalog.
func DefaultProducts() ([]domain.Product, error) {
	return parseSeed(defaultSeed)
}

// ReadSeed parses a YAML product list.
func ReadSeed(r io.Reader) ([]domain.Product, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: read seed: %w", err)
	}
	return parseSeed(data)
}

// Seed loads products into c from path, or the built-in catalog when path is
// empty.
func Seed(c *Catalog, path string) error {
	var (
		products []domain.Product
		err      error
	)
	if path == "" {
		products, err = DefaultProducts()
	} else {
		var f *os.File
		f, err = os.Open(path)
		if err != nil {
			return fmt.Errorf("catalog: open seed %q: %w", path, err)
		}
		defer f.Close()
		products, err = ReadSeed(f)
	}
	if err != nil {
		return err
	}
	return c.Load(products...)
}

func parseSeed(data []byte) ([]domain.Product, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("catalog: parse seed: %w", err)
	}

	products := make([]domain.Product, 0, len(file.Products))
	for i, sp := range file.Products {
		price, err := decimal.NewFromString(sp.Price)
		if err != nil {
			return nil, fmt.Errorf("catalog: seed entry %d: %w: price %q", i+1, domain.ErrValidation, sp.Price)
		}
		p, err := domain.NewProduct(sp.ID, sp.Name, price, sp.Description, sp.Stock)
		if err != nil {
			return nil, fmt.Errorf("catalog: seed entry %d: %w", i+1, err)
		}
		products = append(products, p)
	}
	return products, nil
}
