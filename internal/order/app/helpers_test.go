package app

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/cart"
	"github.com/jcmexdev/storefront/internal/catalog"
	"github.com/jcmexdev/storefront/internal/order/domain"
	"github.com/jcmexdev/storefront/internal/orderlog/sqlite"
	"github.com/jcmexdev/storefront/internal/pkg/metrics"
)

type fixture struct {
	catalog  *catalog.Catalog
	book     *Book
	checkout *Checkout
	metrics  *metrics.ShopMetrics
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	c := catalog.New()
	require.NoError(t, catalog.Seed(c, ""))

	events, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = events.Close() })

	m := metrics.New("test")
	book := NewBook(events, m, quietLogger())
	return &fixture{
		catalog:  c,
		book:     book,
		checkout: NewCheckout(c, book, NewSequence(FirstOrderID), domain.Permissive, m, quietLogger()),
		metrics:  m,
	}
}

func (f *fixture) cartWith(t *testing.T, lines ...[2]int) *cart.Cart {
	t.Helper()
	basket := cart.New(f.catalog)
	for _, l := range lines {
		_, err := basket.Add(l[0], l[1])
		require.NoError(t, err)
	}
	return basket
}

var alice = domain.Customer{ID: 1001, Name: "Alice", Email: "alice@example.com"}
var bob = domain.Customer{ID: 1002, Name: "Bob", Email: "bob@example.com"}
