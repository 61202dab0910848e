package shell

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/catalog"
	"github.com/jcmexdev/storefront/internal/customer"
	"github.com/jcmexdev/storefront/internal/order/app"
	"github.com/jcmexdev/storefront/internal/order/domain"
	"github.com/jcmexdev/storefront/internal/orderlog/sqlite"
)

func newTestModel(t *testing.T) (Model, Deps) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c := catalog.New()
	require.NoError(t, catalog.Seed(c, ""))

	events, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = events.Close() })

	book := app.NewBook(events, nil, logger)
	deps := Deps{
		Catalog:   c,
		Customers: customer.NewRegistry(c),
		Checkout:  app.NewCheckout(c, book, app.NewSequence(app.FirstOrderID), domain.Permissive, nil, logger),
		Orders:    book,
		Logger:    logger,
	}
	return New(context.Background(), deps), deps
}

// send types a line and presses enter, running any command the model returns.
func send(t *testing.T, m Model, line string) Model {
	t.Helper()
	var next tea.Model = m
	if line != "" {
		next, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	}
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		if msg := cmd(); msg != nil {
			next, _ = next.Update(msg)
		}
	}
	return next.(Model)
}

func sendAll(t *testing.T, m Model, lines ...string) Model {
	t.Helper()
	for _, l := range lines {
		m = send(t, m, l)
	}
	return m
}

func register(t *testing.T, m Model, name, email string) Model {
	t.Helper()
	return sendAll(t, m, "1", "2", name, email)
}

func TestShell_RequiresLogin(t *testing.T) {
	m, _ := newTestModel(t)

	for choice, want := range map[string]string{
		"2": "Please log in first to browse products.",
		"3": "Please log in first to manage your cart.",
		"4": "Please log in first to checkout.",
	} {
		next := send(t, m, choice)
		assert.Equal(t, screenMain, next.screen)
		assert.Equal(t, want, next.notice)
	}
}

func TestShell_InvalidMainOption(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, "9")
	assert.Equal(t, screenMain, m.screen)
	assert.Equal(t, "Invalid option. Please choose 1-6.", m.notice)

	m = send(t, m, "abc")
	assert.Equal(t, "Invalid option. Please choose 1-6.", m.notice)
}

func TestShell_RegisterAndLogin(t *testing.T) {
	m, deps := newTestModel(t)

	m = register(t, m, "Alice Smith", "Alice@Example.com")
	require.NotNil(t, m.current)
	assert.Equal(t, "Registration successful! Welcome, Alice Smith!", m.notice)
	assert.Equal(t, "alice@example.com", m.current.Email())

	m = register(t, m, "B", "b@example.com")
	assert.Contains(t, m.notice, "Registration failed")
	assert.Equal(t, 1, deps.Customers.Len())

	m = sendAll(t, m, "1", "1", "5")
	assert.Equal(t, screenPickCustomer, m.screen)
	assert.Equal(t, "Invalid selection. Please try again.", m.notice)

	m = send(t, m, "1")
	assert.Equal(t, "Welcome back, Alice Smith!", m.notice)
	assert.Equal(t, screenMain, m.screen)
}

func TestShell_LoginWithoutCustomers(t *testing.T) {
	m, _ := newTestModel(t)

	m = sendAll(t, m, "1", "1")
	assert.Equal(t, screenMain, m.screen)
	assert.Equal(t, "No customers registered yet. Please register first.", m.notice)
}

func TestShell_BrowseAddAndCheckout(t *testing.T) {
	m, deps := newTestModel(t)
	m = register(t, m, "Alice", "alice@example.com")

	m = sendAll(t, m, "2", "1", "201", "3")
	assert.Equal(t, screenBrowse, m.screen)
	assert.Contains(t, m.notice, "Added 3 x Professional Acrylic Paint Set")

	m = sendAll(t, m, "1", "201", "8")
	assert.Contains(t, m.notice, "Could not add to cart")
	assert.Contains(t, m.notice, "only 10 available")
	assert.Equal(t, 3, m.current.Cart().Lines()[0].Quantity)

	m = sendAll(t, m, "2", "201")
	assert.Contains(t, m.detail, "Price: $85.50")
	assert.Contains(t, m.detail, "Stock: 10 available")

	m = sendAll(t, m, "3", "4")
	assert.Equal(t, screenCheckoutConfirm, m.screen)
	assert.Contains(t, m.View(), "Total: $256.50")

	m = send(t, m, "yes")
	assert.Equal(t, screenMain, m.screen)
	assert.Equal(t, "Your order has been placed successfully!", m.notice)
	assert.Contains(t, m.detail, "Order #: 1001")
	assert.Contains(t, m.detail, "Status: Confirmed")
	assert.Contains(t, m.detail, "Order Total: $256.50")
	assert.True(t, m.current.Cart().IsEmpty())

	p, err := deps.Catalog.FindByID(201)
	require.NoError(t, err)
	assert.Equal(t, 7, p.Stock)
}

func TestShell_CheckoutCompletesBeforeNextRender(t *testing.T) {
	m, deps := newTestModel(t)
	m = register(t, m, "Alice", "alice@example.com")
	m = sendAll(t, m, "2", "1", "204", "2", "3", "4")
	require.Equal(t, screenCheckoutConfirm, m.screen)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "checkout must not leave work running off the event loop")

	m = next.(Model)
	assert.True(t, m.current.Cart().IsEmpty())
	assert.Equal(t, 1, deps.Orders.Len())
	view := m.View()
	assert.Contains(t, view, "Your order has been placed successfully!")
	assert.Contains(t, view, "Order Total: $57.98")
}

func TestShell_CheckoutDeclined(t *testing.T) {
	m, deps := newTestModel(t)
	m = register(t, m, "Alice", "alice@example.com")
	m = sendAll(t, m, "2", "1", "203", "2", "3", "4", "no")

	assert.Equal(t, "Checkout cancelled. You can continue shopping.", m.notice)
	assert.Equal(t, 1, m.current.Cart().Len())
	assert.Zero(t, deps.Orders.Len())
}

func TestShell_EmptyCart(t *testing.T) {
	m, _ := newTestModel(t)
	m = register(t, m, "Alice", "alice@example.com")

	m = send(t, m, "3")
	assert.Equal(t, "Your cart is empty. Time to go shopping!", m.notice)

	m = send(t, m, "4")
	assert.Equal(t, "Your cart is empty. Add some products before checking out.", m.notice)
}

func TestShell_ManageCart(t *testing.T) {
	m, _ := newTestModel(t)
	m = register(t, m, "Alice", "alice@example.com")
	m = sendAll(t, m, "2", "1", "203", "2", "1", "204", "1", "3")

	m = sendAll(t, m, "3", "1", "7")
	assert.Equal(t, screenCart, m.screen)
	assert.Equal(t, "Invalid item number. Please try again.", m.notice)

	m = sendAll(t, m, "1", "2", "5")
	assert.Equal(t, "Quantity updated successfully!", m.notice)
	assert.Equal(t, 5, m.current.Cart().Lines()[1].Quantity)

	m = sendAll(t, m, "1", "2", "99")
	assert.Contains(t, m.notice, "Could not update quantity")
	assert.Equal(t, 5, m.current.Cart().Lines()[1].Quantity)

	m = sendAll(t, m, "2", "1")
	assert.Equal(t, "Removed Sketchbook (A4, 100 sheets) from your cart.", m.notice)
	assert.Equal(t, 1, m.current.Cart().Len())

	m = sendAll(t, m, "3", "no")
	assert.Equal(t, "Cart not cleared.", m.notice)
	assert.Equal(t, screenCart, m.screen)

	m = sendAll(t, m, "3", "y")
	assert.Equal(t, "Your cart is now empty.", m.notice)
	assert.Equal(t, screenMain, m.screen)
	assert.True(t, m.current.Cart().IsEmpty())
}

func TestShell_OrdersStatusAndHistory(t *testing.T) {
	m, deps := newTestModel(t)

	m = send(t, m, "5")
	assert.Equal(t, "No orders have been placed yet.", m.notice)

	m = register(t, m, "Alice", "alice@example.com")
	m = sendAll(t, m, "2", "1", "206", "1", "3", "4", "y")
	require.Equal(t, 1, deps.Orders.Len())

	m = send(t, m, "5")
	assert.Equal(t, screenOrders, m.screen)
	assert.Contains(t, m.View(), "Order #1001 - Alice - $45.99 (Confirmed)")

	m = send(t, m, "4242")
	assert.Equal(t, "Order with ID 4242 not found.", m.notice)

	m = send(t, m, "1001")
	assert.Equal(t, screenOrderDetail, m.screen)
	assert.Contains(t, m.detail, "Calligraphy Pen Set x1 = $45.99")

	m = sendAll(t, m, "1", "4")
	assert.Equal(t, "Order status updated to: Shipped", m.notice)
	assert.Contains(t, m.detail, "Status: Shipped")

	m = sendAll(t, m, "1", "0")
	assert.Equal(t, "Invalid status choice. No changes made.", m.notice)

	m = send(t, m, "2")
	assert.Contains(t, m.detail, "- -> Pending (checkout)")
	assert.Contains(t, m.detail, "Pending -> Confirmed (checkout)")
	assert.Contains(t, m.detail, "Confirmed -> Shipped (operator)")

	m = sendAll(t, m, "3", "0")
	assert.Equal(t, screenMain, m.screen)
}

func TestShell_EscReturnsToMainMenu(t *testing.T) {
	m, _ := newTestModel(t)
	m = sendAll(t, m, "1", "2")
	require.Equal(t, screenRegisterName, m.screen)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Ali")})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)

	assert.Equal(t, screenMain, m.screen)
	assert.Empty(t, m.input)
}

func TestShell_Editing(t *testing.T) {
	m, _ := newTestModel(t)

	var next tea.Model = m
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeySpace})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Equal(t, "ab ", next.(Model).input)
}

func TestShell_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).Quitting())
	assert.IsType(t, tea.QuitMsg{}, cmd())

	exit, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("6")})
	exit, cmd = exit.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, exit.(Model).Quitting())
	assert.Equal(t, "Thanks for visiting our store!\n", exit.View())
}
