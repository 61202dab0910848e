package shell

import (
	"fmt"
	"strings"

	"github.com/jcmexdev/storefront/internal/cart"
	catdomain "github.com/jcmexdev/storefront/internal/catalog/domain"
	"github.com/jcmexdev/storefront/internal/order/domain"
	"github.com/jcmexdev/storefront/internal/orderlog"
)

const (
	orderDateLayout = "Jan 02, 2006 at 03:04 PM"
	eventTimeLayout = "2006-01-02 15:04:05"
)

func (m Model) View() string {
	if m.quitting {
		return "Thanks for visiting our store!\n"
	}

	b := &strings.Builder{}
	fmt.Fprintln(b, "=== Storefront ===")
	if m.current != nil {
		fmt.Fprintf(b, "Logged in as: %s\n", m.current.Name())
	} else {
		fmt.Fprintln(b, "Not logged in.")
	}
	fmt.Fprintln(b)

	m.renderScreen(b)

	if m.detail != "" {
		fmt.Fprintln(b)
		fmt.Fprint(b, m.detail)
	}
	if m.notice != "" {
		fmt.Fprintln(b)
		fmt.Fprintln(b, m.notice)
	}
	fmt.Fprintf(b, "\n> %s\n", m.input)
	fmt.Fprintln(b, "\nenter: submit  esc: main menu  ctrl+c: quit")
	return b.String()
}

func (m Model) renderScreen(b *strings.Builder) {
	switch m.screen {
	case screenMain:
		fmt.Fprintln(b, "=== MAIN MENU ===")
		fmt.Fprintln(b, "1. Customer Login/Register")
		fmt.Fprintln(b, "2. Browse Products")
		fmt.Fprintln(b, "3. View/Manage Cart")
		fmt.Fprintln(b, "4. Checkout")
		fmt.Fprintln(b, "5. View Orders")
		fmt.Fprintln(b, "6. Exit")
	case screenLogin:
		fmt.Fprintln(b, "=== CUSTOMER LOGIN ===")
		fmt.Fprintln(b, "1. Login as existing customer")
		fmt.Fprintln(b, "2. Register as new customer")
	case screenPickCustomer:
		fmt.Fprintln(b, "Available customers:")
		for i, c := range m.deps.Customers.List() {
			fmt.Fprintf(b, "%d. %s\n", i+1, c.Name())
		}
		fmt.Fprintln(b, "\nSelect customer number:")
	case screenRegisterName:
		fmt.Fprintln(b, "=== REGISTER NEW CUSTOMER ===")
		fmt.Fprintln(b, "Enter your name:")
	case screenRegisterEmail:
		fmt.Fprintln(b, "=== REGISTER NEW CUSTOMER ===")
		fmt.Fprintf(b, "Name: %s\n", m.pendingName)
		fmt.Fprintln(b, "Enter your email:")
	case screenBrowse, screenAddProduct, screenAddQuantity, screenProductDetails:
		m.renderBrowse(b)
	case screenCart, screenUpdateItem, screenUpdateQuantity, screenRemoveItem, screenClearConfirm:
		m.renderCart(b)
	case screenCheckoutConfirm:
		fmt.Fprintln(b, "=== CHECKOUT ===")
		fmt.Fprint(b, renderCartLines(m.current.Cart()))
		fmt.Fprintln(b, "\nReady to place your order? (yes/no)")
	case screenOrders:
		fmt.Fprintln(b, "=== ALL ORDERS ===")
		for _, o := range m.deps.Orders.List() {
			fmt.Fprintln(b, o.String())
		}
		fmt.Fprintln(b, "\nEnter an Order ID to see details (or 0 to go back):")
	case screenOrderDetail:
		fmt.Fprintf(b, "=== ORDER #%d ===\n", m.orderID)
		fmt.Fprintln(b, "1. Update order status")
		fmt.Fprintln(b, "2. View status history")
		fmt.Fprintln(b, "3. Back to orders")
	case screenPickStatus:
		fmt.Fprintln(b, "Available Status Options:")
		for i, s := range domain.Statuses {
			fmt.Fprintf(b, "%d. %s\n", i+1, s)
		}
		fmt.Fprintln(b, "\nEnter the number for new status:")
	}
}

func (m Model) renderBrowse(b *strings.Builder) {
	fmt.Fprintln(b, "=== BROWSE PRODUCTS ===")
	fmt.Fprintln(b, "Available Products:")
	for _, p := range m.deps.Catalog.List() {
		fmt.Fprint(b, renderProductLine(p))
	}

	switch m.screen {
	case screenAddProduct:
		fmt.Fprintln(b, "\nEnter product ID to add:")
	case screenAddQuantity:
		p, err := m.deps.Catalog.FindByID(m.productID)
		if err == nil {
			fmt.Fprintf(b, "\nHow many %s? (1-%d)\n", p.Name, p.Stock)
		}
	case screenProductDetails:
		fmt.Fprintln(b, "\nEnter product ID to view:")
	default:
		fmt.Fprintln(b, "\nOptions:")
		fmt.Fprintln(b, "1. Add product to cart")
		fmt.Fprintln(b, "2. View product details")
		fmt.Fprintln(b, "3. Return to main menu")
	}
}

func (m Model) renderCart(b *strings.Builder) {
	fmt.Fprintln(b, "=== CART MANAGEMENT ===")
	fmt.Fprint(b, renderCartLines(m.current.Cart()))

	switch m.screen {
	case screenUpdateItem:
		fmt.Fprintln(b, "\nEnter item number to update:")
	case screenUpdateQuantity:
		fmt.Fprintf(b, "\nNew quantity for item %d:\n", m.itemIndex+1)
	case screenRemoveItem:
		fmt.Fprintln(b, "\nEnter item number to remove:")
	case screenClearConfirm:
		fmt.Fprintln(b, "\nAre you sure you want to clear your cart? (yes/no)")
	default:
		fmt.Fprintln(b, "\nOptions:")
		fmt.Fprintln(b, "1. Update item quantity")
		fmt.Fprintln(b, "2. Remove item from cart")
		fmt.Fprintln(b, "3. Clear entire cart")
		fmt.Fprintln(b, "4. Return to main menu")
	}
}

func renderProductLine(p catdomain.Product) string {
	availability := "Out of Stock"
	if p.IsAvailable() {
		availability = fmt.Sprintf("In Stock (%d available)", p.Stock)
	}
	return fmt.Sprintf("%d. %s - $%s\n   %s\n   %s\n", p.ID, p.Name, p.Price.StringFixed(2), p.Description, availability)
}

func renderProductDetails(p catdomain.Product) string {
	b := &strings.Builder{}
	fmt.Fprintln(b, "=== PRODUCT DETAILS ===")
	fmt.Fprintf(b, "Name: %s\n", p.Name)
	fmt.Fprintf(b, "Price: $%s\n", p.Price.StringFixed(2))
	fmt.Fprintf(b, "Description: %s\n", p.Description)
	fmt.Fprintf(b, "Stock: %d available\n", p.Stock)
	return b.String()
}

func renderCartLines(c *cart.Cart) string {
	if c.IsEmpty() {
		return "Your cart is empty.\n"
	}
	b := &strings.Builder{}
	for i, l := range c.Lines() {
		fmt.Fprintf(b, "%d. %s x%d = $%s\n", i+1, l.Name, l.Quantity, l.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(b, "\nTotal: $%s\n", c.Total().StringFixed(2))
	return b.String()
}

func renderOrderSummary(s domain.Summary) string {
	b := &strings.Builder{}
	fmt.Fprintln(b, "=== ORDER SUMMARY ===")
	fmt.Fprintf(b, "Order #: %d\n", s.ID)
	fmt.Fprintf(b, "Customer: %s\n", s.Customer.Name)
	fmt.Fprintf(b, "Email: %s\n", s.Customer.Email)
	fmt.Fprintf(b, "Order Date: %s\n", s.CreatedAt.Format(orderDateLayout))
	fmt.Fprintf(b, "Status: %s\n", s.Status)
	fmt.Fprintln(b, "\nItems Ordered:")
	for _, it := range s.Items {
		fmt.Fprintf(b, "  %s x%d = $%s\n", it.Name, it.Quantity, it.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(b, "\nOrder Total: $%s\n", s.Total.StringFixed(2))
	return b.String()
}

func renderHistory(orderID int, events []orderlog.Event) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "=== STATUS HISTORY #%d ===\n", orderID)
	if len(events) == 0 {
		fmt.Fprintln(b, "No status history recorded.")
		return b.String()
	}
	for _, ev := range events {
		from := ev.PreviousStatus
		if from == "" {
			from = "-"
		}
		fmt.Fprintf(b, "%s  %s -> %s (%s)\n", ev.RecordedAt.Local().Format(eventTimeLayout), from, ev.Status, ev.Note)
	}
	return b.String()
}
