package shell

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcmexdev/storefront/internal/order/domain"
)

func (m Model) mainMenu(line string) (tea.Model, tea.Cmd) {
	choice, ok := parseChoice(line, 1, 6)
	if !ok {
		m.notice = "Invalid option. Please choose 1-6."
		return m, nil
	}

	switch choice {
	case 1:
		return m.goTo(screenLogin), nil
	case 2:
		if m.current == nil {
			m.notice = "Please log in first to browse products."
			return m, nil
		}
		return m.goTo(screenBrowse), nil
	case 3:
		if m.current == nil {
			m.notice = "Please log in first to manage your cart."
			return m, nil
		}
		if m.current.Cart().IsEmpty() {
			m.notice = "Your cart is empty. Time to go shopping!"
			return m, nil
		}
		return m.goTo(screenCart), nil
	case 4:
		if m.current == nil {
			m.notice = "Please log in first to checkout."
			return m, nil
		}
		if m.current.Cart().IsEmpty() {
			m.notice = "Your cart is empty. Add some products before checking out."
			return m, nil
		}
		return m.goTo(screenCheckoutConfirm), nil
	case 5:
		if m.deps.Orders.Len() == 0 {
			m.notice = "No orders have been placed yet."
			return m, nil
		}
		return m.goTo(screenOrders), nil
	default:
		m.quitting = true
		return m, tea.Quit
	}
}

func (m Model) loginMenu(line string) Model {
	switch line {
	case "1":
		if m.deps.Customers.Len() == 0 {
			m.notice = "No customers registered yet. Please register first."
			return m.goTo(screenMain)
		}
		return m.goTo(screenPickCustomer)
	case "2":
		return m.goTo(screenRegisterName)
	}
	m.notice = "Invalid login option. Returning to main menu."
	return m.goTo(screenMain)
}

func (m Model) pickCustomer(line string) Model {
	n, err := strconv.Atoi(line)
	if err != nil {
		m.notice = "Invalid selection. Please try again."
		return m
	}
	c, err := m.deps.Customers.At(n)
	if err != nil {
		m.notice = "Invalid selection. Please try again."
		return m
	}
	m.current = c
	m.notice = fmt.Sprintf("Welcome back, %s!", c.Name())
	return m.goTo(screenMain)
}

func (m Model) registerName(line string) Model {
	if line == "" {
		m.notice = "Name cannot be empty."
		return m
	}
	m.pendingName = line
	return m.goTo(screenRegisterEmail)
}

func (m Model) registerEmail(line string) Model {
	c, err := m.deps.Customers.Register(m.pendingName, line)
	m.pendingName = ""
	if err != nil {
		m.notice = "Registration failed: " + err.Error()
		return m.goTo(screenMain)
	}
	m.deps.Logger.InfoContext(m.ctx, "customer registered", "customer_id", c.ID())
	m.current = c
	m.notice = fmt.Sprintf("Registration successful! Welcome, %s!", c.Name())
	return m.goTo(screenMain)
}

func (m Model) browseMenu(line string) Model {
	switch line {
	case "1":
		return m.goTo(screenAddProduct)
	case "2":
		return m.goTo(screenProductDetails)
	case "3":
		return m.goTo(screenMain)
	}
	m.notice = "Invalid option. Please choose 1, 2, or 3."
	return m
}

func (m Model) addProduct(line string) Model {
	id, err := strconv.Atoi(line)
	if err != nil {
		m.notice = "Please enter a product ID."
		return m
	}
	p, err := m.deps.Catalog.FindByID(id)
	if err != nil {
		m.notice = "Product not found. Check the ID and try again."
		return m.goTo(screenBrowse)
	}
	if !p.IsAvailable() {
		m.notice = fmt.Sprintf("Sorry, %s is currently out of stock.", p.Name)
		return m.goTo(screenBrowse)
	}
	m.productID = p.ID
	return m.goTo(screenAddQuantity)
}

func (m Model) addQuantity(line string) Model {
	qty, err := strconv.Atoi(line)
	if err != nil {
		m.notice = "Invalid quantity. Item not added to cart."
		return m.goTo(screenBrowse)
	}
	added, err := m.current.Cart().Add(m.productID, qty)
	if err != nil {
		m.notice = "Could not add to cart: " + err.Error()
		return m.goTo(screenBrowse)
	}
	m.notice = fmt.Sprintf("Added %d x %s to your cart! (%d in cart)", qty, added.Name, added.Quantity)
	return m.goTo(screenBrowse)
}

func (m Model) productDetails(line string) Model {
	id, err := strconv.Atoi(line)
	if err != nil {
		m.notice = "Please enter a product ID."
		return m
	}
	p, err := m.deps.Catalog.FindByID(id)
	if err != nil {
		m.notice = fmt.Sprintf("Product not found with ID %d.", id)
		return m.goTo(screenBrowse)
	}
	m = m.goTo(screenBrowse)
	m.detail = renderProductDetails(p)
	return m
}

func (m Model) cartMenu(line string) Model {
	switch line {
	case "1":
		return m.goTo(screenUpdateItem)
	case "2":
		return m.goTo(screenRemoveItem)
	case "3":
		return m.goTo(screenClearConfirm)
	case "4":
		return m.goTo(screenMain)
	}
	m.notice = "Invalid option. Please choose 1-4."
	return m
}

func (m Model) updateItem(line string) Model {
	n, ok := parseChoice(line, 1, m.current.Cart().Len())
	if !ok {
		m.notice = "Invalid item number. Please try again."
		return m.goTo(screenCart)
	}
	m.itemIndex = n - 1
	return m.goTo(screenUpdateQuantity)
}

func (m Model) updateQuantity(line string) Model {
	qty, err := strconv.Atoi(line)
	if err != nil {
		m.notice = "Invalid quantity. Quantity not updated."
		return m.goTo(screenCart)
	}
	if err := m.current.Cart().UpdateQuantity(m.itemIndex, qty); err != nil {
		m.notice = "Could not update quantity: " + err.Error()
		return m.goTo(screenCart)
	}
	m.notice = "Quantity updated successfully!"
	return m.goTo(screenCart)
}

func (m Model) removeItem(line string) Model {
	n, err := strconv.Atoi(line)
	if err != nil {
		m.notice = "Invalid item number. Please try again."
		return m.goTo(screenCart)
	}
	removed, err := m.current.Cart().Remove(n - 1)
	if err != nil {
		m.notice = "Could not remove item: " + err.Error()
		return m.goTo(screenCart)
	}
	m.notice = fmt.Sprintf("Removed %s from your cart.", removed.Name)
	if m.current.Cart().IsEmpty() {
		return m.goTo(screenMain)
	}
	return m.goTo(screenCart)
}

func (m Model) clearConfirm(line string) Model {
	if !confirmed(line) {
		m.notice = "Cart not cleared."
		return m.goTo(screenCart)
	}
	m.current.Cart().Clear()
	m.notice = "Your cart is now empty."
	return m.goTo(screenMain)
}

// checkoutConfirm places the order on the event loop so the cart is never
// read by View while checkout is clearing it.
func (m Model) checkoutConfirm(line string) Model {
	if !confirmed(line) {
		m.notice = "Checkout cancelled. You can continue shopping."
		return m.goTo(screenMain)
	}
	o, err := m.deps.Checkout.PlaceOrder(m.ctx, m.current.Cart(), m.current.Ref())
	m = m.goTo(screenMain)
	if err != nil {
		m.notice = "Order placement failed: " + err.Error()
		return m
	}
	m.notice = "Your order has been placed successfully!"
	m.detail = renderOrderSummary(o.Summary())
	return m
}

func (m Model) ordersMenu(line string) Model {
	id, err := strconv.Atoi(line)
	if err != nil {
		m.notice = "Please enter an order ID."
		return m
	}
	if id == 0 {
		return m.goTo(screenMain)
	}
	o, err := m.deps.Orders.Get(id)
	if err != nil {
		m.notice = fmt.Sprintf("Order with ID %d not found.", id)
		return m
	}
	m.orderID = o.ID()
	m = m.goTo(screenOrderDetail)
	m.detail = renderOrderSummary(o.Summary())
	return m
}

func (m Model) orderDetail(line string) Model {
	switch line {
	case "1":
		return m.goTo(screenPickStatus)
	case "2":
		history, err := m.deps.Orders.History(m.ctx, m.orderID)
		if err != nil {
			m.notice = "Could not load history: " + err.Error()
			return m
		}
		m.detail = renderHistory(m.orderID, history)
		return m
	case "3":
		return m.goTo(screenOrders)
	}
	m.notice = "Invalid option. Please choose 1-3."
	return m
}

func (m Model) pickStatus(line string) Model {
	n, ok := parseChoice(line, 1, len(domain.Statuses))
	if !ok {
		m.notice = "Invalid status choice. No changes made."
		return m.showOrder()
	}
	change, err := m.deps.Orders.UpdateStatus(m.ctx, m.orderID, string(domain.Statuses[n-1]))
	if err != nil {
		m.notice = "Failed to update status: " + err.Error()
		return m.showOrder()
	}
	m.notice = fmt.Sprintf("Order status updated to: %s", change.To)
	return m.showOrder()
}

// showOrder returns to the detail screen of the selected order.
func (m Model) showOrder() Model {
	m = m.goTo(screenOrderDetail)
	if o, err := m.deps.Orders.Get(m.orderID); err == nil {
		m.detail = renderOrderSummary(o.Summary())
	}
	return m
}
