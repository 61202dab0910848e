// Package shell is the interactive terminal front end of the store.
//
// It is a Bubble Tea program that reads one line at a time, like the menu
// driven console it replaces. Every screen is a prompt; enter submits the
// typed line, esc goes back to the main menu and ctrl+c quits.
package shell

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcmexdev/storefront/internal/catalog"
	"github.com/jcmexdev/storefront/internal/customer"
	"github.com/jcmexdev/storefront/internal/order/app"
)

type screen int

const (
	screenMain screen = iota
	screenLogin
	screenPickCustomer
	screenRegisterName
	screenRegisterEmail
	screenBrowse
	screenAddProduct
	screenAddQuantity
	screenProductDetails
	screenCart
	screenUpdateItem
	screenUpdateQuantity
	screenRemoveItem
	screenClearConfirm
	screenCheckoutConfirm
	screenOrders
	screenOrderDetail
	screenPickStatus
)

// Deps are the store services the shell drives.
type Deps struct {
	Catalog   *catalog.Catalog
	Customers *customer.Registry
	Checkout  *app.Checkout
	Orders    *app.Book
	Logger    *slog.Logger
}

type Model struct {
	deps Deps
	ctx  context.Context

	screen screen
	input  string
	notice string
	detail string

	current     *customer.Customer
	pendingName string
	productID   int
	itemIndex   int
	orderID     int

	quitting bool
}

func New(ctx context.Context, deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return Model{deps: deps, ctx: ctx, screen: screenMain}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEsc:
			m.input = ""
			m.notice = ""
			return m.goTo(screenMain), nil
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input)
			m.input = ""
			m.notice = ""
			return m.submit(line)
		case tea.KeyBackspace:
			if r := []rune(m.input); len(r) > 0 {
				m.input = string(r[:len(r)-1])
			}
		case tea.KeySpace:
			m.input += " "
		case tea.KeyRunes:
			m.input += string(msg.Runes)
		}
	}
	return m, nil
}

// Quitting reports whether the user asked to leave the program.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m Model) submit(line string) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenMain:
		return m.mainMenu(line)
	case screenLogin:
		return m.loginMenu(line), nil
	case screenPickCustomer:
		return m.pickCustomer(line), nil
	case screenRegisterName:
		return m.registerName(line), nil
	case screenRegisterEmail:
		return m.registerEmail(line), nil
	case screenBrowse:
		return m.browseMenu(line), nil
	case screenAddProduct:
		return m.addProduct(line), nil
	case screenAddQuantity:
		return m.addQuantity(line), nil
	case screenProductDetails:
		return m.productDetails(line), nil
	case screenCart:
		return m.cartMenu(line), nil
	case screenUpdateItem:
		return m.updateItem(line), nil
	case screenUpdateQuantity:
		return m.updateQuantity(line), nil
	case screenRemoveItem:
		return m.removeItem(line), nil
	case screenClearConfirm:
		return m.clearConfirm(line), nil
	case screenCheckoutConfirm:
		return m.checkoutConfirm(line), nil
	case screenOrders:
		return m.ordersMenu(line), nil
	case screenOrderDetail:
		return m.orderDetail(line), nil
	case screenPickStatus:
		return m.pickStatus(line), nil
	}
	return m, nil
}

func (m Model) goTo(s screen) Model {
	m.screen = s
	m.detail = ""
	return m
}

// parseChoice reads a whole number in [lo, hi].
func parseChoice(line string, lo, hi int) (int, bool) {
	n, err := strconv.Atoi(line)
	if err != nil || n < lo || n > hi {
		return 0, false
	}
	return n, true
}

func confirmed(line string) bool {
	switch strings.ToLower(line) {
	case "y", "yes":
		return true
	}
	return false
}
