package models

import "github.com/mmynk/tabsplit/internal/money"

// OrderStatus tracks where an order is in the checkout flow.
type OrderStatus string

const (
	// OrderOpen orders can still be split any number of ways.
	OrderOpen OrderStatus = "open"
	// OrderSplit orders have a confirmed split and pending payments.
	OrderSplit OrderStatus = "split"
)

// Order represents a table's order with the totals to be split.
type Order struct {
	// ID is the unique identifier for the order (UUID format).
	ID string

	// TableLabel is the human-readable table or tab name, e.g. "Table 12".
	TableLabel string

	// Items are the order lines. Their IDs are unique within the order.
	Items []LineItem

	// Subtotal is the pre-tax amount. Defaults to the sum of line totals.
	Subtotal money.Cents

	// Tax is the tax charged on the order.
	Tax money.Cents

	// Tip is the tip added to the order (zero if none).
	Tip money.Cents

	// Status is open until a split is confirmed.
	Status OrderStatus

	// CreatedBy is the staff user ID who rang up the order.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the order was created.
	CreatedAt int64
}

// ItemsTotal sums the line totals of all items.
func (o *Order) ItemsTotal() money.Cents {
	var total money.Cents
	for _, item := range o.Items {
		total += item.LineTotal()
	}
	return total
}

// LineItem represents a single line on an order.
type LineItem struct {
	// ID is the unique identifier for the line (UUID format unless the POS
	// supplies its own).
	ID string

	// MenuItemID references the menu entry this line was rung up from.
	MenuItemID string

	// MenuItemName is the display name at the time of ordering.
	MenuItemName string

	// UnitPrice is the price of one unit without modifiers.
	UnitPrice money.Cents

	// Quantity is the number of units purchased (at least 1).
	Quantity int

	// Modifiers are charged once per unit on top of UnitPrice.
	Modifiers []Modifier

	// Notes is free text for the kitchen. Not used for pricing.
	Notes string
}

// LineTotal is (UnitPrice + modifiers) × Quantity.
func (li LineItem) LineTotal() money.Cents {
	unit := li.UnitPrice
	for _, m := range li.Modifiers {
		unit += m.Price
	}
	return unit * money.Cents(li.Quantity)
}

// Modifier is an add-on selected for a line item.
type Modifier struct {
	ID    string
	Name  string
	Price money.Cents
}
