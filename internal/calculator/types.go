package calculator

import (
	"fmt"

	"github.com/mmynk/tabsplit/internal/money"
)

// Method identifies a split strategy.
type Method string

const (
	Equal        Method = "equal"
	ByItem       Method = "by_item"
	ByPerson     Method = "by_person"
	Percentage   Method = "percentage"
	CustomAmount Method = "custom_amount"
	SharedItems  Method = "shared_items"
)

// Methods lists every supported strategy.
var Methods = []Method{Equal, ByItem, ByPerson, Percentage, CustomAmount, SharedItems}

// Simplified is the reduced strategy set offered by the quick-split screen.
var Simplified = []Method{Equal, CustomAmount}

// ParseMethod maps a wire name such as "by_item" to a Method.
func ParseMethod(s string) (Method, error) {
	for _, m := range Methods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
}

// Modifier is an add-on selected for a line item (extra cheese, no onions).
// Its price is charged once per unit of the line.
type Modifier struct {
	ID    string
	Name  string
	Price money.Cents
}

// LineItem is one line of an order as seen by the calculator.
type LineItem struct {
	ID           string
	MenuItemID   string
	MenuItemName string
	UnitPrice    money.Cents
	Quantity     int
	Modifiers    []Modifier
	Notes        string
}

// UnitTotal is the price of one unit including its modifiers.
func (li LineItem) UnitTotal() money.Cents {
	total := li.UnitPrice
	for _, m := range li.Modifiers {
		total += m.Price
	}
	return total
}

// LineTotal is UnitTotal times the purchased quantity.
func (li LineItem) LineTotal() money.Cents {
	return li.UnitTotal() * money.Cents(li.Quantity)
}

// ItemShare is the part of an order line charged to one participant.
type ItemShare struct {
	ItemID string `json:"itemId"`
	Name   string `json:"name"`
	// Quantity may be fractional when an item is shared.
	Quantity float64     `json:"quantity"`
	Amount   money.Cents `json:"amount"`
}

// Participant is one payer in a split result.
//
// Amount is always the pre-tax share. Tax and Tip are broken out separately
// (zero when tax and tip are left on the whole bill).
type Participant struct {
	PersonID   string      `json:"personId"`
	PersonName string      `json:"personName"`
	MemberIDs  []string    `json:"memberIds,omitempty"`
	Amount     money.Cents `json:"amount"`
	Tax        money.Cents `json:"tax"`
	Tip        money.Cents `json:"tip"`
	Items      []ItemShare `json:"items"`
}

// Total is what the participant pays.
func (p Participant) Total() money.Cents {
	return p.Amount + p.Tax + p.Tip
}

// Result is the outcome of one calculation. When Valid is false, Error
// holds the reason and there are no participants and all totals are zero.
type Result struct {
	Method       Method        `json:"method"`
	Participants []Participant `json:"participants"`
	TotalAmount  money.Cents   `json:"totalAmount"`
	TotalTax     money.Cents   `json:"totalTax"`
	TotalTip     money.Cents   `json:"totalTip"`
	Valid        bool          `json:"isValid"`
	Error        string        `json:"errorMessage,omitempty"`

	err error
}

// Err returns the validation error behind an invalid result, or nil.
func (r Result) Err() error {
	return r.err
}

// GrandTotal is the sum of all participant totals.
func (r Result) GrandTotal() money.Cents {
	return r.TotalAmount + r.TotalTax + r.TotalTip
}

func invalid(m Method, err error) Result {
	return Result{
		Method:       m,
		Participants: []Participant{},
		Error:        err.Error(),
		err:          err,
	}
}
