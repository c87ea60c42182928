package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/tabsplit/internal/money"
)

// Config is a split configuration. It is a closed set: the concrete types
// below are the only implementations, one per Method.
type Config interface {
	Method() Method

	options() Options
	validate(c *Calculator) error
	split(c *Calculator) []Participant
}

// Options are shared by every strategy.
type Options struct {
	// ExcludeTaxTips leaves tax and tip on the whole bill instead of
	// distributing them across participants. The zero value includes them.
	ExcludeTaxTips bool
}

func (o Options) options() Options { return o }

// IncludeTaxTips reports whether tax and tip are distributed.
func (o Options) IncludeTaxTips() bool { return !o.ExcludeTaxTips }

// EqualSplit divides the bill evenly between NumberOfPeople seats.
type EqualSplit struct {
	Options
	NumberOfPeople int
	// Names optionally labels the first len(Names) seats.
	Names   []string
	RoundTo money.Unit
}

// ItemAssignment gives Quantity units of an order line to one person.
// A zero Quantity assigns the whole line.
type ItemAssignment struct {
	ItemID     string
	PersonID   string
	PersonName string
	Quantity   int
}

// ByItemSplit charges each person for the items assigned to them.
type ByItemSplit struct {
	Options
	Assignments []ItemAssignment
}

// PersonBill groups people into one sub-bill that owns a set of items.
type PersonBill struct {
	ID             string
	Name           string
	PersonIDs      []string
	ItemQuantities map[string]int
	// CustomAmount overrides the item-derived pre-tax amount when set.
	CustomAmount *money.Cents
}

// ByPersonSplit produces one participant per sub-bill.
type ByPersonSplit struct {
	Options
	Bills []PersonBill
}

// PercentageShare is one person's declared share of the bill.
type PercentageShare struct {
	PersonID   string
	PersonName string
	Percentage decimal.Decimal
}

// PercentageSplit allocates the bill by declared percentages.
type PercentageSplit struct {
	Options
	Shares []PercentageShare
}

// CustomAmountEntry is the exact amount one person pays.
type CustomAmountEntry struct {
	PersonName string
	Amount     money.Cents
}

// CustomAmountSplit lets every participant declare what they pay. When tax
// and tip are included the declared amounts must cover them too.
type CustomAmountSplit struct {
	Options
	Amounts []CustomAmountEntry
}

// SharedItem splits Quantity units of an order line evenly between people.
// A zero Quantity shares the whole line.
type SharedItem struct {
	ItemID    string
	PersonIDs []string
	Quantity  int
}

// IndividualItem gives Quantity units of an order line to one person.
type IndividualItem struct {
	ItemID   string
	PersonID string
	Quantity int
}

// SharedItemsSplit mixes shared and individually owned items.
type SharedItemsSplit struct {
	Options
	SharedItems     []SharedItem
	IndividualItems []IndividualItem
	// Names optionally maps person IDs to display names.
	Names map[string]string
}

func (EqualSplit) Method() Method        { return Equal }
func (ByItemSplit) Method() Method       { return ByItem }
func (ByPersonSplit) Method() Method     { return ByPerson }
func (PercentageSplit) Method() Method   { return Percentage }
func (CustomAmountSplit) Method() Method { return CustomAmount }
func (SharedItemsSplit) Method() Method  { return SharedItems }

var (
	_ Config = EqualSplit{}
	_ Config = ByItemSplit{}
	_ Config = ByPersonSplit{}
	_ Config = PercentageSplit{}
	_ Config = CustomAmountSplit{}
	_ Config = SharedItemsSplit{}
)
