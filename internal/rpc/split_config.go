package rpc

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/money"
)

// SplitConfig is the wire form of a split configuration: one object whose
// "method" field selects which of the remaining fields apply.
type SplitConfig struct {
	Method string `json:"method"`
	// IncludeTaxTips defaults to true when absent.
	IncludeTaxTips *bool `json:"includeTaxTips,omitempty"`

	// equal
	NumberOfPeople int      `json:"numberOfPeople,omitempty"`
	Names          []string `json:"names,omitempty"`
	RoundTo        string   `json:"roundTo,omitempty"`

	// by_item
	Assignments []ItemAssignment `json:"assignments,omitempty"`

	// by_person
	Bills []PersonBill `json:"bills,omitempty"`

	// percentage
	Percentages []PercentageShare `json:"percentages,omitempty"`

	// custom_amount
	Amounts []CustomAmount `json:"amounts,omitempty"`

	// shared_items
	SharedItems     []SharedItem      `json:"sharedItems,omitempty"`
	IndividualItems []IndividualItem  `json:"individualItems,omitempty"`
	PersonNames     map[string]string `json:"personNames,omitempty"`
}

type ItemAssignment struct {
	ItemID     string `json:"itemId"`
	PersonID   string `json:"personId"`
	PersonName string `json:"personName,omitempty"`
	Quantity   int    `json:"quantity,omitempty"`
}

type PersonBill struct {
	ID             string         `json:"id"`
	Name           string         `json:"name,omitempty"`
	PersonIDs      []string       `json:"personIds"`
	ItemQuantities map[string]int `json:"itemQuantities,omitempty"`
	CustomAmount   *money.Cents   `json:"customAmount,omitempty"`
}

type PercentageShare struct {
	PersonID   string          `json:"personId"`
	PersonName string          `json:"personName,omitempty"`
	Percentage decimal.Decimal `json:"percentage"`
}

type CustomAmount struct {
	PersonName string      `json:"personName"`
	Amount     money.Cents `json:"amount"`
}

type SharedItem struct {
	ItemID    string   `json:"itemId"`
	PersonIDs []string `json:"personIds"`
	Quantity  int      `json:"quantity,omitempty"`
}

type IndividualItem struct {
	ItemID   string `json:"itemId"`
	PersonID string `json:"personId"`
	Quantity int    `json:"quantity,omitempty"`
}

// Decode converts the wire form into the calculator's configuration.
// Unknown methods fail with calculator.ErrUnsupportedMethod.
func (c SplitConfig) Decode() (calculator.Config, error) {
	m, err := calculator.ParseMethod(c.Method)
	if err != nil {
		return nil, err
	}
	opts := calculator.Options{ExcludeTaxTips: c.IncludeTaxTips != nil && !*c.IncludeTaxTips}

	switch m {
	case calculator.Equal:
		unit, err := money.ParseUnit(c.RoundTo)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", calculator.ErrInvalidConfig, err)
		}
		return calculator.EqualSplit{Options: opts, NumberOfPeople: c.NumberOfPeople, Names: c.Names, RoundTo: unit}, nil

	case calculator.ByItem:
		s := calculator.ByItemSplit{Options: opts, Assignments: make([]calculator.ItemAssignment, len(c.Assignments))}
		for i, a := range c.Assignments {
			s.Assignments[i] = calculator.ItemAssignment(a)
		}
		return s, nil

	case calculator.ByPerson:
		s := calculator.ByPersonSplit{Options: opts, Bills: make([]calculator.PersonBill, len(c.Bills))}
		for i, b := range c.Bills {
			s.Bills[i] = calculator.PersonBill(b)
		}
		return s, nil

	case calculator.Percentage:
		s := calculator.PercentageSplit{Options: opts, Shares: make([]calculator.PercentageShare, len(c.Percentages))}
		for i, p := range c.Percentages {
			s.Shares[i] = calculator.PercentageShare(p)
		}
		return s, nil

	case calculator.CustomAmount:
		s := calculator.CustomAmountSplit{Options: opts, Amounts: make([]calculator.CustomAmountEntry, len(c.Amounts))}
		for i, a := range c.Amounts {
			s.Amounts[i] = calculator.CustomAmountEntry(a)
		}
		return s, nil

	case calculator.SharedItems:
		s := calculator.SharedItemsSplit{
			Options:         opts,
			SharedItems:     make([]calculator.SharedItem, len(c.SharedItems)),
			IndividualItems: make([]calculator.IndividualItem, len(c.IndividualItems)),
			Names:           c.PersonNames,
		}
		for i, si := range c.SharedItems {
			s.SharedItems[i] = calculator.SharedItem(si)
		}
		for i, ii := range c.IndividualItems {
			s.IndividualItems[i] = calculator.IndividualItem(ii)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", calculator.ErrUnsupportedMethod, c.Method)
}

// Fingerprint is a canonical encoding of the configuration, used to key
// cached previews.
func (c SplitConfig) Fingerprint() []byte {
	// Struct fields marshal in declaration order and map keys sorted.
	b, _ := json.Marshal(c)
	return b
}
