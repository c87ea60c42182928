// Package calculator splits a restaurant bill between the people at a table.
//
// A Calculator is built once per order from its line items and totals and
// can then evaluate any number of split configurations. Each call validates
// the configuration against the order before computing anything, and
// reports problems through the returned Result instead of an error.
package calculator

import (
	"fmt"

	"github.com/mmynk/tabsplit/internal/money"
)

// Calculator evaluates split configurations against one order. It never
// mutates its state after New, so it is safe for concurrent use.
type Calculator struct {
	items    []LineItem
	index    map[string]int
	subtotal money.Cents
	tax      money.Cents
	tip      money.Cents
	allowed  map[Method]bool
	orderErr error
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithMethods restricts the strategies the calculator accepts.
func WithMethods(methods ...Method) Option {
	return func(c *Calculator) {
		c.allowed = make(map[Method]bool, len(methods))
		for _, m := range methods {
			c.allowed[m] = true
		}
	}
}

// New creates a calculator for an order. Pass a zero tip when there is none.
func New(items []LineItem, subtotal, tax, tip money.Cents, opts ...Option) *Calculator {
	c := &Calculator{
		items:    make([]LineItem, len(items)),
		index:    make(map[string]int, len(items)),
		subtotal: subtotal,
		tax:      tax,
		tip:      tip,
	}
	copy(c.items, items)
	for i, item := range c.items {
		if err := checkLineItem(item); err != nil && c.orderErr == nil {
			c.orderErr = err
		}
		if _, dup := c.index[item.ID]; dup && c.orderErr == nil {
			c.orderErr = fmt.Errorf("%w: duplicate item id %q", ErrInvalidOrder, item.ID)
		}
		if _, dup := c.index[item.ID]; !dup {
			c.index[item.ID] = i
		}
	}
	switch {
	case c.orderErr != nil:
	case subtotal < 0:
		c.orderErr = fmt.Errorf("%w: subtotal cannot be negative", ErrInvalidOrder)
	case tax < 0:
		c.orderErr = fmt.Errorf("%w: tax cannot be negative", ErrInvalidOrder)
	case tip < 0:
		c.orderErr = fmt.Errorf("%w: tip cannot be negative", ErrInvalidOrder)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func checkLineItem(item LineItem) error {
	if item.ID == "" {
		return fmt.Errorf("%w: line item without id", ErrInvalidOrder)
	}
	if item.Quantity < 1 {
		return fmt.Errorf("%w: item %q has quantity %d", ErrInvalidOrder, item.ID, item.Quantity)
	}
	if item.UnitPrice < 0 {
		return fmt.Errorf("%w: item %q has a negative price", ErrInvalidOrder, item.ID)
	}
	for _, m := range item.Modifiers {
		if m.Price < 0 {
			return fmt.Errorf("%w: modifier %q on item %q has a negative price", ErrInvalidOrder, m.Name, item.ID)
		}
	}
	return nil
}

// Subtotal returns the order subtotal the calculator was built with.
func (c *Calculator) Subtotal() money.Cents { return c.subtotal }

// Tax returns the order tax.
func (c *Calculator) Tax() money.Cents { return c.tax }

// Tip returns the order tip.
func (c *Calculator) Tip() money.Cents { return c.tip }

// Calculate validates cfg against the order and computes each participant's
// share. It is deterministic: the same order and config always produce the
// same Result.
func (c *Calculator) Calculate(cfg Config) Result {
	// Value variants only. Pointer variants satisfy Config too, and a nil
	// one panics when called.
	switch cfg.(type) {
	case EqualSplit, ByItemSplit, ByPersonSplit, PercentageSplit, CustomAmountSplit, SharedItemsSplit:
	case nil:
		return invalid("", fmt.Errorf("%w: no configuration", ErrInvalidConfig))
	default:
		return invalid("", fmt.Errorf("%w: %T", ErrUnsupportedMethod, cfg))
	}
	m := cfg.Method()
	if c.orderErr != nil {
		return invalid(m, c.orderErr)
	}
	if c.allowed != nil && !c.allowed[m] {
		return invalid(m, fmt.Errorf("%w: %q is not available", ErrUnsupportedMethod, m))
	}
	if err := cfg.validate(c); err != nil {
		return invalid(m, err)
	}
	return c.reconcile(m, cfg.options(), cfg.split(c))
}

// expectedTotal is what the participants must cover between them.
func (c *Calculator) expectedTotal(opts Options) money.Cents {
	if opts.IncludeTaxTips() {
		return c.subtotal + c.tax + c.tip
	}
	return c.subtotal
}

// reconcile sums the participants and checks that the split covers the
// bill exactly and charges nobody a negative amount.
func (c *Calculator) reconcile(m Method, opts Options, ps []Participant) Result {
	r := Result{Method: m, Participants: ps, Valid: true}
	for _, p := range ps {
		if p.Amount < 0 || p.Tax < 0 || p.Tip < 0 {
			return invalid(m, fmt.Errorf("%w for %s", ErrNegativeShare, p.PersonName))
		}
		r.TotalAmount += p.Amount
		r.TotalTax += p.Tax
		r.TotalTip += p.Tip
	}
	if got, want := r.GrandTotal(), c.expectedTotal(opts); got != want {
		return invalid(m, fmt.Errorf("%w: split covers %s of %s", ErrAmountMismatch, got, want))
	}
	return r
}

// distributeTaxTip spreads tax and tip across participants in proportion
// to their pre-tax amounts. The last participant absorbs rounding.
func (c *Calculator) distributeTaxTip(opts Options, ps []Participant) {
	if !opts.IncludeTaxTips() || len(ps) == 0 {
		return
	}
	weights := make([]money.Cents, len(ps))
	for i, p := range ps {
		weights[i] = p.Amount
	}
	taxes := money.Allocate(c.tax, weights)
	tips := money.Allocate(c.tip, weights)
	for i := range ps {
		ps[i].Tax = taxes[i]
		ps[i].Tip = tips[i]
	}
}

// item looks up an order line by id.
func (c *Calculator) item(id string) (LineItem, bool) {
	i, ok := c.index[id]
	if !ok {
		return LineItem{}, false
	}
	return c.items[i], true
}
