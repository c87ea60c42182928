package calculator

import (
	"fmt"
	"strings"

	"github.com/mmynk/tabsplit/internal/money"
)

// claims tracks how many units of each order line have been handed out so
// that no line is assigned beyond its purchased quantity.
type claims struct {
	c    *Calculator
	used map[string]int
}

func newClaims(c *Calculator) *claims {
	return &claims{c: c, used: make(map[string]int)}
}

// take reserves qty units of itemID (the whole line when qty is zero) and
// returns the line with the resolved quantity.
func (cl *claims) take(itemID string, qty int) (LineItem, int, error) {
	item, ok := cl.c.item(itemID)
	if !ok {
		return LineItem{}, 0, fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}
	if qty == 0 {
		qty = item.Quantity
	}
	if qty < 0 {
		return LineItem{}, 0, fmt.Errorf("%w: %d of %s", ErrInvalidQuantity, qty, describe(item))
	}
	if cl.used[itemID]+qty > item.Quantity {
		return LineItem{}, 0, fmt.Errorf("%w: %d of %s assigned but only %d ordered",
			ErrOverAssigned, cl.used[itemID]+qty, describe(item), item.Quantity)
	}
	cl.used[itemID] += qty
	return item, qty, nil
}

func describe(item LineItem) string {
	if item.MenuItemName == "" {
		return fmt.Sprintf("item %q", item.ID)
	}
	return fmt.Sprintf("%q (item %s)", item.MenuItemName, item.ID)
}

// ledger collects participants in order of first appearance.
type ledger struct {
	order []string
	byID  map[string]*Participant
}

func newLedger() *ledger {
	return &ledger{byID: make(map[string]*Participant)}
}

func (l *ledger) get(id, name string) *Participant {
	if p, ok := l.byID[id]; ok {
		if p.PersonName == p.PersonID && name != "" {
			p.PersonName = name
		}
		return p
	}
	if name == "" {
		name = id
	}
	p := &Participant{PersonID: id, PersonName: name, Items: []ItemShare{}}
	l.byID[id] = p
	l.order = append(l.order, id)
	return p
}

func (l *ledger) charge(id, name string, item LineItem, qty float64, amount money.Cents) {
	p := l.get(id, name)
	p.Amount += amount
	p.Items = append(p.Items, ItemShare{
		ItemID:   item.ID,
		Name:     item.MenuItemName,
		Quantity: qty,
		Amount:   amount,
	})
}

func (l *ledger) participants() []Participant {
	ps := make([]Participant, len(l.order))
	for i, id := range l.order {
		ps[i] = *l.byID[id]
	}
	return ps
}

// checkPeople rejects blank and repeated ids.
func checkPeople(ids []string) error {
	if len(ids) == 0 {
		return ErrNoParticipants
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: participant id cannot be blank", ErrInvalidConfig)
		}
		if seen[id] {
			return fmt.Errorf("%w: %q", ErrDuplicateParticipant, id)
		}
		seen[id] = true
	}
	return nil
}

// checkAssignedTotal requires item assignments to cover the subtotal exactly.
func (c *Calculator) checkAssignedTotal(assigned money.Cents) error {
	if assigned != c.subtotal {
		return fmt.Errorf("%w: assigned items total %s but the subtotal is %s",
			ErrUnassignedItems, assigned, c.subtotal)
	}
	return nil
}
