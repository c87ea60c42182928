package calculator

import (
	"fmt"
	"strings"

	"github.com/mmynk/tabsplit/internal/money"
)

func (s SharedItemsSplit) validate(c *Calculator) error {
	if len(s.SharedItems) == 0 && len(s.IndividualItems) == 0 {
		return ErrNoParticipants
	}
	cl := newClaims(c)
	var assigned money.Cents
	for _, si := range s.SharedItems {
		if err := checkPeople(si.PersonIDs); err != nil {
			return fmt.Errorf("shared item %q: %w", si.ItemID, err)
		}
		item, qty, err := cl.take(si.ItemID, si.Quantity)
		if err != nil {
			return err
		}
		assigned += item.UnitTotal() * money.Cents(qty)
	}
	for _, ii := range s.IndividualItems {
		if strings.TrimSpace(ii.PersonID) == "" {
			return fmt.Errorf("%w: item %q is assigned to nobody", ErrInvalidConfig, ii.ItemID)
		}
		item, qty, err := cl.take(ii.ItemID, ii.Quantity)
		if err != nil {
			return err
		}
		assigned += item.UnitTotal() * money.Cents(qty)
	}
	if assigned != c.subtotal {
		return fmt.Errorf("%w: shared and individual items total %s but the subtotal is %s",
			ErrUnassignedItems, assigned, c.subtotal)
	}
	return nil
}

// split divides each shared line evenly in cents, the last listed person
// taking the odd cent, and hands individual lines to their owners.
func (s SharedItemsSplit) split(c *Calculator) []Participant {
	cl := newClaims(c)
	l := newLedger()
	for _, si := range s.SharedItems {
		item, qty, _ := cl.take(si.ItemID, si.Quantity)
		heads := len(si.PersonIDs)
		shares := money.Split(item.UnitTotal()*money.Cents(qty), heads)
		perHead := float64(qty) / float64(heads)
		for i, id := range si.PersonIDs {
			l.charge(id, s.Names[id], item, perHead, shares[i])
		}
	}
	for _, ii := range s.IndividualItems {
		item, qty, _ := cl.take(ii.ItemID, ii.Quantity)
		l.charge(ii.PersonID, s.Names[ii.PersonID], item, float64(qty), item.UnitTotal()*money.Cents(qty))
	}
	ps := l.participants()
	c.distributeTaxTip(s.Options, ps)
	return ps
}
