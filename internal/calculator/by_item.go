package calculator

import (
	"fmt"
	"strings"

	"github.com/mmynk/tabsplit/internal/money"
)

func (s ByItemSplit) validate(c *Calculator) error {
	if len(s.Assignments) == 0 {
		return ErrNoParticipants
	}
	cl := newClaims(c)
	var assigned money.Cents
	for _, a := range s.Assignments {
		if strings.TrimSpace(a.PersonID) == "" {
			return fmt.Errorf("%w: item %q is assigned to nobody", ErrInvalidConfig, a.ItemID)
		}
		item, qty, err := cl.take(a.ItemID, a.Quantity)
		if err != nil {
			return err
		}
		assigned += item.UnitTotal() * money.Cents(qty)
	}
	return c.checkAssignedTotal(assigned)
}

func (s ByItemSplit) split(c *Calculator) []Participant {
	cl := newClaims(c)
	l := newLedger()
	for _, a := range s.Assignments {
		item, qty, _ := cl.take(a.ItemID, a.Quantity)
		l.charge(a.PersonID, a.PersonName, item, float64(qty), item.UnitTotal()*money.Cents(qty))
	}
	ps := l.participants()
	c.distributeTaxTip(s.Options, ps)
	return ps
}
