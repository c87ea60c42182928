package calculator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mmynk/tabsplit/internal/money"
)

func (s ByPersonSplit) validate(c *Calculator) error {
	if len(s.Bills) == 0 {
		return ErrNoParticipants
	}
	billIDs := make([]string, len(s.Bills))
	var people []string
	for i, b := range s.Bills {
		billIDs[i] = b.ID
		if len(b.PersonIDs) == 0 {
			return fmt.Errorf("%w: bill %q has no people", ErrNoParticipants, b.ID)
		}
		people = append(people, b.PersonIDs...)
	}
	if err := checkPeople(billIDs); err != nil {
		return err
	}
	if err := checkPeople(people); err != nil {
		return err
	}

	cl := newClaims(c)
	var total money.Cents
	for _, b := range s.Bills {
		itemIDs := make([]string, 0, len(b.ItemQuantities))
		for id := range b.ItemQuantities {
			itemIDs = append(itemIDs, id)
		}
		sort.Strings(itemIDs)

		var amount money.Cents
		for _, id := range itemIDs {
			qty := b.ItemQuantities[id]
			if qty <= 0 {
				return fmt.Errorf("%w: bill %q lists %d of item %q", ErrInvalidQuantity, b.ID, qty, id)
			}
			item, _, err := cl.take(id, qty)
			if err != nil {
				return err
			}
			amount += item.UnitTotal() * money.Cents(qty)
		}
		if b.CustomAmount != nil {
			if *b.CustomAmount < 0 || *b.CustomAmount > MaxCustomAmount {
				return fmt.Errorf("%w: bill %q", ErrAmountRange, b.ID)
			}
			amount = *b.CustomAmount
		}
		total += amount
	}
	if total != c.subtotal {
		return fmt.Errorf("%w: bills total %s but the subtotal is %s", ErrAmountMismatch, total, c.subtotal)
	}
	return nil
}

// split turns every bill into one participant. Items are listed in order
// of the order lines.
func (s ByPersonSplit) split(c *Calculator) []Participant {
	ps := make([]Participant, len(s.Bills))
	for i, b := range s.Bills {
		p := Participant{
			PersonID:   b.ID,
			PersonName: b.Name,
			MemberIDs:  append([]string(nil), b.PersonIDs...),
			Items:      []ItemShare{},
		}
		if p.PersonName == "" {
			p.PersonName = strings.Join(b.PersonIDs, ", ")
		}
		for _, item := range c.items {
			qty, ok := b.ItemQuantities[item.ID]
			if !ok {
				continue
			}
			amount := item.UnitTotal() * money.Cents(qty)
			p.Amount += amount
			p.Items = append(p.Items, ItemShare{
				ItemID:   item.ID,
				Name:     item.MenuItemName,
				Quantity: float64(qty),
				Amount:   amount,
			})
		}
		if b.CustomAmount != nil {
			p.Amount = *b.CustomAmount
		}
		ps[i] = p
	}
	c.distributeTaxTip(s.Options, ps)
	return ps
}
