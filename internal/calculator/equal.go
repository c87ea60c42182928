package calculator

import (
	"fmt"

	"github.com/mmynk/tabsplit/internal/money"
)

// Seat limits for an equal split.
const (
	MinPeople = 1
	MaxPeople = 50
)

func (s EqualSplit) validate(_ *Calculator) error {
	if s.NumberOfPeople < MinPeople || s.NumberOfPeople > MaxPeople {
		return fmt.Errorf("%w: number of people must be between %d and %d, got %d",
			ErrInvalidConfig, MinPeople, MaxPeople, s.NumberOfPeople)
	}
	if len(s.Names) > s.NumberOfPeople {
		return fmt.Errorf("%w: %d names given for %d people", ErrInvalidConfig, len(s.Names), s.NumberOfPeople)
	}
	if _, err := money.ParseUnit(string(s.RoundTo)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// split gives every seat round(total/n) and the last seat whatever is left.
// When rounding up would leave the last seat negative, seats are rounded down
// instead. Tax and tip are divided evenly unless that would cost a seat more
// than its share, in which case they follow the shares.
func (s EqualSplit) split(c *Calculator) []Participant {
	n := s.NumberOfPeople
	unit, _ := money.ParseUnit(string(s.RoundTo))
	total := c.expectedTotal(s.Options)
	perPerson := unit.Div(total, n)
	if (total-perPerson*money.Cents(n-1))*total < 0 {
		perPerson = unit.DivTruncate(total, n)
	}

	shares := make([]money.Cents, n)
	for i := range shares {
		shares[i] = perPerson
	}
	shares[n-1] = total - perPerson*money.Cents(n-1)

	var taxes, tips []money.Cents
	if s.IncludeTaxTips() {
		taxes = money.Split(c.tax, n)
		tips = money.Split(c.tip, n)
		for i := range shares {
			if taxes[i]+tips[i] > shares[i] {
				taxes = money.Allocate(c.tax, shares)
				tips = money.Allocate(c.tip, shares)
				break
			}
		}
	}

	ps := make([]Participant, n)
	for i := range ps {
		p := Participant{
			PersonID:   fmt.Sprintf("person-%d", i+1),
			PersonName: fmt.Sprintf("Person %d", i+1),
			Items:      []ItemShare{},
		}
		if i < len(s.Names) && s.Names[i] != "" {
			p.PersonName = s.Names[i]
		}
		if taxes != nil {
			p.Tax, p.Tip = taxes[i], tips[i]
		}
		p.Amount = shares[i] - p.Tax - p.Tip
		ps[i] = p
	}
	return ps
}
