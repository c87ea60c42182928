package calculator

import (
	"fmt"
	"strings"

	"github.com/mmynk/tabsplit/internal/money"
)

// MaxCustomAmount caps a single declared amount.
const MaxCustomAmount money.Cents = 10000_00

func (s CustomAmountSplit) validate(c *Calculator) error {
	if len(s.Amounts) == 0 {
		return ErrNoParticipants
	}
	names := make([]string, len(s.Amounts))
	var sum money.Cents
	for i, a := range s.Amounts {
		if strings.TrimSpace(a.PersonName) == "" {
			return fmt.Errorf("%w: every custom amount needs a name", ErrInvalidConfig)
		}
		if a.Amount < 0 || a.Amount > MaxCustomAmount {
			return fmt.Errorf("%w: %s entered %s", ErrAmountRange, a.PersonName, a.Amount)
		}
		names[i] = a.PersonName
		sum += a.Amount
	}
	if err := checkPeople(names); err != nil {
		return err
	}
	if want := c.expectedTotal(s.Options); sum != want {
		return fmt.Errorf("%w: custom amounts total %s but the bill total is %s", ErrAmountMismatch, sum, want)
	}
	return nil
}

// split takes each declared amount as the person's full payment. When tax
// and tip are included they are carved out of the declared amounts in
// proportion to each amount.
func (s CustomAmountSplit) split(c *Calculator) []Participant {
	ps := make([]Participant, len(s.Amounts))
	declared := make([]money.Cents, len(s.Amounts))
	for i, a := range s.Amounts {
		declared[i] = a.Amount
		ps[i] = Participant{
			PersonID:   a.PersonName,
			PersonName: a.PersonName,
			Amount:     a.Amount,
			Items:      []ItemShare{},
		}
	}
	if !s.IncludeTaxTips() {
		return ps
	}
	taxes := money.Allocate(c.tax, declared)
	tips := money.Allocate(c.tip, declared)
	for i := range ps {
		ps[i].Tax = taxes[i]
		ps[i].Tip = tips[i]
		ps[i].Amount = declared[i] - taxes[i] - tips[i]
	}
	return ps
}
