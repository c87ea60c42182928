package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tabsplit/internal/money"
)

var (
	hundredPercent      = decimal.NewFromInt(100)
	percentageTolerance = decimal.RequireFromString("0.01")
)

func (s PercentageSplit) validate(_ *Calculator) error {
	if len(s.Shares) == 0 {
		return ErrNoParticipants
	}
	ids := make([]string, len(s.Shares))
	sum := decimal.Zero
	for i, sh := range s.Shares {
		ids[i] = sh.PersonID
		if sh.Percentage.IsNegative() || sh.Percentage.GreaterThan(hundredPercent) {
			return fmt.Errorf("%w: %s has %s%%", ErrPercentageRange, sh.PersonID, sh.Percentage)
		}
		sum = sum.Add(sh.Percentage)
	}
	if err := checkPeople(ids); err != nil {
		return err
	}
	if sum.Sub(hundredPercent).Abs().GreaterThan(percentageTolerance) {
		return fmt.Errorf("%w (got %s%%)", ErrPercentageTotal, sum.StringFixed(2))
	}
	return nil
}

// split allocates subtotal, tax and tip separately by percentage so each
// component reconciles on its own.
func (s PercentageSplit) split(c *Calculator) []Participant {
	weights := make([]decimal.Decimal, len(s.Shares))
	for i, sh := range s.Shares {
		weights[i] = sh.Percentage
	}
	amounts := money.AllocateRatio(c.subtotal, weights)

	var taxes, tips []money.Cents
	if s.IncludeTaxTips() {
		taxes = money.AllocateRatio(c.tax, weights)
		tips = money.AllocateRatio(c.tip, weights)
	}

	ps := make([]Participant, len(s.Shares))
	for i, sh := range s.Shares {
		ps[i] = Participant{
			PersonID:   sh.PersonID,
			PersonName: sh.PersonName,
			Amount:     amounts[i],
			Items:      []ItemShare{},
		}
		if ps[i].PersonName == "" {
			ps[i].PersonName = sh.PersonID
		}
		if taxes != nil {
			ps[i].Tax, ps[i].Tip = taxes[i], tips[i]
		}
	}
	return ps
}
