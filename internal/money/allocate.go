package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Unit is the granularity an amount is rounded to.
type Unit string

const (
	UnitCent   Unit = "cent"
	UnitDollar Unit = "dollar"
)

// ParseUnit maps "cent", "dollar" and "" (cent) to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case "", UnitCent:
		return UnitCent, nil
	case UnitDollar:
		return UnitDollar, nil
	default:
		return "", fmt.Errorf("unknown rounding unit %q", s)
	}
}

func (u Unit) step() int64 {
	if u == UnitDollar {
		return 100
	}
	return 1
}

// Round rounds c to the unit, half away from zero.
func (u Unit) Round(c Cents) Cents {
	step := u.step()
	if step == 1 {
		return c
	}
	q := decimal.NewFromInt(int64(c)).Div(decimal.NewFromInt(step)).Round(0)
	return Cents(q.IntPart() * step)
}

// Div divides total into n parts and rounds one part to the unit.
func (u Unit) Div(total Cents, n int) Cents {
	return u.div(total, n, decimal.Decimal.Round)
}

// DivTruncate is Div rounding toward zero, so n-1 parts never exceed total.
func (u Unit) DivTruncate(total Cents, n int) Cents {
	return u.div(total, n, decimal.Decimal.Truncate)
}

func (u Unit) div(total Cents, n int, round func(decimal.Decimal, int32) decimal.Decimal) Cents {
	if n <= 0 {
		return 0
	}
	step := u.step()
	q := decimal.NewFromInt(int64(total)).Div(decimal.NewFromInt(int64(n) * step))
	return Cents(round(q, 0).IntPart() * step)
}

// Split divides total evenly into n shares. Every share but the last is
// rounded to the cent; the last share absorbs the remainder.
func Split(total Cents, n int) []Cents {
	if n <= 0 {
		return nil
	}
	weights := make([]decimal.Decimal, n)
	for i := range weights {
		weights[i] = decimal.NewFromInt(1)
	}
	return AllocateRatio(total, weights)
}

// Allocate distributes total proportionally to weights. Every share but the
// last is rounded to the cent; the last share absorbs the remainder so the
// shares always sum to total. Zero weights everywhere split evenly.
func Allocate(total Cents, weights []Cents) []Cents {
	ws := make([]decimal.Decimal, len(weights))
	for i, w := range weights {
		ws[i] = decimal.NewFromInt(int64(w))
	}
	return AllocateRatio(total, ws)
}

// AllocateRatio is Allocate for arbitrary non-negative decimal weights such
// as percentages. Weights are normalised by their sum.
func AllocateRatio(total Cents, weights []decimal.Decimal) []Cents {
	n := len(weights)
	if n == 0 {
		return nil
	}
	sum := decimal.Zero
	for _, w := range weights {
		sum = sum.Add(w)
	}
	if sum.IsZero() {
		even := make([]decimal.Decimal, n)
		for i := range even {
			even[i] = decimal.NewFromInt(1)
		}
		weights, sum = even, decimal.NewFromInt(int64(n))
	}

	shares := allocate(total, weights, sum, decimal.Decimal.Round)
	if shares[n-1]*total.sign() < 0 {
		// Rounding the leading shares up overshot the total; truncate
		// instead so the last share keeps the sign of the total.
		shares = allocate(total, weights, sum, decimal.Decimal.Truncate)
	}
	return shares
}

func allocate(total Cents, weights []decimal.Decimal, sum decimal.Decimal, round func(decimal.Decimal, int32) decimal.Decimal) []Cents {
	n := len(weights)
	shares := make([]Cents, n)
	t := decimal.NewFromInt(int64(total))
	var assigned Cents
	for i := 0; i < n-1; i++ {
		shares[i] = Cents(round(t.Mul(weights[i]).Div(sum), 0).IntPart())
		assigned += shares[i]
	}
	shares[n-1] = total - assigned
	return shares
}

func (c Cents) sign() Cents {
	switch {
	case c > 0:
		return 1
	case c < 0:
		return -1
	default:
		return 0
	}
}
