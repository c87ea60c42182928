package calculator

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tabsplit/internal/money"
)

type randomOrder struct {
	items    []LineItem
	subtotal money.Cents
	tax      money.Cents
	tip      money.Cents
	people   []string
}

func newRandomOrder(rng *rand.Rand) randomOrder {
	o := randomOrder{}
	lines := 2 + rng.Intn(6)
	for i := 0; i < lines; i++ {
		item := LineItem{
			ID:           fmt.Sprintf("line-%d", i),
			MenuItemName: fmt.Sprintf("Dish %d", i),
			UnitPrice:    money.Cents(500 + rng.Intn(3000)),
			Quantity:     1 + rng.Intn(4),
		}
		if rng.Intn(3) == 0 {
			item.Modifiers = []Modifier{{ID: "extra", Name: "Extra", Price: money.Cents(rng.Intn(300))}}
		}
		o.items = append(o.items, item)
		o.subtotal += item.LineTotal()
	}
	o.tax = o.subtotal * money.Cents(rng.Intn(20)) / 100
	o.tip = o.subtotal * money.Cents(rng.Intn(25)) / 100
	for i := 0; i < 2+rng.Intn(5); i++ {
		o.people = append(o.people, fmt.Sprintf("guest-%d", i))
	}
	return o
}

func (o randomOrder) pick(rng *rand.Rand) string {
	return o.people[rng.Intn(len(o.people))]
}

func (o randomOrder) configs(rng *rand.Rand, opts Options) []Config {
	var byItem ByItemSplit
	var shared SharedItemsSplit
	bills := make(map[string]*PersonBill)
	var billOrder []string
	for _, item := range o.items {
		for u := 0; u < item.Quantity; u++ {
			byItem.Assignments = append(byItem.Assignments, ItemAssignment{ItemID: item.ID, PersonID: o.pick(rng), Quantity: 1})
		}

		if rng.Intn(2) == 0 {
			shared.SharedItems = append(shared.SharedItems, SharedItem{ItemID: item.ID, PersonIDs: o.people[:1+rng.Intn(len(o.people))]})
		} else {
			shared.IndividualItems = append(shared.IndividualItems, IndividualItem{ItemID: item.ID, PersonID: o.pick(rng)})
		}

		owner := o.pick(rng)
		b, ok := bills[owner]
		if !ok {
			b = &PersonBill{ID: "bill-" + owner, PersonIDs: []string{owner}, ItemQuantities: map[string]int{}}
			bills[owner] = b
			billOrder = append(billOrder, owner)
		}
		b.ItemQuantities[item.ID] = item.Quantity
	}
	byPerson := ByPersonSplit{Options: opts}
	for _, owner := range billOrder {
		byPerson.Bills = append(byPerson.Bills, *bills[owner])
	}

	pct := PercentageSplit{Options: opts}
	remaining := 100
	for i, p := range o.people {
		share := remaining
		if i < len(o.people)-1 {
			share = rng.Intn(remaining/2 + 1)
		}
		remaining -= share
		pct.Shares = append(pct.Shares, PercentageShare{PersonID: p, Percentage: decimal.NewFromInt(int64(share))})
	}

	expected := o.subtotal
	if opts.IncludeTaxTips() {
		expected += o.tax + o.tip
	}
	weights := make([]money.Cents, len(o.people))
	for i := range weights {
		weights[i] = money.Cents(1 + rng.Intn(10))
	}
	custom := CustomAmountSplit{Options: opts}
	for i, amount := range money.Allocate(expected, weights) {
		custom.Amounts = append(custom.Amounts, CustomAmountEntry{PersonName: o.people[i], Amount: amount})
	}

	byItem.Options = opts
	shared.Options = opts
	return []Config{
		EqualSplit{Options: opts, NumberOfPeople: len(o.people)},
		EqualSplit{Options: opts, NumberOfPeople: MinPeople + rng.Intn(MaxPeople), RoundTo: money.UnitDollar},
		byItem,
		byPerson,
		pct,
		custom,
		shared,
	}
}

func TestSplitsReconcile(t *testing.T) {
	rng := rand.New(rand.NewSource(20261016))
	for round := 0; round < 200; round++ {
		o := newRandomOrder(rng)
		c := New(o.items, o.subtotal, o.tax, o.tip)
		for _, opts := range []Options{{}, {ExcludeTaxTips: true}} {
			expected := o.subtotal
			if opts.IncludeTaxTips() {
				expected += o.tax + o.tip
			}
			for _, cfg := range o.configs(rng, opts) {
				r := c.Calculate(cfg)
				require.True(t, r.Valid, "round %d %s: %s", round, cfg.Method(), r.Error)
				assert.Equal(t, expected, r.GrandTotal(), "round %d %s", round, cfg.Method())

				var sum money.Cents
				for _, p := range r.Participants {
					assert.GreaterOrEqual(t, int64(p.Amount), int64(0))
					assert.GreaterOrEqual(t, int64(p.Tax), int64(0))
					assert.GreaterOrEqual(t, int64(p.Tip), int64(0))
					sum += p.Total()
				}
				assert.Equal(t, expected, sum)
				if !opts.IncludeTaxTips() {
					assert.Zero(t, r.TotalTax)
					assert.Zero(t, r.TotalTip)
				}
			}
		}
	}
}
