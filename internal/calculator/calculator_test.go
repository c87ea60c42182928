package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tabsplit/internal/money"
)

// dinner is a three-line order: 2 burgers with cheese (13.50 each),
// 1 fries (4.50) and 3 sodas (3.00 each). Subtotal 40.50.
func dinner() []LineItem {
	return []LineItem{
		{
			ID: "burger", MenuItemID: "m-1", MenuItemName: "Burger", UnitPrice: 1200, Quantity: 2,
			Modifiers: []Modifier{{ID: "mod-1", Name: "Cheese", Price: 150}},
		},
		{ID: "fries", MenuItemID: "m-2", MenuItemName: "Fries", UnitPrice: 450, Quantity: 1},
		{ID: "soda", MenuItemID: "m-3", MenuItemName: "Soda", UnitPrice: 300, Quantity: 3, Notes: "no ice"},
	}
}

func dinnerCalculator(opts ...Option) *Calculator {
	return New(dinner(), 4050, 324, 600, opts...)
}

func amounts(r Result) []money.Cents {
	out := make([]money.Cents, len(r.Participants))
	for i, p := range r.Participants {
		out[i] = p.Amount
	}
	return out
}

func totals(r Result) []money.Cents {
	out := make([]money.Cents, len(r.Participants))
	for i, p := range r.Participants {
		out[i] = p.Total()
	}
	return out
}

func requireInvalid(t *testing.T, r Result, target error) {
	t.Helper()
	require.False(t, r.Valid, "expected invalid result")
	assert.ErrorIs(t, r.Err(), target)
	assert.NotEmpty(t, r.Error)
	assert.Empty(t, r.Participants)
	assert.Zero(t, r.TotalAmount)
	assert.Zero(t, r.TotalTax)
	assert.Zero(t, r.TotalTip)
}

func TestLineItemTotals(t *testing.T) {
	burger := dinner()[0]
	assert.Equal(t, money.Cents(1350), burger.UnitTotal())
	assert.Equal(t, money.Cents(2700), burger.LineTotal())
}

func TestEqualSplit(t *testing.T) {
	t.Run("remainder goes to the last person", func(t *testing.T) {
		c := New(nil, 10000, 800, 0)
		r := c.Calculate(EqualSplit{NumberOfPeople: 3})

		require.True(t, r.Valid, r.Error)
		require.Len(t, r.Participants, 3)
		assert.Equal(t, []money.Cents{3600, 3600, 3600}, totals(r))
		assert.Equal(t, []money.Cents{3333, 3333, 3334}, amounts(r))
		assert.Equal(t, money.Cents(267), r.Participants[0].Tax)
		assert.Equal(t, money.Cents(266), r.Participants[2].Tax)
		assert.Equal(t, money.Cents(10800), r.GrandTotal())
		assert.Equal(t, money.Cents(800), r.TotalTax)
		assert.Equal(t, "person-1", r.Participants[0].PersonID)
	})

	t.Run("uneven total", func(t *testing.T) {
		r := New(nil, 10000, 0, 0).Calculate(EqualSplit{NumberOfPeople: 3})
		require.True(t, r.Valid, r.Error)
		assert.Equal(t, []money.Cents{3333, 3333, 3334}, totals(r))
	})

	t.Run("round to dollar", func(t *testing.T) {
		r := New(nil, 10050, 0, 0).Calculate(EqualSplit{NumberOfPeople: 3, RoundTo: money.UnitDollar})
		require.True(t, r.Valid, r.Error)
		assert.Equal(t, []money.Cents{3400, 3400, 3250}, totals(r))
	})

	t.Run("round to dollar never leaves the last seat negative", func(t *testing.T) {
		r := New(nil, 5000, 0, 0).Calculate(EqualSplit{NumberOfPeople: 20, RoundTo: money.UnitDollar})
		require.True(t, r.Valid, r.Error)
		require.Len(t, r.Participants, 20)
		for _, p := range r.Participants[:19] {
			assert.Equal(t, money.Cents(200), p.Total())
		}
		assert.Equal(t, money.Cents(1200), r.Participants[19].Total())
		assert.Equal(t, money.Cents(5000), r.GrandTotal())
	})

	t.Run("round to dollar on a bill under a dollar a head", func(t *testing.T) {
		r := New(nil, 10, 140, 0).Calculate(EqualSplit{NumberOfPeople: 3, RoundTo: money.UnitDollar})
		require.True(t, r.Valid, r.Error)
		assert.Equal(t, []money.Cents{0, 0, 150}, totals(r))
		assert.Equal(t, []money.Cents{0, 0, 10}, amounts(r))
		assert.Equal(t, money.Cents(140), r.TotalTax)
		for _, p := range r.Participants {
			assert.GreaterOrEqual(t, int64(p.Amount), int64(0))
		}
	})

	t.Run("tax and tip left on the bill", func(t *testing.T) {
		r := New(nil, 10000, 800, 1500).Calculate(EqualSplit{
			Options:        Options{ExcludeTaxTips: true},
			NumberOfPeople: 3,
		})
		require.True(t, r.Valid, r.Error)
		assert.Equal(t, []money.Cents{3333, 3333, 3334}, totals(r))
		assert.Zero(t, r.TotalTax)
		assert.Zero(t, r.TotalTip)
		assert.Equal(t, money.Cents(10000), r.GrandTotal())
	})

	t.Run("names label seats", func(t *testing.T) {
		r := New(nil, 1000, 0, 0).Calculate(EqualSplit{NumberOfPeople: 2, Names: []string{"Ana"}})
		require.True(t, r.Valid, r.Error)
		assert.Equal(t, "Ana", r.Participants[0].PersonName)
		assert.Equal(t, "Person 2", r.Participants[1].PersonName)
	})

	t.Run("single person pays everything", func(t *testing.T) {
		r := New(nil, 10000, 800, 200).Calculate(EqualSplit{NumberOfPeople: 1})
		require.True(t, r.Valid, r.Error)
		require.Len(t, r.Participants, 1)
		assert.Equal(t, money.Cents(11000), r.Participants[0].Total())
	})

	for _, n := range []int{0, -1, 51} {
		r := New(nil, 10000, 800, 0).Calculate(EqualSplit{NumberOfPeople: n})
		requireInvalid(t, r, ErrInvalidConfig)
	}

	t.Run("unknown rounding unit", func(t *testing.T) {
		r := New(nil, 10000, 0, 0).Calculate(EqualSplit{NumberOfPeople: 2, RoundTo: "nickel"})
		requireInvalid(t, r, ErrInvalidConfig)
	})
}

func TestPercentageSplit(t *testing.T) {
	t.Run("must sum to 100", func(t *testing.T) {
		r := dinnerCalculator().Calculate(PercentageSplit{Shares: []PercentageShare{
			{PersonID: "p1", Percentage: decimal.NewFromInt(60)},
			{PersonID: "p2", Percentage: decimal.NewFromInt(30)},
		}})
		requireInvalid(t, r, ErrPercentageTotal)
		assert.Contains(t, r.Error, "percentages")
	})

	t.Run("tolerates a hundredth of a percent", func(t *testing.T) {
		r := New(nil, 10000, 0, 0).Calculate(PercentageSplit{Shares: []PercentageShare{
			{PersonID: "p1", Percentage: decimal.RequireFromString("33.33")},
			{PersonID: "p2", Percentage: decimal.RequireFromString("33.33")},
			{PersonID: "p3", Percentage: decimal.RequireFromString("33.33")},
		}})
		require.True(t, r.Valid, r.Error)
		assert.Equal(t, money.Cents(10000), r.GrandTotal())
	})

	t.Run("components allocated separately", func(t *testing.T) {
		r := dinnerCalculator().Calculate(PercentageSplit{Shares: []PercentageShare{
			{PersonID: "p1", PersonName: "Ana", Percentage: decimal.NewFromInt(50)},
			{PersonID: "p2", Percentage: decimal.NewFromInt(50)},
		}})
		require.True(t, r.Valid, r.Error)
		assert.Equal(t, []money.Cents{2025, 2025}, amounts(r))
		assert.Equal(t, money.Cents(162), r.Participants[0].Tax)
		assert.Equal(t, money.Cents(300), r.Participants[1].Tip)
		assert.Equal(t, "p2", r.Participants[1].PersonName)
		assert.Equal(t, money.Cents(4974), r.GrandTotal())
	})

	t.Run("out of range", func(t *testing.T) {
		r := dinnerCalculator().Calculate(PercentageSplit{Shares: []PercentageShare{
			{PersonID: "p1", Percentage: decimal.NewFromInt(120)},
			{PersonID: "p2", Percentage: decimal.NewFromInt(-20)},
		}})
		requireInvalid(t, r, ErrPercentageRange)
	})

	t.Run("duplicate person", func(t *testing.T) {
		r := dinnerCalculator().Calculate(PercentageSplit{Shares: []PercentageShare{
			{PersonID: "p1", Percentage: decimal.NewFromInt(50)},
			{PersonID: "p1", Percentage: decimal.NewFromInt(50)},
		}})
		requireInvalid(t, r, ErrDuplicateParticipant)
	})
}

func TestCustomAmountSplit(t *testing.T) {
	t.Run("mismatch is rejected", func(t *testing.T) {
		r := New(nil, 5000, 400, 0).Calculate(CustomAmountSplit{Amounts: []CustomAmountEntry{
			{PersonName: "Ana", Amount: 3000},
			{PersonName: "Ben", Amount: 2300},
		}})
		requireInvalid(t, r, ErrAmountMismatch)
		assert.Contains(t, r.Error, "53.00")
		assert.Contains(t, r.Error, "54.00")
	})

	t.Run("tax carved out of declared amounts", func(t *testing.T) {
		r := New(nil, 5000, 400, 0).Calculate(CustomAmountSplit{Amounts: []CustomAmountEntry{
			{PersonName: "Ana", Amount: 2700},
			{PersonName: "Ben", Amount: 2700},
		}})
		require.True(t, r.Valid, r.Error)
		assert.Equal(t, []money.Cents{2500, 2500}, amounts(r))
		assert.Equal(t, []money.Cents{2700, 2700}, totals(r))
		assert.Equal(t, money.Cents(400), r.TotalTax)
	})

	t.Run("amounts cover the subtotal only", func(t *testing.T) {
		r := New(nil, 5000, 400, 0).Calculate(CustomAmountSplit{
			Options: Options{ExcludeTaxTips: true},
			Amounts: []CustomAmountEntry{
				{PersonName: "Ana", Amount: 1000},
				{PersonName: "Ben", Amount: 4000},
			},
		})
		require.True(t, r.Valid, r.Error)
		assert.Equal(t, []money.Cents{1000, 4000}, amounts(r))
		assert.Zero(t, r.TotalTax)
	})

	t.Run("range", func(t *testing.T) {
		r := New(nil, 1000001, 0, 0).Calculate(CustomAmountSplit{Amounts: []CustomAmountEntry{
			{PersonName: "Ana", Amount: 1000001},
		}})
		requireInvalid(t, r, ErrAmountRange)
	})

	t.Run("blank name", func(t *testing.T) {
		r := New(nil, 100, 0, 0).Calculate(CustomAmountSplit{Amounts: []CustomAmountEntry{{Amount: 100}}})
		requireInvalid(t, r, ErrInvalidConfig)
	})

	t.Run("empty", func(t *testing.T) {
		r := New(nil, 100, 0, 0).Calculate(CustomAmountSplit{})
		requireInvalid(t, r, ErrNoParticipants)
	})
}

func TestByItemSplit(t *testing.T) {
	t.Run("items with proportional tax and tip", func(t *testing.T) {
		r := dinnerCalculator().Calculate(ByItemSplit{Assignments: []ItemAssignment{
			{ItemID: "burger", PersonID: "alice", PersonName: "Alice", Quantity: 1},
			{ItemID: "burger", PersonID: "bob", Quantity: 1},
			{ItemID: "fries", PersonID: "alice"},
			{ItemID: "soda", PersonID: "bob", PersonName: "Bob"},
		}})
		require.True(t, r.Valid, r.Error)
		require.Len(t, r.Participants, 2)

		alice, bob := r.Participants[0], r.Participants[1]
		assert.Equal(t, "Alice", alice.PersonName)
		assert.Equal(t, "Bob", bob.PersonName)
		assert.Equal(t, money.Cents(1800), alice.Amount)
		assert.Equal(t, money.Cents(2250), bob.Amount)
		assert.Equal(t, money.Cents(144), alice.Tax)
		assert.Equal(t, money.Cents(180), bob.Tax)
		assert.Equal(t, money.Cents(267), alice.Tip)
		assert.Equal(t, money.Cents(333), bob.Tip)
		assert.Equal(t, money.Cents(4974), r.GrandTotal())

		require.Len(t, alice.Items, 2)
		assert.Equal(t, ItemShare{ItemID: "burger", Name: "Burger", Quantity: 1, Amount: 1350}, alice.Items[0])
		assert.Equal(t, ItemShare{ItemID: "soda", Name: "Soda", Quantity: 3, Amount: 900}, bob.Items[1])
	})

	t.Run("over-assignment is rejected", func(t *testing.T) {
		r := dinnerCalculator().Calculate(ByItemSplit{Assignments: []ItemAssignment{
			{ItemID: "burger", PersonID: "alice", Quantity: 3},
		}})
		requireInvalid(t, r, ErrOverAssigned)
		assert.Contains(t, r.Error, "Burger")
	})

	t.Run("cumulative over-assignment is rejected", func(t *testing.T) {
		r := dinnerCalculator().Calculate(ByItemSplit{Assignments: []ItemAssignment{
			{ItemID: "soda", PersonID: "alice", Quantity: 2},
			{ItemID: "soda", PersonID: "bob", Quantity: 2},
		}})
		requireInvalid(t, r, ErrOverAssigned)
	})

	t.Run("leftover items are rejected", func(t *testing.T) {
		r := dinnerCalculator().Calculate(ByItemSplit{Assignments: []ItemAssignment{
			{ItemID: "burger", PersonID: "alice"},
		}})
		requireInvalid(t, r, ErrUnassignedItems)
		assert.Contains(t, r.Error, "not all items assigned")
	})

	t.Run("unknown item", func(t *testing.T) {
		r := dinnerCalculator().Calculate(ByItemSplit{Assignments: []ItemAssignment{
			{ItemID: "lobster", PersonID: "alice"},
		}})
		requireInvalid(t, r, ErrUnknownItem)
		assert.Contains(t, r.Error, "lobster")
	})

	t.Run("negative quantity", func(t *testing.T) {
		r := dinnerCalculator().Calculate(ByItemSplit{Assignments: []ItemAssignment{
			{ItemID: "soda", PersonID: "alice", Quantity: -1},
		}})
		requireInvalid(t, r, ErrInvalidQuantity)
	})

	t.Run("missing person", func(t *testing.T) {
		r := dinnerCalculator().Calculate(ByItemSplit{Assignments: []ItemAssignment{{ItemID: "soda"}}})
		requireInvalid(t, r, ErrInvalidConfig)
	})
}

func TestByPersonSplit(t *testing.T) {
	bills := func() []PersonBill {
		return []PersonBill{
			{ID: "b1", PersonIDs: []string{"alice", "bob"}, ItemQuantities: map[string]int{"burger": 2}},
			{ID: "b2", Name: "Carol", PersonIDs: []string{"carol"}, ItemQuantities: map[string]int{"fries": 1, "soda": 3}},
		}
	}

	t.Run("bills from items", func(t *testing.T) {
		r := dinnerCalculator().Calculate(ByPersonSplit{Bills: bills()})
		require.True(t, r.Valid, r.Error)
		require.Len(t, r.Participants, 2)

		b1, b2 := r.Participants[0], r.Participants[1]
		assert.Equal(t, "alice, bob", b1.PersonName)
		assert.Equal(t, []string{"alice", "bob"}, b1.MemberIDs)
		assert.Equal(t, money.Cents(2700), b1.Amount)
		assert.Equal(t, money.Cents(1350), b2.Amount)
		assert.Equal(t, money.Cents(216), b1.Tax)
		assert.Equal(t, money.Cents(108), b2.Tax)
		assert.Equal(t, money.Cents(400), b1.Tip)
		assert.Equal(t, money.Cents(200), b2.Tip)
		require.Len(t, b2.Items, 2)
		assert.Equal(t, "fries", b2.Items[0].ItemID)
		assert.Equal(t, "soda", b2.Items[1].ItemID)
	})

	t.Run("custom amount override", func(t *testing.T) {
		bs := bills()
		a, b := money.Cents(2000), money.Cents(2050)
		bs[0].CustomAmount = &a
		bs[1].CustomAmount = &b
		r := dinnerCalculator().Calculate(ByPersonSplit{Bills: bs})
		require.True(t, r.Valid, r.Error)
		assert.Equal(t, []money.Cents{2000, 2050}, amounts(r))
		assert.Equal(t, money.Cents(4974), r.GrandTotal())
	})

	t.Run("bills must cover the subtotal", func(t *testing.T) {
		bs := bills()
		bs[1].ItemQuantities = map[string]int{"fries": 1}
		r := dinnerCalculator().Calculate(ByPersonSplit{Bills: bs})
		requireInvalid(t, r, ErrAmountMismatch)
	})

	t.Run("person on two bills", func(t *testing.T) {
		bs := bills()
		bs[1].PersonIDs = []string{"carol", "alice"}
		r := dinnerCalculator().Calculate(ByPersonSplit{Bills: bs})
		requireInvalid(t, r, ErrDuplicateParticipant)
	})

	t.Run("item over-assigned across bills", func(t *testing.T) {
		bs := bills()
		bs[1].ItemQuantities["burger"] = 1
		r := dinnerCalculator().Calculate(ByPersonSplit{Bills: bs})
		requireInvalid(t, r, ErrOverAssigned)
	})

	t.Run("bill without people", func(t *testing.T) {
		bs := bills()
		bs[0].PersonIDs = nil
		r := dinnerCalculator().Calculate(ByPersonSplit{Bills: bs})
		requireInvalid(t, r, ErrNoParticipants)
	})
}

func TestSharedItemsSplit(t *testing.T) {
	pizza := func(price money.Cents) *Calculator {
		return New([]LineItem{{ID: "pizza", MenuItemName: "Pizza", UnitPrice: price, Quantity: 1}}, price, 0, 0)
	}
	everyone := []string{"a", "b", "c"}

	t.Run("divisible", func(t *testing.T) {
		r := pizza(900).Calculate(SharedItemsSplit{SharedItems: []SharedItem{{ItemID: "pizza", PersonIDs: everyone}}})
		require.True(t, r.Valid, r.Error)
		assert.Equal(t, []money.Cents{300, 300, 300}, amounts(r))
		assert.InDelta(t, 1.0/3, r.Participants[0].Items[0].Quantity, 1e-9)
	})

	t.Run("indivisible", func(t *testing.T) {
		r := pizza(1000).Calculate(SharedItemsSplit{SharedItems: []SharedItem{{ItemID: "pizza", PersonIDs: everyone}}})
		require.True(t, r.Valid, r.Error)
		assert.Equal(t, []money.Cents{333, 333, 334}, amounts(r))
		assert.Equal(t, money.Cents(1000), r.TotalAmount)
	})

	t.Run("shared and individual", func(t *testing.T) {
		r := dinnerCalculator().Calculate(SharedItemsSplit{
			SharedItems: []SharedItem{{ItemID: "burger", PersonIDs: []string{"alice", "bob"}}},
			IndividualItems: []IndividualItem{
				{ItemID: "fries", PersonID: "alice"},
				{ItemID: "soda", PersonID: "carol"},
			},
			Names: map[string]string{"carol": "Carol"},
		})
		require.True(t, r.Valid, r.Error)
		assert.Equal(t, []money.Cents{1800, 1350, 900}, amounts(r))
		assert.Equal(t, "Carol", r.Participants[2].PersonName)
		assert.Equal(t, money.Cents(4974), r.GrandTotal())
		assert.Equal(t, 1.0, r.Participants[1].Items[0].Quantity)
	})

	t.Run("not all items assigned", func(t *testing.T) {
		r := dinnerCalculator().Calculate(SharedItemsSplit{
			SharedItems: []SharedItem{{ItemID: "burger", PersonIDs: []string{"alice", "bob"}}},
		})
		requireInvalid(t, r, ErrUnassignedItems)
	})

	t.Run("shared with nobody", func(t *testing.T) {
		r := pizza(900).Calculate(SharedItemsSplit{SharedItems: []SharedItem{{ItemID: "pizza"}}})
		requireInvalid(t, r, ErrNoParticipants)
	})
}

func TestCalculatorContract(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		c := dinnerCalculator()
		configs := []Config{
			EqualSplit{NumberOfPeople: 4},
			ByItemSplit{Assignments: []ItemAssignment{
				{ItemID: "burger", PersonID: "a"}, {ItemID: "fries", PersonID: "b"}, {ItemID: "soda", PersonID: "c"},
			}},
			ByPersonSplit{Bills: []PersonBill{{ID: "x", PersonIDs: []string{"a"}, ItemQuantities: map[string]int{"soda": 9, "burger": 1}}}},
			PercentageSplit{Shares: []PercentageShare{{PersonID: "a", Percentage: decimal.NewFromInt(100)}}},
			CustomAmountSplit{Amounts: []CustomAmountEntry{{PersonName: "a", Amount: 4974}}},
			SharedItemsSplit{SharedItems: []SharedItem{{ItemID: "burger", PersonIDs: []string{"a", "b", "c"}}}},
		}
		for _, cfg := range configs {
			assert.Equal(t, c.Calculate(cfg), c.Calculate(cfg), "method %s", cfg.Method())
		}
	})

	t.Run("restricted method set", func(t *testing.T) {
		c := dinnerCalculator(WithMethods(Simplified...))
		r := c.Calculate(ByItemSplit{Assignments: []ItemAssignment{{ItemID: "burger", PersonID: "a"}}})
		requireInvalid(t, r, ErrUnsupportedMethod)

		r = c.Calculate(EqualSplit{NumberOfPeople: 2})
		assert.True(t, r.Valid, r.Error)
	})

	t.Run("negative tax", func(t *testing.T) {
		r := New(nil, 1000, -1, 0).Calculate(EqualSplit{NumberOfPeople: 2})
		requireInvalid(t, r, ErrInvalidOrder)
	})

	t.Run("duplicate line ids", func(t *testing.T) {
		items := []LineItem{{ID: "x", UnitPrice: 100, Quantity: 1}, {ID: "x", UnitPrice: 100, Quantity: 1}}
		r := New(items, 200, 0, 0).Calculate(EqualSplit{NumberOfPeople: 2})
		requireInvalid(t, r, ErrInvalidOrder)
	})

	t.Run("nil config", func(t *testing.T) {
		r := dinnerCalculator().Calculate(nil)
		requireInvalid(t, r, ErrInvalidConfig)
	})

	t.Run("pointer configs are rejected", func(t *testing.T) {
		var typedNil *EqualSplit
		for _, cfg := range []Config{typedNil, &EqualSplit{NumberOfPeople: 2}, (*SharedItemsSplit)(nil)} {
			var r Result
			require.NotPanics(t, func() { r = dinnerCalculator().Calculate(cfg) })
			requireInvalid(t, r, ErrUnsupportedMethod)
			assert.Empty(t, r.Method)
		}
	})

	t.Run("input items are copied", func(t *testing.T) {
		items := dinner()
		c := New(items, 4050, 0, 0)
		items[0].UnitPrice = 0
		r := c.Calculate(ByItemSplit{Assignments: []ItemAssignment{
			{ItemID: "burger", PersonID: "a"}, {ItemID: "fries", PersonID: "a"}, {ItemID: "soda", PersonID: "a"},
		}})
		assert.True(t, r.Valid, r.Error)
	})
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("shared_items")
	require.NoError(t, err)
	assert.Equal(t, SharedItems, m)

	_, err = ParseMethod("by_vibes")
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}
