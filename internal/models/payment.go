package models

import "github.com/mmynk/tabsplit/internal/money"

// PaymentStatus is the collection state of a payment.
type PaymentStatus string

const (
	// PaymentPending payments are waiting at the terminal.
	PaymentPending PaymentStatus = "pending"
)

// Payment represents one participant's share of a confirmed split.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// OrderID is the order this payment settles.
	OrderID string

	// PersonID and PersonName identify the participant in the split.
	PersonID   string
	PersonName string

	// Amount is the pre-tax share; Tax and Tip are the distributed parts.
	Amount money.Cents
	Tax    money.Cents
	Tip    money.Cents

	// Method is the split strategy that produced this payment.
	Method string

	// Status is pending until the terminal reports back.
	Status PaymentStatus

	// CreatedBy is the staff user ID who confirmed the split.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the split was confirmed.
	CreatedAt int64
}

// Total is what the participant is charged.
func (p Payment) Total() money.Cents {
	return p.Amount + p.Tax + p.Tip
}
