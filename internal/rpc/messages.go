package rpc

import (
	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/money"
)

// Amounts on the wire are decimal numbers in the currency's major unit
// (12.34), carried as money.Cents in memory.

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt,omitempty"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

type Modifier struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Price money.Cents `json:"price"`
}

type LineItem struct {
	ID           string      `json:"id,omitempty"`
	MenuItemID   string      `json:"menuItemId"`
	MenuItemName string      `json:"menuItemName"`
	UnitPrice    money.Cents `json:"unitPrice"`
	Quantity     int         `json:"quantity"`
	Modifiers    []Modifier  `json:"modifiers,omitempty"`
	Notes        string      `json:"notes,omitempty"`
	LineTotal    money.Cents `json:"lineTotal,omitempty"`
}

type Order struct {
	ID         string      `json:"id"`
	TableLabel string      `json:"tableLabel"`
	Items      []LineItem  `json:"items"`
	Subtotal   money.Cents `json:"subtotal"`
	Tax        money.Cents `json:"tax"`
	Tip        money.Cents `json:"tip"`
	Total      money.Cents `json:"total"`
	Status     string      `json:"status"`
	CreatedBy  string      `json:"createdBy"`
	CreatedAt  int64       `json:"createdAt"`
}

type CreateOrderRequest struct {
	TableLabel string     `json:"tableLabel,omitempty"`
	Items      []LineItem `json:"items"`
	// Subtotal defaults to the sum of line totals when zero.
	Subtotal money.Cents `json:"subtotal,omitempty"`
	Tax      money.Cents `json:"tax"`
	Tip      money.Cents `json:"tip,omitempty"`
}

type CreateOrderResponse struct {
	Order *Order `json:"order"`
}

type GetOrderRequest struct {
	OrderID string `json:"orderId"`
}

type GetOrderResponse struct {
	Order *Order `json:"order"`
}

// PreviewSplitRequest splits a stored order, or an ad-hoc one when OrderID
// is empty and Items, Subtotal, Tax and Tip are given inline.
type PreviewSplitRequest struct {
	OrderID  string      `json:"orderId,omitempty"`
	Items    []LineItem  `json:"items,omitempty"`
	Subtotal money.Cents `json:"subtotal,omitempty"`
	Tax      money.Cents `json:"tax,omitempty"`
	Tip      money.Cents `json:"tip,omitempty"`
	Config   SplitConfig `json:"config"`
	// Simplified limits the strategies to equal and custom_amount.
	Simplified bool `json:"simplified,omitempty"`
}

type PreviewSplitResponse struct {
	Result calculator.Result `json:"result"`
	Cached bool              `json:"cached,omitempty"`
}

type ConfirmSplitRequest struct {
	OrderID string      `json:"orderId"`
	Config  SplitConfig `json:"config"`
}

type ConfirmSplitResponse struct {
	Result   calculator.Result `json:"result"`
	Payments []Payment         `json:"payments"`
}

type Payment struct {
	ID         string      `json:"id"`
	OrderID    string      `json:"orderId"`
	PersonID   string      `json:"personId"`
	PersonName string      `json:"personName"`
	Amount     money.Cents `json:"amount"`
	Tax        money.Cents `json:"tax"`
	Tip        money.Cents `json:"tip"`
	Total      money.Cents `json:"total"`
	Method     string      `json:"method"`
	Status     string      `json:"status"`
	CreatedBy  string      `json:"createdBy"`
	CreatedAt  int64       `json:"createdAt"`
}

type ListPaymentsRequest struct {
	OrderID string `json:"orderId"`
}

type ListPaymentsResponse struct {
	Payments []Payment `json:"payments"`
}
