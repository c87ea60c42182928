// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tabsplit/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrOrderClosed is returned when recording payments against an order
	// that already has a confirmed split.
	ErrOrderClosed = errors.New("order already split")
)

// Store defines the interface for order, payment and staff persistence.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	// CreateOrder persists a new order with its items.
	// Missing order and item IDs are generated by the store.
	CreateOrder(ctx context.Context, order *models.Order) error

	// GetOrder retrieves an order by its ID, items and modifiers included.
	// Returns an error wrapping ErrNotFound if the order does not exist.
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)

	// RecordPayments stores the payments of a confirmed split and marks the
	// order as split, atomically. Fails if the order is not open.
	RecordPayments(ctx context.Context, orderID string, payments []models.Payment) error

	// ListPayments returns the payments recorded for an order.
	ListPayments(ctx context.Context, orderID string) ([]models.Payment, error)

	// CreateUser, GetUserByEmail and GetUserByID back staff authentication.
	// The lookups return nil, nil when no user matches.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
