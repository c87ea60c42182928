package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tabsplit/internal/middleware"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/rpc"
	"github.com/mmynk/tabsplit/internal/storage"
)

// OrderService implements the Connect OrderService.
type OrderService struct {
	store storage.Store
}

var _ rpc.OrderServiceHandler = (*OrderService)(nil)

// NewOrderService creates a new OrderService with the given storage backend.
func NewOrderService(store storage.Store) *OrderService {
	return &OrderService{store: store}
}

// validateItems checks the lines of a new order.
func validateItems(items []rpc.LineItem) error {
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.MenuItemName) == "" {
			return fmt.Errorf("item %d: name is required", i+1)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("item %q: quantity must be at least 1", item.MenuItemName)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("item %q: price cannot be negative", item.MenuItemName)
		}
		for _, m := range item.Modifiers {
			if m.Price < 0 {
				return fmt.Errorf("item %q: modifier %q price cannot be negative", item.MenuItemName, m.Name)
			}
		}
		if item.ID != "" {
			if seen[item.ID] {
				return fmt.Errorf("duplicate item id %q", item.ID)
			}
			seen[item.ID] = true
		}
	}
	return nil
}

// CreateOrder rings up a new order.
func (s *OrderService) CreateOrder(ctx context.Context, req *connect.Request[rpc.CreateOrderRequest]) (*connect.Response[rpc.CreateOrderResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}

	if len(req.Msg.Items) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("order has no items"))
	}
	if err := validateItems(req.Msg.Items); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if req.Msg.Subtotal < 0 || req.Msg.Tax < 0 || req.Msg.Tip < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("subtotal, tax and tip cannot be negative"))
	}

	order := &models.Order{
		TableLabel: strings.TrimSpace(req.Msg.TableLabel),
		Items:      toModelItems(req.Msg.Items),
		Subtotal:   req.Msg.Subtotal,
		Tax:        req.Msg.Tax,
		Tip:        req.Msg.Tip,
		CreatedBy:  userID,
	}

	// Save to storage (generates IDs and CreatedAt)
	if err := s.store.CreateOrder(ctx, order); err != nil {
		slog.Error("CreateOrder failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Order created",
		"order_id", order.ID,
		"items", len(order.Items),
		"subtotal", order.Subtotal.String(),
		"user_id", userID,
	)
	return connect.NewResponse(&rpc.CreateOrderResponse{Order: toProtoOrder(order)}), nil
}

// GetOrder retrieves an order by ID.
func (s *OrderService) GetOrder(ctx context.Context, req *connect.Request[rpc.GetOrderRequest]) (*connect.Response[rpc.GetOrderResponse], error) {
	order, err := loadOrder(ctx, s.store, req.Msg.OrderID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&rpc.GetOrderResponse{Order: toProtoOrder(order)}), nil
}

// loadOrder fetches an order and maps storage errors to Connect codes.
func loadOrder(ctx context.Context, store storage.Store, orderID string) (*models.Order, error) {
	if orderID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("order_id is required"))
	}
	order, err := store.GetOrder(ctx, orderID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}
	if err != nil {
		slog.Error("GetOrder failed", "order_id", orderID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return order, nil
}
