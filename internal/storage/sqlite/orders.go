package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage"
)

// CreateOrder persists a new order with its items and modifiers.
func (s *SQLiteStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = newID()
	}
	if order.CreatedAt == 0 {
		order.CreatedAt = time.Now().Unix()
	}
	if order.Status == "" {
		order.Status = models.OrderOpen
	}
	if order.Subtotal == 0 {
		order.Subtotal = order.ItemsTotal()
	}
	if order.TableLabel == "" {
		order.TableLabel = fmt.Sprintf("Tab %s", time.Unix(order.CreatedAt, 0).Format("Jan 2 15:04"))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, table_label, subtotal, tax, tip, status, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.TableLabel, order.Subtotal, order.Tax, order.Tip,
		order.Status, order.CreatedBy, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == "" {
			item.ID = newID()
		}

		var notes interface{} = nil
		if item.Notes != "" {
			notes = item.Notes
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (id, order_id, position, menu_item_id, menu_item_name, unit_price, quantity, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, order.ID, i, item.MenuItemID, item.MenuItemName, item.UnitPrice, item.Quantity, notes,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for j, mod := range item.Modifiers {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO item_modifiers (order_id, item_id, position, modifier_id, name, price)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				order.ID, item.ID, j, mod.ID, mod.Name, mod.Price,
			)
			if err != nil {
				return fmt.Errorf("failed to insert modifier: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetOrder retrieves an order by ID, including its items and modifiers.
func (s *SQLiteStore) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order := &models.Order{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, table_label, subtotal, tax, tip, status, created_by, created_at
		 FROM orders WHERE id = ?`,
		orderID,
	).Scan(&order.ID, &order.TableLabel, &order.Subtotal, &order.Tax, &order.Tip,
		&order.Status, &order.CreatedBy, &order.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", orderID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, menu_item_id, menu_item_name, unit_price, quantity, notes
		 FROM order_items WHERE order_id = ? ORDER BY position`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	positions := make(map[string]int)
	for rows.Next() {
		var item models.LineItem
		var notes sql.NullString
		if err := rows.Scan(&item.ID, &item.MenuItemID, &item.MenuItemName,
			&item.UnitPrice, &item.Quantity, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.Notes = notes.String
		positions[item.ID] = len(order.Items)
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	modRows, err := s.db.QueryContext(ctx,
		`SELECT item_id, modifier_id, name, price
		 FROM item_modifiers WHERE order_id = ? ORDER BY item_id, position`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get modifiers: %w", err)
	}
	defer modRows.Close()

	for modRows.Next() {
		var itemID string
		var mod models.Modifier
		if err := modRows.Scan(&itemID, &mod.ID, &mod.Name, &mod.Price); err != nil {
			return nil, fmt.Errorf("failed to scan modifier: %w", err)
		}
		if i, ok := positions[itemID]; ok {
			order.Items[i].Modifiers = append(order.Items[i].Modifiers, mod)
		}
	}
	if err := modRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate modifiers: %w", err)
	}

	return order, nil
}
