package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage"
)

// RecordPayments stores the payments of a confirmed split and closes the
// order in the same transaction.
func (s *SQLiteStore) RecordPayments(ctx context.Context, orderID string, payments []models.Payment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE orders SET status = ? WHERE id = ? AND status = ?",
		models.OrderSplit, orderID, models.OrderOpen,
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if n == 0 {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders WHERE id = ?", orderID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check order: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("order %s: %w", orderID, storage.ErrNotFound)
		}
		return fmt.Errorf("order %s: %w", orderID, storage.ErrOrderClosed)
	}

	now := time.Now().Unix()
	for i := range payments {
		p := &payments[i]
		if p.ID == "" {
			p.ID = newID()
		}
		if p.CreatedAt == 0 {
			p.CreatedAt = now
		}
		if p.Status == "" {
			p.Status = models.PaymentPending
		}
		p.OrderID = orderID

		_, err = tx.ExecContext(ctx,
			`INSERT INTO payments (id, order_id, position, person_id, person_name, amount, tax, tip, method, status, created_by, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, orderID, i, p.PersonID, p.PersonName, p.Amount, p.Tax, p.Tip,
			p.Method, p.Status, p.CreatedBy, p.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListPayments returns the payments of an order in split order.
func (s *SQLiteStore) ListPayments(ctx context.Context, orderID string) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, order_id, person_id, person_name, amount, tax, tip, method, status, created_by, created_at
		 FROM payments WHERE order_id = ? ORDER BY position`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.PersonID, &p.PersonName, &p.Amount, &p.Tax, &p.Tip,
			&p.Method, &p.Status, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}
