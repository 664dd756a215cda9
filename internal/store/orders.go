package store

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/moeeznaveed278/myplug/internal/models"
)

// CreateOrder inserts a pending (not yet paid) order with its line items and
// fills in the generated id. The order exists before any payment session
// does, so payment failures leave a harmless orphaned row behind.
func (s *Store) CreateOrder(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO orders (id, is_paid, created_at)
		VALUES (?, 0, CURRENT_TIMESTAMP)
	`, order.ID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		if _, err := tx.Exec(`
			INSERT INTO order_items (order_id, product_id, size, quantity)
			VALUES (?, ?, ?, ?)
		`, order.ID, item.ProductID, item.Size, item.Quantity); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetOrderByID(id string) (*models.Order, error) {
	var o models.Order
	err := s.DB.QueryRow(`
		SELECT id, is_paid, customer_name, customer_email, phone, address, delivery_method, created_at
		FROM orders WHERE id = ?
	`, id).Scan(&o.ID, &o.IsPaid, &o.CustomerName, &o.CustomerEmail, &o.Phone, &o.Address, &o.DeliveryMethod, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrderWithItems loads the order plus its line items and their products,
// as needed for the receipt email and the admin order detail view.
func (s *Store) GetOrderWithItems(id string) (*models.Order, error) {
	o, err := s.GetOrderByID(id)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(`
		SELECT oi.id, oi.order_id, oi.product_id, oi.size, oi.quantity
		FROM order_items oi
		WHERE oi.order_id = ?
		ORDER BY oi.id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Size, &item.Quantity); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range o.Items {
		p, err := s.GetProductByID(o.Items[i].ProductID)
		if err != nil {
			// A product deleted out-of-band shouldn't hide the order
			slog.Warn("Order item references missing product", "order_id", id, "product_id", o.Items[i].ProductID)
			continue
		}
		o.Items[i].Product = p
	}

	return o, nil
}

// PaidDetails carries what the payment provider captured during checkout.
type PaidDetails struct {
	CustomerName   string
	CustomerEmail  string
	Phone          string
	Address        string
	DeliveryMethod string
}

// paidFieldSet is one candidate write for marking an order paid. Candidates
// are tried richest-first; a failure on an optional column degrades to the
// next smaller set rather than blocking the paid flag.
type paidFieldSet struct {
	name string
	set  string
	args func(d PaidDetails) []any
}

// MinimalPaidFields is the guaranteed-safe field set: the last-resort write
// only touches is_paid, phone and address.
const MinimalPaidFields = "phone = ?, address = ?"

var paidFieldSets = []paidFieldSet{
	{
		name: "full",
		set:  "customer_name = ?, customer_email = ?, phone = ?, address = ?, delivery_method = ?",
		args: func(d PaidDetails) []any {
			return []any{d.CustomerName, d.CustomerEmail, d.Phone, d.Address, d.DeliveryMethod}
		},
	},
	{
		name: "reduced",
		set:  "customer_name = ?, customer_email = ?, phone = ?, address = ?",
		args: func(d PaidDetails) []any {
			return []any{d.CustomerName, d.CustomerEmail, d.Phone, d.Address}
		},
	},
	{
		name: "minimal",
		set:  MinimalPaidFields,
		args: func(d PaidDetails) []any {
			return []any{d.Phone, d.Address}
		},
	},
}

// MarkOrderPaid transitions the order to paid exactly once, persisting the
// captured customer details. The WHERE is_paid = 0 guard makes the check
// a single atomic compare-and-set: a retried webhook (or a concurrent
// duplicate delivery) sees zero rows affected and must skip fulfillment.
//
// Returns (true, nil) when this call performed the transition, (false, nil)
// when the order was already paid, and an error only when every candidate
// field set failed to write.
func (s *Store) MarkOrderPaid(id string, d PaidDetails) (bool, error) {
	var lastErr error
	for _, fs := range paidFieldSets {
		args := append(fs.args(d), id)
		res, err := s.DB.Exec(`UPDATE orders SET is_paid = 1, `+fs.set+` WHERE id = ? AND is_paid = 0`, args...)
		if err != nil {
			slog.Error("Paid update failed, degrading to smaller field set", "order_id", id, "field_set", fs.name, "error", err)
			lastErr = err
			continue
		}
		affected, err := res.RowsAffected()
		if err != nil {
			lastErr = err
			continue
		}
		if affected == 0 {
			return false, nil // already paid (or raced by a duplicate delivery)
		}
		if fs.name != "full" {
			slog.Warn("Order marked paid with degraded field set", "order_id", id, "field_set", fs.name)
		}
		return true, nil
	}
	return false, fmt.Errorf("mark order %s paid: %w", id, lastErr)
}

// ListOrders returns orders newest first, for the admin back office.
func (s *Store) ListOrders(limit, offset int) ([]models.Order, error) {
	rows, err := s.DB.Query(`
		SELECT id, is_paid, customer_name, customer_email, phone, address, delivery_method, created_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.IsPaid, &o.CustomerName, &o.CustomerEmail, &o.Phone, &o.Address, &o.DeliveryMethod, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Store) CountOrders() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}

func (s *Store) CountPaidOrders() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM orders WHERE is_paid = 1`).Scan(&count)
	return count, err
}
