package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/johnwards/retail/internal/database"
	"github.com/johnwards/retail/internal/domain"
)

// Customers returns every customer ordered by id.
func (s *Store) Customers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT customer_id, first_name, last_name, email, date_of_birth FROM customers ORDER BY customer_id`)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Customer
	for rows.Next() {
		var c domain.Customer
		var dob database.Date
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &dob); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		c.DateOfBirth = dob.Time
		out = append(out, c)
	}
	return out, rows.Err()
}

// Products returns every product ordered by id.
func (s *Store) Products(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT product_id, product_name, price FROM products ORDER BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		var price decimal.Decimal
		if err := rows.Scan(&p.ID, &p.Name, &price); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Price = price
		out = append(out, p)
	}
	return out, rows.Err()
}

// Orders returns every order ordered by id.
func (s *Store) Orders(ctx context.Context) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT order_id, customer_id, order_date FROM orders ORDER BY order_id`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Order
	for rows.Next() {
		var o domain.Order
		var date database.Date
		if err := rows.Scan(&o.ID, &o.CustomerID, &date); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.OrderDate = date.Time
		out = append(out, o)
	}
	return out, rows.Err()
}

// OrderItems returns every order item ordered by id.
func (s *Store) OrderItems(ctx context.Context) ([]domain.OrderItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT order_item_id, order_id, product_id, quantity FROM order_items ORDER BY order_item_id`)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.OrderItem
	for rows.Next() {
		var oi domain.OrderItem
		if err := rows.Scan(&oi.ID, &oi.OrderID, &oi.ProductID, &oi.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out = append(out, oi)
	}
	return out, rows.Err()
}
