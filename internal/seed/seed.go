package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/johnwards/retail/internal/database"
	"github.com/johnwards/retail/internal/errs"
)

// clearOrder lists the retail tables in foreign-key-safe deletion order.
var clearOrder = []string{
	database.TableOrderItems,
	database.TableOrders,
	database.TableProducts,
	database.TableCustomers,
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ResetAndSeed empties the retail tables and loads the fixed dataset. Both
// phases share one transaction: on failure nothing changes and the error is
// a seed integrity error.
func ResetAndSeed(ctx context.Context, db *database.DB) error {
	return ResetAndSeedWith(ctx, db, Fixed())
}

// ResetAndSeedWith is ResetAndSeed with a caller-supplied dataset.
func ResetAndSeedWith(ctx context.Context, db *database.DB, ds Dataset) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errs.SeedIntegrity(fmt.Errorf("begin seed: %w", err))
	}

	if err := Clear(ctx, tx); err != nil {
		_ = tx.Rollback()
		return errs.SeedIntegrity(err)
	}

	if err := Load(ctx, tx, db.Dialect, ds); err != nil {
		_ = tx.Rollback()
		return errs.SeedIntegrity(err)
	}

	if err := tx.Commit(); err != nil {
		return errs.SeedIntegrity(fmt.Errorf("commit seed: %w", err))
	}
	return nil
}

// Clear deletes every row from the retail tables, children first.
func Clear(ctx context.Context, ex execer) error {
	for _, table := range clearOrder {
		if _, err := ex.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil { //nolint:gosec // table names are hardcoded constants
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Load inserts ds in dependency order: customers and products, then orders,
// then order items.
func Load(ctx context.Context, ex execer, d database.Dialect, ds Dataset) error {
	if err := Customers(ctx, ex, d, ds); err != nil {
		return fmt.Errorf("seed customers: %w", err)
	}
	if err := Products(ctx, ex, d, ds); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	if err := Orders(ctx, ex, d, ds); err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}
	if err := OrderItems(ctx, ex, d, ds); err != nil {
		return fmt.Errorf("seed order items: %w", err)
	}
	return nil
}

// Customers inserts ds.Customers.
func Customers(ctx context.Context, ex execer, d database.Dialect, ds Dataset) error {
	q := d.Rebind(`INSERT INTO customers (customer_id, first_name, last_name, email, date_of_birth)
		VALUES (?, ?, ?, ?, ?)`)
	for _, c := range ds.Customers {
		if _, err := ex.ExecContext(ctx, q,
			c.ID, c.FirstName, c.LastName, c.Email, database.FormatDate(c.DateOfBirth),
		); err != nil {
			return fmt.Errorf("insert customer %d: %w", c.ID, err)
		}
	}
	return nil
}

// Products inserts ds.Products.
func Products(ctx context.Context, ex execer, d database.Dialect, ds Dataset) error {
	q := d.Rebind(`INSERT INTO products (product_id, product_name, price) VALUES (?, ?, ?)`)
	for _, p := range ds.Products {
		if _, err := ex.ExecContext(ctx, q, p.ID, p.Name, p.Price.StringFixed(2)); err != nil {
			return fmt.Errorf("insert product %d: %w", p.ID, err)
		}
	}
	return nil
}

// Orders inserts ds.Orders. Customers must already exist.
func Orders(ctx context.Context, ex execer, d database.Dialect, ds Dataset) error {
	q := d.Rebind(`INSERT INTO orders (order_id, customer_id, order_date) VALUES (?, ?, ?)`)
	for _, o := range ds.Orders {
		if _, err := ex.ExecContext(ctx, q, o.ID, o.CustomerID, database.FormatDate(o.OrderDate)); err != nil {
			return fmt.Errorf("insert order %d: %w", o.ID, err)
		}
	}
	return nil
}

// OrderItems inserts ds.OrderItems. Orders and products must already exist.
func OrderItems(ctx context.Context, ex execer, d database.Dialect, ds Dataset) error {
	q := d.Rebind(`INSERT INTO order_items (order_item_id, order_id, product_id, quantity) VALUES (?, ?, ?, ?)`)
	for _, oi := range ds.OrderItems {
		if _, err := ex.ExecContext(ctx, q, oi.ID, oi.OrderID, oi.ProductID, oi.Quantity); err != nil {
			return fmt.Errorf("insert order item %d: %w", oi.ID, err)
		}
	}
	return nil
}
