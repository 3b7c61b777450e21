package store

import (
	"context"
	"fmt"

	"github.com/johnwards/retail/internal/database"
)

// DanglingRef is a row whose foreign key points at a missing parent.
type DanglingRef struct {
	Table  string `json:"table"`
	ID     int64  `json:"id"`
	Column string `json:"column"`
	Ref    int64  `json:"ref"`
}

func (d DanglingRef) String() string {
	return fmt.Sprintf("%s %d: %s %d does not exist", d.Table, d.ID, d.Column, d.Ref)
}

// reference checks, one per foreign key.
var references = []struct {
	table, idCol, fkCol, parent, parentID string
}{
	{"orders", "order_id", "customer_id", "customers", "customer_id"},
	{"order_items", "order_item_id", "order_id", "orders", "order_id"},
	{"order_items", "order_item_id", "product_id", "products", "product_id"},
}

// Counts returns the row count of every retail table.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, 4)
	for _, table := range database.Tables() {
		var n int
		if err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil { //nolint:gosec // table names are hardcoded constants
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

// DanglingReferences lists every foreign key that does not resolve. An empty
// result means referential integrity holds.
func (s *Store) DanglingReferences(ctx context.Context) ([]DanglingRef, error) {
	var out []DanglingRef
	for _, r := range references {
		q := fmt.Sprintf(`SELECT c.%[2]s, c.%[3]s FROM %[1]s c
			LEFT JOIN %[4]s p ON c.%[3]s = p.%[5]s
			WHERE c.%[3]s IS NOT NULL AND p.%[5]s IS NULL`, r.table, r.idCol, r.fkCol, r.parent, r.parentID) //nolint:gosec // identifiers are hardcoded constants

		found, err := s.dangling(ctx, q, r.table, r.fkCol)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

func (s *Store) dangling(ctx context.Context, q, table, column string) ([]DanglingRef, error) {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("check %s.%s: %w", table, column, err)
	}
	defer func() { _ = rows.Close() }()

	var out []DanglingRef
	for rows.Next() {
		d := DanglingRef{Table: table, Column: column}
		if err := rows.Scan(&d.ID, &d.Ref); err != nil {
			return nil, fmt.Errorf("scan %s.%s: %w", table, column, err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
