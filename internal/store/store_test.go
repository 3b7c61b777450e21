package store_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnwards/retail/internal/domain"
	"github.com/johnwards/retail/internal/seed"
	"github.com/johnwards/retail/internal/store"
	"github.com/johnwards/retail/internal/testhelpers"
)

// decimalCmp compares decimals by value so 1000 and 1000.00 are equal.
var decimalCmp = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestReadsReturnSeededRows(t *testing.T) {
	s := store.New(testhelpers.NewSeededDB(t))
	ctx := context.Background()
	want := seed.Fixed()

	customers, err := s.Customers(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want.Customers, customers); diff != "" {
		t.Errorf("customers mismatch (-want +got):\n%s", diff)
	}

	products, err := s.Products(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want.Products, products, decimalCmp); diff != "" {
		t.Errorf("products mismatch (-want +got):\n%s", diff)
	}

	orders, err := s.Orders(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want.Orders, orders); diff != "" {
		t.Errorf("orders mismatch (-want +got):\n%s", diff)
	}

	items, err := s.OrderItems(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want.OrderItems, items); diff != "" {
		t.Errorf("order items mismatch (-want +got):\n%s", diff)
	}
}

func TestCounts(t *testing.T) {
	s := store.New(testhelpers.NewSeededDB(t))

	counts, err := s.Counts(context.Background())
	require.NoError(t, err)
	if diff := cmp.Diff(seed.Fixed().Counts(), counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}

func TestCountsEmptySchema(t *testing.T) {
	s := store.New(testhelpers.NewSchemaDB(t))

	counts, err := s.Counts(context.Background())
	require.NoError(t, err)
	for table, n := range counts {
		assert.Zero(t, n, table)
	}
}

func TestDanglingReferencesNoneAfterSeed(t *testing.T) {
	s := store.New(testhelpers.NewSeededDB(t))

	dangling, err := s.DanglingReferences(context.Background())
	require.NoError(t, err)
	assert.Empty(t, dangling)
}

func TestDanglingReferencesDetected(t *testing.T) {
	db := testhelpers.NewSeededDB(t)

	// Bypass enforcement to plant orphans.
	_, err := db.Exec("PRAGMA foreign_keys=OFF")
	require.NoError(t, err, "disable foreign keys")
	_, err = db.Exec("INSERT INTO orders (order_id, customer_id, order_date) VALUES (9, 99, '2023-02-01')")
	require.NoError(t, err, "insert orphan order")
	_, err = db.Exec("INSERT INTO order_items (order_item_id, order_id, product_id, quantity) VALUES (9, 1, 77, 1)")
	require.NoError(t, err, "insert orphan item")

	dangling, err := store.New(db).DanglingReferences(context.Background())
	require.NoError(t, err)

	want := []store.DanglingRef{
		{Table: "orders", ID: 9, Column: "customer_id", Ref: 99},
		{Table: "order_items", ID: 9, Column: "product_id", Ref: 77},
	}
	if diff := cmp.Diff(want, dangling); diff != "" {
		t.Errorf("dangling mismatch (-want +got):\n%s", diff)
	}
	require.NotEmpty(t, dangling)
	assert.Equal(t, "orders 9: customer_id 99 does not exist", dangling[0].String())
}

func TestCustomerDatesAreUTCMidnight(t *testing.T) {
	s := store.New(testhelpers.NewSeededDB(t))

	customers, err := s.Customers(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, customers)
	dob := customers[0].DateOfBirth
	assert.True(t, dob.Equal(domain.Day(1985, 1, 15)), "date_of_birth = %v", dob)
}
