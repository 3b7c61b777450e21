package report

import (
	"github.com/shopspring/decimal"
)

// Report is a named entry of the catalog.
type Report struct {
	Key   string
	Name  string
	Query Query
}

// Params are the inputs of the parameterised reports.
type Params struct {
	// OrderID selects the order listed by the order-products report.
	OrderID int64
	// Threshold is the exclusive lower bound of the high-spenders report.
	Threshold decimal.Decimal
}

// DefaultParams returns order 1 and a threshold of 1000.
func DefaultParams() Params {
	return Params{OrderID: 1, Threshold: decimal.NewFromInt(1000)}
}

// Catalog keys, in output order.
const (
	KeyCustomers      = "customers"
	KeyOrdersJan2023  = "orders-jan-2023"
	KeyOrderDetails   = "order-details"
	KeyOrderProducts  = "order-products"
	KeyCustomerTotals = "customer-totals"
	KeyPopularProduct = "popular-product"
	KeyMonthly2023    = "monthly-2023"
	KeyHighSpenders   = "high-spenders"
)

const lineTotal = "SUM(p.price * oi.quantity)"

var spendJoins = []Join{
	{Table: "orders o", On: "c.customer_id = o.customer_id"},
	{Table: "order_items oi", On: "o.order_id = oi.order_id"},
	{Table: "products p", On: "oi.product_id = p.product_id"},
}

var spendColumns = []Column{
	{Name: "customer_id", Expr: "c.customer_id", Kind: KindInt},
	{Name: "first_name", Expr: "c.first_name", Kind: KindText},
	{Name: "last_name", Expr: "c.last_name", Kind: KindText},
	{Name: "total_spent", Expr: lineTotal, Kind: KindDecimal},
}

var spendGroupBy = []string{"c.customer_id", "c.first_name", "c.last_name"}

// Catalog returns the fixed report set in its stable output order.
func Catalog(p Params) []Report {
	return []Report{
		{
			Key:  KeyCustomers,
			Name: "List all customers",
			Query: Query{
				Columns: []Column{
					{Name: "customer_id", Expr: "c.customer_id", Kind: KindInt},
					{Name: "first_name", Expr: "c.first_name", Kind: KindText},
					{Name: "last_name", Expr: "c.last_name", Kind: KindText},
					{Name: "email", Expr: "c.email", Kind: KindText},
					{Name: "date_of_birth", Expr: "c.date_of_birth", Kind: KindDate},
				},
				From:    "customers c",
				OrderBy: []string{"c.customer_id"},
			},
		},
		{
			Key:  KeyOrdersJan2023,
			Name: "Orders in January 2023",
			Query: Query{
				Columns: []Column{
					{Name: "order_id", Expr: "o.order_id", Kind: KindInt},
					{Name: "customer_id", Expr: "o.customer_id", Kind: KindInt},
					{Name: "order_date", Expr: "o.order_date", Kind: KindDate},
				},
				From:    "orders o",
				Where:   "o.order_date BETWEEN ? AND ?",
				Args:    []any{"2023-01-01", "2023-01-31"},
				OrderBy: []string{"o.order_id"},
			},
		},
		{
			Key:  KeyOrderDetails,
			Name: "Order details with customer",
			Query: Query{
				Columns: []Column{
					{Name: "order_id", Expr: "o.order_id", Kind: KindInt},
					{Name: "first_name", Expr: "c.first_name", Kind: KindText},
					{Name: "last_name", Expr: "c.last_name", Kind: KindText},
					{Name: "email", Expr: "c.email", Kind: KindText},
					{Name: "order_date", Expr: "o.order_date", Kind: KindDate},
				},
				From:    "orders o",
				Joins:   []Join{{Table: "customers c", On: "o.customer_id = c.customer_id"}},
				OrderBy: []string{"o.order_id"},
			},
		},
		{
			Key:  KeyOrderProducts,
			Name: "Products in a given order",
			Query: Query{
				Columns: []Column{
					{Name: "product_name", Expr: "p.product_name", Kind: KindText},
					{Name: "quantity", Expr: "oi.quantity", Kind: KindInt},
				},
				From:    "order_items oi",
				Joins:   []Join{{Table: "products p", On: "oi.product_id = p.product_id"}},
				Where:   "oi.order_id = ?",
				Args:    []any{p.OrderID},
				OrderBy: []string{"oi.order_item_id"},
			},
		},
		{
			Key:  KeyCustomerTotals,
			Name: "Total spent per customer",
			Query: Query{
				Columns: spendColumns,
				From:    "customers c",
				Joins:   spendJoins,
				GroupBy: spendGroupBy,
				OrderBy: []string{"c.customer_id"},
			},
		},
		{
			// Ties are all returned, lowest product id first.
			Key:  KeyPopularProduct,
			Name: "Most popular product",
			Query: Query{
				Columns: []Column{
					{Name: "product_id", Expr: "p.product_id", Kind: KindInt},
					{Name: "product_name", Expr: "p.product_name", Kind: KindText},
					{Name: "total_quantity", Expr: "SUM(oi.quantity)", Kind: KindInt},
				},
				From:    "order_items oi",
				Joins:   []Join{{Table: "products p", On: "oi.product_id = p.product_id"}},
				GroupBy: []string{"p.product_id", "p.product_name"},
				Having: "SUM(oi.quantity) = (SELECT MAX(t.total) FROM " +
					"(SELECT SUM(quantity) AS total FROM order_items GROUP BY product_id) t)",
				OrderBy: []string{"p.product_id"},
			},
		},
		{
			Key:  KeyMonthly2023,
			Name: "Monthly totals for 2023",
			Query: Query{
				Columns: []Column{
					{Name: "month", MonthOf: "o.order_date", Kind: KindText},
					{Name: "total_orders", Expr: "COUNT(DISTINCT o.order_id)", Kind: KindInt},
					{Name: "total_sales", Expr: lineTotal, Kind: KindDecimal},
				},
				From: "orders o",
				Joins: []Join{
					{Table: "order_items oi", On: "o.order_id = oi.order_id"},
					{Table: "products p", On: "oi.product_id = p.product_id"},
				},
				Where:   "o.order_date BETWEEN ? AND ?",
				Args:    []any{"2023-01-01", "2023-12-31"},
				GroupBy: []string{"month"},
				OrderBy: []string{"month"},
			},
		},
		{
			Key:  KeyHighSpenders,
			Name: "High-spending customers",
			Query: Query{
				Columns: spendColumns,
				From:    "customers c",
				Joins:   spendJoins,
				GroupBy: spendGroupBy,
				Having:  lineTotal + " > CAST(? AS DECIMAL(12, 2))",
				Args:    []any{p.Threshold.String()},
				OrderBy: []string{"total_spent DESC", "c.customer_id"},
			},
		},
	}
}

// Lookup returns the report with the given key from reports.
func Lookup(reports []Report, key string) (Report, bool) {
	for _, r := range reports {
		if r.Key == key {
			return r, true
		}
	}
	return Report{}, false
}
