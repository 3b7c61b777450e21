package database

// Table names, in creation order. Deletion must run in reverse.
const (
	TableCustomers  = "customers"
	TableProducts   = "products"
	TableOrders     = "orders"
	TableOrderItems = "order_items"
)

// Tables lists the managed tables in creation order.
func Tables() []string {
	return []string{TableCustomers, TableProducts, TableOrders, TableOrderItems}
}

// migrations is an ordered list of SQL migration groups. Each entry is a slice
// of SQL statements that are executed together in a single transaction. The
// version number is the 1-based index into this slice. The DDL is accepted
// as-is by both SQLite and PostgreSQL. Every statement is IF NOT EXISTS, so
// applied groups are re-run to restore objects dropped out of band.
var migrations = [][]string{
	// Migration 1: retail tables
	{
		`CREATE TABLE IF NOT EXISTS customers (
			customer_id INTEGER PRIMARY KEY,
			first_name VARCHAR(50),
			last_name VARCHAR(50),
			email VARCHAR(100),
			date_of_birth DATE
		)`,

		`CREATE TABLE IF NOT EXISTS products (
			product_id INTEGER PRIMARY KEY,
			product_name VARCHAR(100),
			price DECIMAL(10, 2) CHECK (price >= 0)
		)`,

		`CREATE TABLE IF NOT EXISTS orders (
			order_id INTEGER PRIMARY KEY,
			customer_id INTEGER,
			order_date DATE,
			FOREIGN KEY (customer_id) REFERENCES customers(customer_id)
		)`,

		`CREATE TABLE IF NOT EXISTS order_items (
			order_item_id INTEGER PRIMARY KEY,
			order_id INTEGER,
			product_id INTEGER,
			quantity INTEGER CHECK (quantity > 0),
			FOREIGN KEY (order_id) REFERENCES orders(order_id),
			FOREIGN KEY (product_id) REFERENCES products(product_id)
		)`,
	},

	// Migration 2: indexes on foreign key columns
	{
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)`,
	},
}

// tableColumns lists the columns each managed table must expose. A table
// that exists but lacks any of them is incompatible.
var tableColumns = map[string][]string{
	TableCustomers:  {"customer_id", "first_name", "last_name", "email", "date_of_birth"},
	TableProducts:   {"product_id", "product_name", "price"},
	TableOrders:     {"order_id", "customer_id", "order_date"},
	TableOrderItems: {"order_item_id", "order_id", "product_id", "quantity"},
}

// schemaMigrationsDDL is the bookkeeping table, which differs per dialect.
var schemaMigrationsDDL = map[Dialect]string{
	SQLite: `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	Postgres: `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMPTZ DEFAULT now()
	)`,
}
