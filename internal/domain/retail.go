package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a person who places orders.
type Customer struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	DateOfBirth time.Time `json:"dateOfBirth"`
}

// Product is a sellable item. Price is never negative.
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Order belongs to exactly one customer.
type Order struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customerId"`
	OrderDate  time.Time `json:"orderDate"`
}

// OrderItem is one product line of an order. Quantity is positive.
type OrderItem struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"orderId"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Day returns midnight UTC of the given calendar date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
