package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/johnwards/retail/internal/database"
	"github.com/johnwards/retail/internal/domain"
)

// Dataset is a complete set of rows for the four retail tables.
type Dataset struct {
	Customers  []domain.Customer
	Products   []domain.Product
	Orders     []domain.Order
	OrderItems []domain.OrderItem
}

var defaultCustomers = []domain.Customer{
	{ID: 1, FirstName: "John", LastName: "Doe", Email: "john.doe@example.com", DateOfBirth: domain.Day(1985, time.January, 15)},
	{ID: 2, FirstName: "Jane", LastName: "Smith", Email: "jane.smith@example.com", DateOfBirth: domain.Day(1990, time.June, 20)},
}

var defaultProducts = []domain.Product{
	{ID: 1, Name: "Laptop", Price: decimal.NewFromInt(1000)},
	{ID: 2, Name: "Smartphone", Price: decimal.NewFromInt(600)},
	{ID: 3, Name: "Headphones", Price: decimal.NewFromInt(100)},
}

var defaultOrders = []domain.Order{
	{ID: 1, CustomerID: 1, OrderDate: domain.Day(2023, time.January, 10)},
	{ID: 2, CustomerID: 2, OrderDate: domain.Day(2023, time.January, 12)},
}

var defaultOrderItems = []domain.OrderItem{
	{ID: 1, OrderID: 1, ProductID: 1, Quantity: 1},
	{ID: 2, OrderID: 1, ProductID: 3, Quantity: 2},
	{ID: 3, OrderID: 2, ProductID: 2, Quantity: 1},
	{ID: 4, OrderID: 2, ProductID: 3, Quantity: 1},
}

// Fixed returns a copy of the dataset loaded by ResetAndSeed.
func Fixed() Dataset {
	return Dataset{
		Customers:  append([]domain.Customer(nil), defaultCustomers...),
		Products:   append([]domain.Product(nil), defaultProducts...),
		Orders:     append([]domain.Order(nil), defaultOrders...),
		OrderItems: append([]domain.OrderItem(nil), defaultOrderItems...),
	}
}

// Counts returns the number of rows per table.
func (d Dataset) Counts() map[string]int {
	return map[string]int{
		database.TableCustomers:  len(d.Customers),
		database.TableProducts:   len(d.Products),
		database.TableOrders:     len(d.Orders),
		database.TableOrderItems: len(d.OrderItems),
	}
}
