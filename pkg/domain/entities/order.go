package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderID uniquely identifies a manufacturing order.
type OrderID string

// OrderLine represents demand for one product on a manufacturing order
type OrderLine struct {
	ProductID ProductID
	Quantity  decimal.Decimal
}

// ManufacturingOrder represents an order whose material requirements are
// being planned. Order lifecycle is owned by the order collaborator.
type ManufacturingOrder struct {
	ID      OrderID
	Code    string
	DueDate time.Time
	Lines   []OrderLine
}

// NewOrderLine creates a validated OrderLine
func NewOrderLine(productID ProductID, quantity decimal.Decimal) (*OrderLine, error) {
	if string(productID) == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, fmt.Errorf("quantity cannot be negative, got %s", quantity)
	}

	return &OrderLine{ProductID: productID, Quantity: quantity}, nil
}
