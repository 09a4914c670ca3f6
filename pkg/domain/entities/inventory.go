package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LotStatus represents the status of an inventory lot
type LotStatus int

const (
	LotAvailable LotStatus = iota
	LotQuarantine
	LotBlocked
)

// String method for LotStatus enum
func (s LotStatus) String() string {
	switch s {
	case LotAvailable:
		return "Available"
	case LotQuarantine:
		return "Quarantine"
	case LotBlocked:
		return "Blocked"
	default:
		return "Unknown"
	}
}

// InventoryLot represents a point-in-time snapshot of lot-controlled stock.
// Lots are mutated by receipt/issue/reservation operations outside this
// core; the planning engines only read them.
type InventoryLot struct {
	ItemType         ComponentType
	ItemID           string
	LotNumber        string
	Quantity         decimal.Decimal
	ReservedQuantity decimal.Decimal
	ExpiryDate       time.Time // zero value = never expires
	Status           LotStatus
}

// NewInventoryLot creates a validated InventoryLot
func NewInventoryLot(itemType ComponentType, itemID, lotNumber string, quantity, reserved decimal.Decimal, expiryDate time.Time, status LotStatus) (*InventoryLot, error) {
	if itemID == "" {
		return nil, fmt.Errorf("item id cannot be empty")
	}
	if lotNumber == "" {
		return nil, fmt.Errorf("lot number cannot be empty")
	}
	if reserved.IsNegative() {
		return nil, fmt.Errorf("reserved quantity cannot be negative, got %s", reserved)
	}
	if quantity.LessThan(reserved) {
		return nil, fmt.Errorf("quantity %s cannot be less than reserved quantity %s", quantity, reserved)
	}

	return &InventoryLot{
		ItemType:         itemType,
		ItemID:           itemID,
		LotNumber:        lotNumber,
		Quantity:         quantity,
		ReservedQuantity: reserved,
		ExpiryDate:       expiryDate,
		Status:           status,
	}, nil
}

// UnreservedQty returns the quantity not yet reserved against other demand.
func (l *InventoryLot) UnreservedQty() decimal.Decimal {
	return l.Quantity.Sub(l.ReservedQuantity)
}

// IsExpired reports whether the lot is expired as of the given date.
func (l *InventoryLot) IsExpired(asOf time.Time) bool {
	return !l.ExpiryDate.IsZero() && l.ExpiryDate.Before(asOf)
}
