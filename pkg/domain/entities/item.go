package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaterialID uniquely identifies a raw material.
type MaterialID string

// ProductID uniquely identifies a manufactured product or sub-assembly.
// Materials that are themselves manufactured share the same identifier
// space, so ProductID(materialID) resolves a material's product counterpart.
type ProductID string

// Product represents a manufactured item master record.
type Product struct {
	ID             ProductID
	Code           string
	Description    string
	UnitOfMeasure  string
	LeadTimeDays   int
	SafetyStockQty decimal.Decimal
	LotSizeQty     decimal.Decimal
}

// Material represents a raw-material master record.
type Material struct {
	ID              MaterialID
	Code            string
	Description     string
	UnitOfMeasure   string
	LeadTimeDays    int
	ReorderPoint    decimal.Decimal
	SafetyStockQty  decimal.Decimal
	LotSizeQty      decimal.Decimal
	MaxStockQty     decimal.Decimal
	CostPerUnit     decimal.Decimal
	LotControlled   bool
	DefaultSupplier string
}

// NewProduct creates a validated Product
func NewProduct(id ProductID, code, uom string, leadTimeDays int, safetyStock, lotSize decimal.Decimal) (*Product, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if code == "" {
		return nil, fmt.Errorf("product code cannot be empty")
	}
	if leadTimeDays < 0 {
		return nil, fmt.Errorf("lead time cannot be negative, got %d", leadTimeDays)
	}
	if safetyStock.IsNegative() {
		return nil, fmt.Errorf("safety stock cannot be negative, got %s", safetyStock)
	}
	if lotSize.IsNegative() {
		return nil, fmt.Errorf("lot size cannot be negative, got %s", lotSize)
	}

	return &Product{
		ID:             id,
		Code:           code,
		UnitOfMeasure:  uom,
		LeadTimeDays:   leadTimeDays,
		SafetyStockQty: safetyStock,
		LotSizeQty:     lotSize,
	}, nil
}

// NewMaterial creates a validated Material
func NewMaterial(id MaterialID, code, uom string, leadTimeDays int, costPerUnit decimal.Decimal) (*Material, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("material id cannot be empty")
	}
	if code == "" {
		return nil, fmt.Errorf("material code cannot be empty")
	}
	if leadTimeDays < 0 {
		return nil, fmt.Errorf("lead time cannot be negative, got %d", leadTimeDays)
	}
	if costPerUnit.IsNegative() {
		return nil, fmt.Errorf("cost per unit cannot be negative, got %s", costPerUnit)
	}

	return &Material{
		ID:            id,
		Code:          code,
		UnitOfMeasure: uom,
		LeadTimeDays:  leadTimeDays,
		CostPerUnit:   costPerUnit,
	}, nil
}
