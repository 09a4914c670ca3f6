package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BOMHeaderID uniquely identifies a BOM version.
type BOMHeaderID string

// ComponentType distinguishes raw materials from sub-assembly products on a BOM line
type ComponentType int

const (
	ComponentMaterial ComponentType = iota
	ComponentProduct
)

// String method for ComponentType enum
func (c ComponentType) String() string {
	switch c {
	case ComponentMaterial:
		return "Material"
	case ComponentProduct:
		return "Product"
	default:
		return "Unknown"
	}
}

// BOMHeader represents one version of a product's bill of materials.
// At most one header per product is active at any time; activation is owned
// by the engineering collaborator, this core only reads the active version.
type BOMHeader struct {
	ID            BOMHeaderID
	ProductID     ProductID
	Version       int
	EffectiveDate time.Time
	IsActive      bool
}

// BOMLine represents a single component line in a Bill of Materials
type BOMLine struct {
	BOMHeaderID   BOMHeaderID
	ComponentType ComponentType
	ComponentID   string
	QuantityPer   decimal.Decimal
	ScrapPercent  decimal.Decimal
}

// NewBOMLine creates a validated BOMLine
func NewBOMLine(headerID BOMHeaderID, componentType ComponentType, componentID string, quantityPer, scrapPercent decimal.Decimal) (*BOMLine, error) {
	if string(headerID) == "" {
		return nil, fmt.Errorf("bom header id cannot be empty")
	}
	if componentID == "" {
		return nil, fmt.Errorf("component id cannot be empty")
	}
	if !quantityPer.IsPositive() {
		return nil, fmt.Errorf("quantity per must be positive, got %s", quantityPer)
	}
	if scrapPercent.IsNegative() || scrapPercent.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("scrap percent must be in [0,100), got %s", scrapPercent)
	}

	return &BOMLine{
		BOMHeaderID:   headerID,
		ComponentType: componentType,
		ComponentID:   componentID,
		QuantityPer:   quantityPer,
		ScrapPercent:  scrapPercent,
	}, nil
}

// ScrapFactor returns the multiplier applied to line demand to cover
// expected scrap: 1 + scrap_percent/100.
func (l *BOMLine) ScrapFactor() decimal.Decimal {
	return decimal.NewFromInt(1).Add(l.ScrapPercent.Div(decimal.NewFromInt(100)))
}
