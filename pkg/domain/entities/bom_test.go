package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewBOMLine_Valid(t *testing.T) {
	line, err := NewBOMLine("BOM-1", ComponentMaterial, "MAT-X", decimal.NewFromInt(2), decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("NewBOMLine failed: %v", err)
	}
	if line.ComponentID != "MAT-X" {
		t.Errorf("expected component MAT-X, got %s", line.ComponentID)
	}
	if !line.ScrapFactor().Equal(decimal.RequireFromString("1.1")) {
		t.Errorf("expected scrap factor 1.1, got %s", line.ScrapFactor())
	}
}

func TestNewBOMLine_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		headerID    BOMHeaderID
		componentID string
		qtyPer      decimal.Decimal
		scrap       decimal.Decimal
	}{
		{"empty_header", "", "MAT-X", decimal.NewFromInt(1), decimal.Zero},
		{"empty_component", "BOM-1", "", decimal.NewFromInt(1), decimal.Zero},
		{"zero_qty", "BOM-1", "MAT-X", decimal.Zero, decimal.Zero},
		{"negative_qty", "BOM-1", "MAT-X", decimal.NewFromInt(-1), decimal.Zero},
		{"negative_scrap", "BOM-1", "MAT-X", decimal.NewFromInt(1), decimal.NewFromInt(-5)},
		{"scrap_100", "BOM-1", "MAT-X", decimal.NewFromInt(1), decimal.NewFromInt(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewBOMLine(tt.headerID, ComponentMaterial, tt.componentID, tt.qtyPer, tt.scrap); err == nil {
				t.Error("expected validation error but got none")
			}
		})
	}
}

func TestBOMLine_ScrapFactor_Zero(t *testing.T) {
	line, err := NewBOMLine("BOM-1", ComponentProduct, "SUB-B", decimal.NewFromInt(3), decimal.Zero)
	if err != nil {
		t.Fatalf("NewBOMLine failed: %v", err)
	}
	if !line.ScrapFactor().Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected scrap factor 1, got %s", line.ScrapFactor())
	}
}
