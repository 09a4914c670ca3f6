package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/planforge/mrp/pkg/domain/entities"
)

// MRPSummary aggregates an MRP run for quick consumption by callers
type MRPSummary struct {
	TotalMaterials        int
	MaterialsWithShortage int
	TotalShortageValue    decimal.Decimal
}

// MRPReport contains the complete output of one MRP run for an order.
// The run performs no writes; identical snapshots yield identical reports
// (RunID and GeneratedAt aside).
type MRPReport struct {
	RunID        string
	OrderID      entities.OrderID
	GeneratedAt  time.Time
	Requirements []entities.Requirement
	Warnings     []entities.Warning
	Summary      MRPSummary
}

// HasWarnings reports whether non-fatal conditions were collected.
func (r *MRPReport) HasWarnings() bool {
	return len(r.Warnings) > 0
}
