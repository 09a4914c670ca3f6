package dto

import (
	"github.com/planforge/mrp/pkg/domain/entities"
)

// CapacitySummary aggregates a capacity check for quick consumption
type CapacitySummary struct {
	TotalIssues    int
	PeriodsChecked int
	CanProceed     bool
}

// CapacityReport contains the complete output of a capacity validation run
type CapacityReport struct {
	HasIssues   bool
	Issues      []entities.CapacityIssue
	Utilization map[entities.PeriodID]map[entities.WorkCenterID]entities.Utilization
	Warnings    []entities.Warning
	Summary     CapacitySummary
}
