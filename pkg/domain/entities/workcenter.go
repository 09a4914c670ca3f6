package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// WorkCenterID uniquely identifies a work center.
type WorkCenterID string

// PeriodID uniquely identifies a planning period.
type PeriodID string

// WorkCenter represents a production resource with finite hourly capacity
type WorkCenter struct {
	ID                   WorkCenterID
	Code                 string
	Description          string
	CapacityUnitsPerHour decimal.Decimal
}

// CalendarEntry represents one day of availability for a work center
type CalendarEntry struct {
	WorkCenterID         WorkCenterID
	Date                 time.Time
	AvailableHours       decimal.Decimal
	PlannedDowntimeHours decimal.Decimal
}

// NetHours returns the hours usable for production on this calendar day.
func (c *CalendarEntry) NetHours() decimal.Decimal {
	return c.AvailableHours.Sub(c.PlannedDowntimeHours)
}

// RoutedOperation represents one routing step of a product on a work center
type RoutedOperation struct {
	ProductID           ProductID
	Sequence            int
	WorkCenterID        WorkCenterID
	SetupTimeHours      decimal.Decimal
	RunTimePerUnitHours decimal.Decimal
}

// HoursFor returns the work-center hours this operation consumes for the
// given planned quantity: setup + run_time_per_unit x qty.
func (o *RoutedOperation) HoursFor(qty decimal.Decimal) decimal.Decimal {
	return o.SetupTimeHours.Add(o.RunTimePerUnitHours.Mul(qty))
}

// PlanPeriod represents a planning bucket of the master production schedule
type PlanPeriod struct {
	ID        PeriodID
	StartDate time.Time
	EndDate   time.Time
}

// Contains reports whether the given date falls inside the period.
func (p *PlanPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}

// PlanEntry represents planned production of one product in one period
type PlanEntry struct {
	ProductID  ProductID
	PeriodID   PeriodID
	PlannedQty decimal.Decimal
}

// NewCalendarEntry creates a validated CalendarEntry
func NewCalendarEntry(workCenterID WorkCenterID, date time.Time, availableHours, downtimeHours decimal.Decimal) (*CalendarEntry, error) {
	if string(workCenterID) == "" {
		return nil, fmt.Errorf("work center id cannot be empty")
	}
	if availableHours.IsNegative() {
		return nil, fmt.Errorf("available hours cannot be negative, got %s", availableHours)
	}
	if downtimeHours.IsNegative() {
		return nil, fmt.Errorf("planned downtime hours cannot be negative, got %s", downtimeHours)
	}
	if downtimeHours.GreaterThan(availableHours) {
		return nil, fmt.Errorf("planned downtime %s cannot exceed available hours %s", downtimeHours, availableHours)
	}

	return &CalendarEntry{
		WorkCenterID:         workCenterID,
		Date:                 date,
		AvailableHours:       availableHours,
		PlannedDowntimeHours: downtimeHours,
	}, nil
}
