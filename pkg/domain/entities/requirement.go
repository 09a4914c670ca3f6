package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Requirement represents the netted demand for a single material.
// It is an engine output, not a persisted master entity.
type Requirement struct {
	MaterialID       MaterialID
	MaterialCode     string
	UnitOfMeasure    string
	GrossRequirement decimal.Decimal
	AvailableQty     decimal.Decimal
	NetRequirement   decimal.Decimal
	Shortage         bool
	CostPerUnit      decimal.Decimal
}

// ShortageValue returns the net requirement valued at the cost snapshot.
func (r *Requirement) ShortageValue() decimal.Decimal {
	return r.NetRequirement.Mul(r.CostPerUnit)
}

// SuggestionType represents the kind of replenishment order being proposed
type SuggestionType int

const (
	SuggestPurchase SuggestionType = iota
	SuggestProduction
)

// String method for SuggestionType enum
func (s SuggestionType) String() string {
	switch s {
	case SuggestPurchase:
		return "Purchase"
	case SuggestProduction:
		return "Production"
	default:
		return "Unknown"
	}
}

// Urgency flags whether a suggestion can still be fulfilled on time
type Urgency int

const (
	UrgencyNormal Urgency = iota
	UrgencyExpedite
)

// String method for Urgency enum
func (u Urgency) String() string {
	switch u {
	case UrgencyNormal:
		return "Normal"
	case UrgencyExpedite:
		return "Expedite"
	default:
		return "Unknown"
	}
}

// Suggestion represents a proposed replenishment order for a shortage.
// Persisting suggestions as real purchase/production orders is owned by
// the purchasing and production collaborators.
type Suggestion struct {
	MaterialID    MaterialID
	MaterialCode  string
	OrderType     SuggestionType
	Quantity      decimal.Decimal
	RequiredDate  time.Time
	SuggestedDate time.Time
	Urgency       Urgency
	ShortageQty   decimal.Decimal
}

// CapacityIssueKind classifies capacity check findings
type CapacityIssueKind int

const (
	IssueOverload CapacityIssueKind = iota
	IssueWorkCenterUnavailable
)

// String method for CapacityIssueKind enum
func (k CapacityIssueKind) String() string {
	switch k {
	case IssueOverload:
		return "Overload"
	case IssueWorkCenterUnavailable:
		return "WorkCenterUnavailable"
	default:
		return "Unknown"
	}
}

// CapacityIssue represents a work center that cannot absorb its planned
// load in a period. Exceeding capacity is reported data, never an error.
type CapacityIssue struct {
	Kind               CapacityIssueKind
	PeriodID           PeriodID
	WorkCenterID       WorkCenterID
	RequiredHours      decimal.Decimal
	AvailableHours     decimal.Decimal
	OverrunHours       decimal.Decimal
	UtilizationPercent decimal.Decimal
}

// Utilization represents the load ratio of a work center in a period
type Utilization struct {
	RequiredHours  decimal.Decimal
	AvailableHours decimal.Decimal
	Percent        decimal.Decimal
}
