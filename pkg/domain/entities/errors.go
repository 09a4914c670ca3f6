package entities

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed input, such as a negative quantity or
// an unknown period id referenced by a plan entry.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Message
}

// NewValidationError creates a ValidationError with a formatted message
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an absent order, product, material or BOM.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// CycleDetectedError reports a product that directly or transitively
// contains itself in the BOM graph.
type CycleDetectedError struct {
	ProductID ProductID
	Path      []ProductID
}

func (e *CycleDetectedError) Error() string {
	parts := make([]string, 0, len(e.Path)+1)
	for _, pn := range e.Path {
		parts = append(parts, string(pn))
	}
	parts = append(parts, string(e.ProductID))
	return fmt.Sprintf("BOM cycle detected at product %s: %s", e.ProductID, strings.Join(parts, " -> "))
}

// DatabaseUnavailableError reports a persistence failure that survived the
// single retry allowed for transient faults.
type DatabaseUnavailableError struct {
	Op  string
	Err error
}

func (e *DatabaseUnavailableError) Error() string {
	return fmt.Sprintf("database unavailable during %s: %v", e.Op, e.Err)
}

func (e *DatabaseUnavailableError) Unwrap() error {
	return e.Err
}

// WarningKind classifies non-fatal conditions collected alongside a
// successful calculation result.
type WarningKind string

const (
	WarnNoActiveBOM   WarningKind = "no_active_bom"
	WarnDataIntegrity WarningKind = "data_integrity"
)

// Warning represents a non-fatal condition attached to a successful result
type Warning struct {
	Kind    WarningKind
	Subject string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Kind, w.Subject, w.Message)
}
