// Package output renders planning results for the CLI.
package output

import (
	"fmt"

	"github.com/planforge/mrp/pkg/application/dto"
	"github.com/planforge/mrp/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format     string
	OutputPath string
}

// OrderResult pairs an MRP report with the suggestions derived from it
type OrderResult struct {
	Report      *dto.MRPReport
	Suggestions []entities.Suggestion
}

// RunResult aggregates everything one CLI invocation produced
type RunResult struct {
	Orders   []OrderResult
	Capacity *dto.CapacityReport
	// Materials is the full material catalog, exported as a reference
	// sheet in the xlsx workbook.
	Materials []*entities.Material
}

// Generate creates output in the specified format
func Generate(result *RunResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result)
	case "xlsx":
		return generateXLSXOutput(result, config.OutputPath)
	default:
		return fmt.Errorf("unsupported output format: %s (expected text or xlsx)", config.Format)
	}
}
