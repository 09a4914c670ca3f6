package output

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/planforge/mrp/pkg/application/dto"
	"github.com/planforge/mrp/pkg/domain/entities"
)

func buildWorkbookResult() *RunResult {
	report := &dto.MRPReport{
		RunID:       "run-1",
		OrderID:     "ORD-1",
		GeneratedAt: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Requirements: []entities.Requirement{
			{
				MaterialID: "MAT-X", MaterialCode: "X", UnitOfMeasure: "kg",
				GrossRequirement: decimal.NewFromInt(22),
				AvailableQty:     decimal.Zero,
				NetRequirement:   decimal.NewFromInt(22),
				Shortage:         true,
				CostPerUnit:      decimal.RequireFromString("4.50"),
			},
		},
		Summary: dto.MRPSummary{
			TotalMaterials:        1,
			MaterialsWithShortage: 1,
			TotalShortageValue:    decimal.RequireFromString("99.00"),
		},
	}

	return &RunResult{
		Orders: []OrderResult{{Report: report}},
		Materials: []*entities.Material{
			{ID: "MAT-X", Code: "X", UnitOfMeasure: "kg", CostPerUnit: decimal.RequireFromString("4.50")},
			{ID: "MAT-Y", Code: "Y", UnitOfMeasure: "pcs", CostPerUnit: decimal.RequireFromString("2.00")},
		},
	}
}

func TestGenerateXLSX_WritesCatalogAndRequirements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	err := Generate(buildWorkbookResult(), Config{Format: "xlsx", OutputPath: path})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Requirements")
	if err != nil {
		t.Fatalf("failed to read Requirements sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one requirement row, got %d rows", len(rows))
	}
	if rows[1][2] != "MAT-X" {
		t.Errorf("expected MAT-X in requirement row, got %q", rows[1][2])
	}

	rows, err = f.GetRows("Materials")
	if err != nil {
		t.Fatalf("failed to read Materials sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus two catalog rows, got %d rows", len(rows))
	}
	if rows[1][0] != "MAT-X" || rows[2][0] != "MAT-Y" {
		t.Errorf("expected catalog rows MAT-X, MAT-Y, got %q, %q", rows[1][0], rows[2][0])
	}
}

func TestGenerateXLSX_RequiresOutputPath(t *testing.T) {
	err := Generate(buildWorkbookResult(), Config{Format: "xlsx"})
	if err == nil {
		t.Error("expected missing output path to be rejected")
	}
}

func TestGenerate_UnknownFormatRejected(t *testing.T) {
	err := Generate(buildWorkbookResult(), Config{Format: "pdf"})
	if err == nil {
		t.Error("expected unknown format to be rejected")
	}
}
