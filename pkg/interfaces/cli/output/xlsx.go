package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// generateXLSXOutput writes the run results as an Excel workbook with one
// sheet per concern: requirements, suggestions, warnings and capacity.
func generateXLSXOutput(result *RunResult, path string) error {
	if path == "" {
		return fmt.Errorf("xlsx output requires an output path")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := writeRequirementsSheet(f, result); err != nil {
		return err
	}
	if err := writeSuggestionsSheet(f, result); err != nil {
		return err
	}
	if err := writeWarningsSheet(f, result); err != nil {
		return err
	}
	if result.Capacity != nil {
		if err := writeCapacitySheet(f, result); err != nil {
			return err
		}
	}
	if len(result.Materials) > 0 {
		if err := writeMaterialsSheet(f, result); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeRequirementsSheet(f *excelize.File, result *RunResult) error {
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, "Requirements"); err != nil {
		return err
	}
	sheet = "Requirements"

	header := []interface{}{
		"order_id", "run_id", "material_id", "material_code", "unit_of_measure",
		"gross_requirement", "available_qty", "net_requirement", "shortage",
		"cost_per_unit", "shortage_value",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	row := 2
	for _, order := range result.Orders {
		for _, req := range order.Report.Requirements {
			cells := []interface{}{
				string(order.Report.OrderID),
				order.Report.RunID,
				string(req.MaterialID),
				req.MaterialCode,
				req.UnitOfMeasure,
				req.GrossRequirement.String(),
				req.AvailableQty.String(),
				req.NetRequirement.String(),
				req.Shortage,
				req.CostPerUnit.String(),
				req.ShortageValue().String(),
			}
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeSuggestionsSheet(f *excelize.File, result *RunResult) error {
	const sheet = "Suggestions"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{
		"order_id", "material_id", "material_code", "order_type", "quantity",
		"required_date", "suggested_date", "urgency", "shortage_qty",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	row := 2
	for _, order := range result.Orders {
		for _, s := range order.Suggestions {
			cells := []interface{}{
				string(order.Report.OrderID),
				string(s.MaterialID),
				s.MaterialCode,
				s.OrderType.String(),
				s.Quantity.String(),
				s.RequiredDate.Format("2006-01-02"),
				s.SuggestedDate.Format("2006-01-02"),
				s.Urgency.String(),
				s.ShortageQty.String(),
			}
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeWarningsSheet(f *excelize.File, result *RunResult) error {
	const sheet = "Warnings"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"source", "kind", "subject", "message"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	row := 2
	for _, order := range result.Orders {
		for _, w := range order.Report.Warnings {
			cells := []interface{}{
				fmt.Sprintf("order %s", order.Report.OrderID),
				string(w.Kind), w.Subject, w.Message,
			}
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells); err != nil {
				return err
			}
			row++
		}
	}
	if result.Capacity != nil {
		for _, w := range result.Capacity.Warnings {
			cells := []interface{}{"capacity check", string(w.Kind), w.Subject, w.Message}
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeCapacitySheet(f *excelize.File, result *RunResult) error {
	const sheet = "Capacity"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{
		"period_id", "work_center_id", "required_hours", "available_hours",
		"utilization_percent", "issue", "overrun_hours",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	issueByCell := make(map[string]string)
	overrunByCell := make(map[string]string)
	for _, issue := range result.Capacity.Issues {
		key := string(issue.PeriodID) + "/" + string(issue.WorkCenterID)
		issueByCell[key] = issue.Kind.String()
		overrunByCell[key] = issue.OverrunHours.String()
	}

	row := 2
	for periodID, byWorkCenter := range result.Capacity.Utilization {
		for wcID, util := range byWorkCenter {
			key := string(periodID) + "/" + string(wcID)
			cells := []interface{}{
				string(periodID),
				string(wcID),
				util.RequiredHours.String(),
				util.AvailableHours.String(),
				util.Percent.String(),
				issueByCell[key],
				overrunByCell[key],
			}
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeMaterialsSheet(f *excelize.File, result *RunResult) error {
	const sheet = "Materials"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{
		"id", "code", "description", "unit_of_measure", "lead_time_days",
		"reorder_point", "safety_stock_qty", "lot_size_qty", "max_stock_qty",
		"cost_per_unit", "lot_controlled", "default_supplier",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	row := 2
	for _, m := range result.Materials {
		cells := []interface{}{
			string(m.ID),
			m.Code,
			m.Description,
			m.UnitOfMeasure,
			m.LeadTimeDays,
			m.ReorderPoint.String(),
			m.SafetyStockQty.String(),
			m.LotSizeQty.String(),
			m.MaxStockQty.String(),
			m.CostPerUnit.String(),
			m.LotControlled,
			m.DefaultSupplier,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells); err != nil {
			return err
		}
		row++
	}
	return nil
}
