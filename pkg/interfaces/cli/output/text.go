package output

import (
	"fmt"
)

// generateTextOutput prints human-readable results to stdout
func generateTextOutput(result *RunResult) error {
	for _, order := range result.Orders {
		printOrderResult(order)
	}
	if result.Capacity != nil {
		printCapacityReport(result)
	}
	return nil
}

func printOrderResult(order OrderResult) {
	report := order.Report

	fmt.Printf("📊 MRP Report for order %s (run %s)\n", report.OrderID, report.RunID)
	fmt.Printf("=====================================\n\n")

	fmt.Printf("Materials: %d\n", report.Summary.TotalMaterials)
	fmt.Printf("Shortages: %d\n", report.Summary.MaterialsWithShortage)
	fmt.Printf("Shortage Value: %s\n\n", report.Summary.TotalShortageValue.StringFixed(2))

	if len(report.Requirements) > 0 {
		fmt.Printf("📋 Requirements:\n")
		fmt.Printf("%-12s %-10s %-6s %-12s %-12s %-12s %-9s\n",
			"Material", "Code", "UoM", "Gross", "Available", "Net", "Shortage")
		fmt.Printf("%-12s %-10s %-6s %-12s %-12s %-12s %-9s\n",
			"------------", "----------", "------", "------------", "------------", "------------", "---------")

		for _, req := range report.Requirements {
			shortage := ""
			if req.Shortage {
				shortage = "YES"
			}
			fmt.Printf("%-12s %-10s %-6s %-12s %-12s %-12s %-9s\n",
				req.MaterialID,
				req.MaterialCode,
				req.UnitOfMeasure,
				req.GrossRequirement.String(),
				req.AvailableQty.String(),
				req.NetRequirement.String(),
				shortage)
		}
		fmt.Println()
	}

	if len(order.Suggestions) > 0 {
		fmt.Printf("🛒 Suggestions:\n")
		fmt.Printf("%-12s %-12s %-12s %-12s %-12s %-10s\n",
			"Material", "Type", "Qty", "Required", "Start By", "Urgency")
		fmt.Printf("%-12s %-12s %-12s %-12s %-12s %-10s\n",
			"------------", "------------", "------------", "------------", "------------", "----------")

		for _, s := range order.Suggestions {
			fmt.Printf("%-12s %-12s %-12s %-12s %-12s %-10s\n",
				s.MaterialID,
				s.OrderType.String(),
				s.Quantity.String(),
				s.RequiredDate.Format("2006-01-02"),
				s.SuggestedDate.Format("2006-01-02"),
				s.Urgency.String())
		}
		fmt.Println()
	}

	if report.HasWarnings() {
		fmt.Printf("⚠️  Warnings:\n")
		for _, w := range report.Warnings {
			fmt.Printf("  %s\n", w)
		}
		fmt.Println()
	}
}

func printCapacityReport(result *RunResult) {
	capacity := result.Capacity

	fmt.Printf("🏭 Capacity Check\n")
	fmt.Printf("=================\n\n")
	fmt.Printf("Periods Checked: %d\n", capacity.Summary.PeriodsChecked)
	fmt.Printf("Issues: %d\n", capacity.Summary.TotalIssues)
	fmt.Printf("Can Proceed: %v\n\n", capacity.Summary.CanProceed)

	if len(capacity.Issues) > 0 {
		fmt.Printf("⚠️  Capacity Issues:\n")
		fmt.Printf("%-22s %-14s %-12s %-10s %-10s %-9s %-8s\n",
			"Kind", "Period", "WorkCenter", "Required", "Available", "Overrun", "Util%")
		fmt.Printf("%-22s %-14s %-12s %-10s %-10s %-9s %-8s\n",
			"----------------------", "--------------", "------------", "----------", "----------", "---------", "--------")

		for _, issue := range capacity.Issues {
			fmt.Printf("%-22s %-14s %-12s %-10s %-10s %-9s %-8s\n",
				issue.Kind.String(),
				issue.PeriodID,
				issue.WorkCenterID,
				issue.RequiredHours.String(),
				issue.AvailableHours.String(),
				issue.OverrunHours.String(),
				issue.UtilizationPercent.String())
		}
		fmt.Println()
	}

	for _, w := range capacity.Warnings {
		fmt.Printf("  %s\n", w)
	}
}
