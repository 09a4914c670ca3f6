package capacity

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	testhelpers "github.com/planforge/mrp/pkg/application/services/testing"
	"github.com/planforge/mrp/pkg/domain/entities"
)

func TestCheckCapacity_WithinCapacity(t *testing.T) {
	ctx := context.Background()
	wcRepo, periods, calendars := testhelpers.BuildCapacityTestData()
	service := NewService(wcRepo, nil, nil)

	// 20 units: MILL 1 + 0.5x20 = 11h of 35h; ASSY 0.5 + 0.25x20 = 5.5h of 40h.
	entries := []entities.PlanEntry{
		{ProductID: "PROD-A", PeriodID: "P-2026-W37", PlannedQty: decimal.NewFromInt(20)},
	}

	report, err := service.CheckCapacity(ctx, entries, periods, calendars)
	if err != nil {
		t.Fatalf("CheckCapacity failed: %v", err)
	}

	if report.HasIssues {
		t.Errorf("expected no issues, got %v", report.Issues)
	}
	if !report.Summary.CanProceed {
		t.Error("expected can_proceed")
	}
	if report.Summary.PeriodsChecked != 1 {
		t.Errorf("expected 1 period checked, got %d", report.Summary.PeriodsChecked)
	}

	mill := report.Utilization["P-2026-W37"]["WC-MILL"]
	if !mill.RequiredHours.Equal(decimal.NewFromInt(11)) {
		t.Errorf("expected MILL required 11h, got %s", mill.RequiredHours)
	}
	if !mill.AvailableHours.Equal(decimal.NewFromInt(35)) {
		t.Errorf("expected MILL available 35h, got %s", mill.AvailableHours)
	}
	if !mill.Percent.Equal(decimal.RequireFromString("31.43")) {
		t.Errorf("expected MILL utilization 31.43%%, got %s", mill.Percent)
	}

	assy := report.Utilization["P-2026-W37"]["WC-ASSY"]
	if !assy.RequiredHours.Equal(decimal.RequireFromString("5.5")) {
		t.Errorf("expected ASSY required 5.5h, got %s", assy.RequiredHours)
	}
}

func TestCheckCapacity_OverloadExactOverrun(t *testing.T) {
	ctx := context.Background()
	wcRepo, periods, calendars := testhelpers.BuildCapacityTestData()
	service := NewService(wcRepo, nil, nil)

	// 80 units: MILL 1 + 0.5x80 = 41h against 35h => overrun exactly 6h.
	entries := []entities.PlanEntry{
		{ProductID: "PROD-A", PeriodID: "P-2026-W37", PlannedQty: decimal.NewFromInt(80)},
	}

	report, err := service.CheckCapacity(ctx, entries, periods, calendars)
	if err != nil {
		t.Fatalf("CheckCapacity failed: %v", err)
	}

	if !report.HasIssues || report.Summary.CanProceed {
		t.Fatal("expected issues blocking the plan")
	}
	if len(report.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(report.Issues))
	}

	issue := report.Issues[0]
	if issue.Kind != entities.IssueOverload {
		t.Errorf("expected overload issue, got %s", issue.Kind)
	}
	if issue.WorkCenterID != "WC-MILL" {
		t.Errorf("expected WC-MILL, got %s", issue.WorkCenterID)
	}
	if !issue.OverrunHours.Equal(decimal.NewFromInt(6)) {
		t.Errorf("expected overrun exactly 6h, got %s", issue.OverrunHours)
	}
	if !issue.UtilizationPercent.Equal(decimal.RequireFromString("117.14")) {
		t.Errorf("expected 117.14%% utilization, got %s", issue.UtilizationPercent)
	}
}

func TestCheckCapacity_WorkCenterWithoutCalendar(t *testing.T) {
	ctx := context.Background()
	wcRepo, periods, calendars := testhelpers.BuildCapacityTestData()
	service := NewService(wcRepo, nil, nil)

	// Drop the mill's calendar: routed load on it becomes an
	// "unavailable" issue, not a crash and not an error.
	delete(calendars, "WC-MILL")

	entries := []entities.PlanEntry{
		{ProductID: "PROD-A", PeriodID: "P-2026-W37", PlannedQty: decimal.NewFromInt(10)},
	}

	report, err := service.CheckCapacity(ctx, entries, periods, calendars)
	if err != nil {
		t.Fatalf("CheckCapacity failed: %v", err)
	}

	found := false
	for _, issue := range report.Issues {
		if issue.Kind == entities.IssueWorkCenterUnavailable && issue.WorkCenterID == "WC-MILL" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected work_center_unavailable issue for WC-MILL, got %v", report.Issues)
	}
}

func TestCheckCapacity_UnknownPeriodRejected(t *testing.T) {
	ctx := context.Background()
	wcRepo, periods, calendars := testhelpers.BuildCapacityTestData()
	service := NewService(wcRepo, nil, nil)

	entries := []entities.PlanEntry{
		{ProductID: "PROD-A", PeriodID: "P-GHOST", PlannedQty: decimal.NewFromInt(1)},
	}

	_, err := service.CheckCapacity(ctx, entries, periods, calendars)
	var validation *entities.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCheckCapacity_UnknownWorkCenterRejected(t *testing.T) {
	ctx := context.Background()
	wcRepo, periods, calendars := testhelpers.BuildCapacityTestData()
	service := NewService(wcRepo, nil, nil)

	wcRepo.AddRoutedOperation(entities.RoutedOperation{
		ProductID: "PROD-G", Sequence: 10, WorkCenterID: "WC-GHOST",
		SetupTimeHours:      decimal.NewFromInt(1),
		RunTimePerUnitHours: decimal.NewFromInt(1),
	})

	entries := []entities.PlanEntry{
		{ProductID: "PROD-G", PeriodID: "P-2026-W37", PlannedQty: decimal.NewFromInt(1)},
	}

	_, err := service.CheckCapacity(ctx, entries, periods, calendars)
	var validation *entities.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCheckCapacity_MissingRoutingWarns(t *testing.T) {
	ctx := context.Background()
	wcRepo, periods, calendars := testhelpers.BuildCapacityTestData()
	service := NewService(wcRepo, nil, nil)

	entries := []entities.PlanEntry{
		{ProductID: "PROD-NOROUTE", PeriodID: "P-2026-W37", PlannedQty: decimal.NewFromInt(5)},
	}

	report, err := service.CheckCapacity(ctx, entries, periods, calendars)
	if err != nil {
		t.Fatalf("CheckCapacity failed: %v", err)
	}
	if report.HasIssues {
		t.Errorf("expected no issues, got %v", report.Issues)
	}
	if len(report.Warnings) != 1 || report.Warnings[0].Kind != entities.WarnDataIntegrity {
		t.Fatalf("expected one data integrity warning, got %v", report.Warnings)
	}
}

func TestCheckCapacity_AccumulatesAcrossEntries(t *testing.T) {
	ctx := context.Background()
	wcRepo, periods, calendars := testhelpers.BuildCapacityTestData()
	service := NewService(wcRepo, nil, nil)

	// Two lots of the same product in one period: setup is paid per entry.
	entries := []entities.PlanEntry{
		{ProductID: "PROD-A", PeriodID: "P-2026-W37", PlannedQty: decimal.NewFromInt(10)},
		{ProductID: "PROD-A", PeriodID: "P-2026-W37", PlannedQty: decimal.NewFromInt(20)},
	}

	report, err := service.CheckCapacity(ctx, entries, periods, calendars)
	if err != nil {
		t.Fatalf("CheckCapacity failed: %v", err)
	}

	// MILL: (1 + 5) + (1 + 10) = 17h.
	mill := report.Utilization["P-2026-W37"]["WC-MILL"]
	if !mill.RequiredHours.Equal(decimal.NewFromInt(17)) {
		t.Errorf("expected MILL required 17h, got %s", mill.RequiredHours)
	}
}

func TestCheckCapacity_NegativeQuantityRejected(t *testing.T) {
	ctx := context.Background()
	wcRepo, periods, calendars := testhelpers.BuildCapacityTestData()
	service := NewService(wcRepo, nil, nil)

	entries := []entities.PlanEntry{
		{ProductID: "PROD-A", PeriodID: "P-2026-W37", PlannedQty: decimal.NewFromInt(-1)},
	}

	_, err := service.CheckCapacity(ctx, entries, periods, calendars)
	var validation *entities.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
