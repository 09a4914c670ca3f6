package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planforge/mrp/pkg/domain/entities"
)

func TestWorkCenterRepository_CalendarRange(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkCenterRepository()

	base := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 10; day++ {
		repo.AddCalendarEntry(entities.CalendarEntry{
			WorkCenterID:   "WC-MILL",
			Date:           base.AddDate(0, 0, day),
			AvailableHours: decimal.NewFromInt(8),
		})
	}

	entries, err := repo.GetCalendar(ctx, "WC-MILL", base, base.AddDate(0, 0, 4))
	if err != nil {
		t.Fatalf("GetCalendar failed: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries in range, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Date.Before(entries[i-1].Date) {
			t.Fatal("calendar entries not ordered by date")
		}
	}
}

func TestWorkCenterRepository_RoutingOrderedBySequence(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkCenterRepository()

	repo.AddRoutedOperation(entities.RoutedOperation{ProductID: "PROD-A", Sequence: 20, WorkCenterID: "WC-ASSY"})
	repo.AddRoutedOperation(entities.RoutedOperation{ProductID: "PROD-A", Sequence: 10, WorkCenterID: "WC-MILL"})

	ops, err := repo.GetRouting(ctx, "PROD-A")
	if err != nil {
		t.Fatalf("GetRouting failed: %v", err)
	}
	if len(ops) != 2 || ops[0].Sequence != 10 || ops[1].Sequence != 20 {
		t.Fatalf("expected operations ordered by sequence, got %v", ops)
	}
}

func TestWorkCenterRepository_UnknownWorkCenter(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkCenterRepository()

	if _, err := repo.GetWorkCenter(ctx, "WC-GHOST"); err == nil {
		t.Error("expected NotFoundError for unknown work center")
	}
}
