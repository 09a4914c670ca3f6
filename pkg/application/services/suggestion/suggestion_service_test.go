package suggestion

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	testhelpers "github.com/planforge/mrp/pkg/application/services/testing"
	"github.com/planforge/mrp/pkg/domain/entities"
)

var (
	now          = time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	requiredDate = testhelpers.DueDate // 2026-09-30
)

func newTestService(repos *testhelpers.Repos) *Service {
	return NewService(repos.BOM, repos.Items, repos.Items, nil)
}

func shortage(id entities.MaterialID, net, available int64) entities.Requirement {
	return entities.Requirement{
		MaterialID:       id,
		GrossRequirement: decimal.NewFromInt(net + available),
		AvailableQty:     decimal.NewFromInt(available),
		NetRequirement:   decimal.NewFromInt(net),
		Shortage:         true,
	}
}

func TestSuggest_PurchaseClassification(t *testing.T) {
	ctx := context.Background()
	repos := testhelpers.BuildPlanningTestData()
	service := newTestService(repos)

	reqs := []entities.Requirement{shortage("MAT-X", 22, 0)}

	suggestions, err := service.Suggest(ctx, reqs, requiredDate, Policy{Now: now})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}

	sug := suggestions[0]
	if sug.OrderType != entities.SuggestPurchase {
		t.Errorf("expected purchase, got %s", sug.OrderType)
	}
	// Lead time 7 days back from 2026-09-30.
	want := time.Date(2026, 9, 23, 0, 0, 0, 0, time.UTC)
	if !sug.SuggestedDate.Equal(want) {
		t.Errorf("expected suggested date %v, got %v", want, sug.SuggestedDate)
	}
	if sug.Urgency != entities.UrgencyNormal {
		t.Errorf("expected normal urgency, got %s", sug.Urgency)
	}
	if !sug.Quantity.Equal(decimal.NewFromInt(22)) {
		t.Errorf("expected lot-for-lot quantity 22, got %s", sug.Quantity)
	}
}

func TestSuggest_ProductionClassification(t *testing.T) {
	ctx := context.Background()
	repos := testhelpers.BuildPlanningTestData()
	service := newTestService(repos)

	// SUB-B carries an active BOM of its own, so its shortage is
	// sub-assembly demand, not a purchase.
	reqs := []entities.Requirement{shortage("SUB-B", 4, 0)}

	suggestions, err := service.Suggest(ctx, reqs, requiredDate, Policy{Now: now})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}

	sug := suggestions[0]
	if sug.OrderType != entities.SuggestProduction {
		t.Errorf("expected production, got %s", sug.OrderType)
	}
	// Product lead time 3 days.
	want := time.Date(2026, 9, 27, 0, 0, 0, 0, time.UTC)
	if !sug.SuggestedDate.Equal(want) {
		t.Errorf("expected suggested date %v, got %v", want, sug.SuggestedDate)
	}
}

func TestSuggest_ExpediteWhenLeadTimeOverruns(t *testing.T) {
	ctx := context.Background()
	repos := testhelpers.BuildPlanningTestData()
	service := newTestService(repos)

	// MAT-Y lead time 14 days puts the order date before now.
	reqs := []entities.Requirement{shortage("MAT-Y", 10, 20)}

	suggestions, err := service.Suggest(ctx, reqs, requiredDate, Policy{Now: now})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if suggestions[0].Urgency != entities.UrgencyExpedite {
		t.Errorf("expected expedite, got %s", suggestions[0].Urgency)
	}
}

func TestSuggest_FixedLotRoundsUp(t *testing.T) {
	ctx := context.Background()
	repos := testhelpers.BuildPlanningTestData()
	service := newTestService(repos)

	reqs := []entities.Requirement{shortage("MAT-X", 22, 0)}

	suggestions, err := service.Suggest(ctx, reqs, requiredDate, Policy{LotSizing: FixedLot, Now: now})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	// MAT-X lot size 10: 22 rounds up to 30.
	if !suggestions[0].Quantity.Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected fixed-lot quantity 30, got %s", suggestions[0].Quantity)
	}
	if !suggestions[0].Quantity.Mod(decimal.NewFromInt(10)).IsZero() {
		t.Errorf("fixed-lot quantity %s is not a lot multiple", suggestions[0].Quantity)
	}
}

func TestSuggest_MinimumOrderQty(t *testing.T) {
	ctx := context.Background()
	repos := testhelpers.BuildPlanningTestData()
	service := newTestService(repos)

	reqs := []entities.Requirement{shortage("MAT-X", 2, 0)}

	policy := Policy{MinimumOrderQty: decimal.NewFromInt(5), Now: now}
	suggestions, err := service.Suggest(ctx, reqs, requiredDate, policy)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if !suggestions[0].Quantity.Equal(decimal.NewFromInt(5)) {
		t.Errorf("expected minimum order quantity 5, got %s", suggestions[0].Quantity)
	}
}

func TestSuggest_ReorderToMax(t *testing.T) {
	ctx := context.Background()
	repos := testhelpers.BuildPlanningTestData()
	service := newTestService(repos)

	// MAT-Y max stock 60, available 20: fill to max means ordering 40.
	reqs := []entities.Requirement{shortage("MAT-Y", 10, 20)}

	suggestions, err := service.Suggest(ctx, reqs, requiredDate, Policy{LotSizing: ReorderToMax, Now: now})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if !suggestions[0].Quantity.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected reorder-to-max quantity 40, got %s", suggestions[0].Quantity)
	}
}

func TestSuggest_SkipsNonShortages(t *testing.T) {
	ctx := context.Background()
	repos := testhelpers.BuildPlanningTestData()
	service := newTestService(repos)

	reqs := []entities.Requirement{
		{MaterialID: "MAT-Y", NetRequirement: decimal.Zero, Shortage: false},
		shortage("MAT-X", 22, 0),
	}

	suggestions, err := service.Suggest(ctx, reqs, requiredDate, Policy{Now: now})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].MaterialID != "MAT-X" {
		t.Fatalf("expected only the MAT-X shortage, got %v", suggestions)
	}
}

func TestSuggest_OrderedByDateThenMagnitude(t *testing.T) {
	ctx := context.Background()
	repos := testhelpers.BuildPlanningTestData()
	service := newTestService(repos)

	// MAT-Y (lead 14) schedules earlier than MAT-X (lead 7). Two materials
	// sharing MAT-X's date tie-break by descending shortage.
	repos.Items.AddMaterial(entities.Material{
		ID: "MAT-Z", Code: "Z", UnitOfMeasure: "kg",
		LeadTimeDays: 7,
		CostPerUnit:  decimal.NewFromInt(1),
	})

	reqs := []entities.Requirement{
		shortage("MAT-X", 5, 0),
		shortage("MAT-Y", 10, 20),
		shortage("MAT-Z", 50, 0),
	}

	suggestions, err := service.Suggest(ctx, reqs, requiredDate, Policy{Now: now})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	var got []entities.MaterialID
	for _, s := range suggestions {
		got = append(got, s.MaterialID)
	}
	want := []entities.MaterialID{"MAT-Y", "MAT-Z", "MAT-X"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestSuggest_QuantityNeverBelowNet(t *testing.T) {
	ctx := context.Background()
	repos := testhelpers.BuildPlanningTestData()
	service := newTestService(repos)

	for _, rule := range []LotSizingRule{LotForLot, FixedLot, ReorderToMax} {
		reqs := []entities.Requirement{shortage("MAT-Y", 55, 20)}
		suggestions, err := service.Suggest(ctx, reqs, requiredDate, Policy{LotSizing: rule, Now: now})
		if err != nil {
			t.Fatalf("Suggest(%s) failed: %v", rule, err)
		}
		if suggestions[0].Quantity.LessThan(reqs[0].NetRequirement) {
			t.Errorf("%s: quantity %s below net %s", rule, suggestions[0].Quantity, reqs[0].NetRequirement)
		}
	}
}
