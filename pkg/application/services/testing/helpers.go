// Package testing provides shared in-memory test fixtures for the planning
// services. The canonical scenario: product A uses 2x material X at 10%
// scrap plus one sub-assembly B, and B uses 3x material Y.
package testing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/planforge/mrp/pkg/domain/entities"
	"github.com/planforge/mrp/pkg/infrastructure/repositories/memory"
)

// DueDate is the fixed order due date used across fixtures.
var DueDate = time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

// Repos bundles the in-memory repositories of one scenario
type Repos struct {
	BOM       *memory.BOMRepository
	Items     *memory.ItemRepository
	Inventory *memory.InventoryRepository
	Orders    *memory.OrderRepository
}

// BuildPlanningTestData builds the canonical two-level BOM scenario:
//
//	PROD-A  = 2 x MAT-X (10% scrap) + 1 x SUB-B
//	SUB-B   = 3 x MAT-Y
//
// MAT-Y has one lot of 25 on hand with 5 reserved. Order ORD-1 demands 10
// of PROD-A; order ORD-2 references PROD-NOBOM, which has no active BOM.
func BuildPlanningTestData() *Repos {
	bomRepo := memory.NewBOMRepository()
	itemRepo := memory.NewItemRepository()
	inventoryRepo := memory.NewInventoryRepository()
	orderRepo := memory.NewOrderRepository()

	itemRepo.AddProduct(entities.Product{
		ID: "PROD-A", Code: "A", UnitOfMeasure: "pcs",
		LeadTimeDays: 5,
		LotSizeQty:   decimal.NewFromInt(5),
	})
	itemRepo.AddProduct(entities.Product{
		ID: "SUB-B", Code: "B", UnitOfMeasure: "pcs",
		LeadTimeDays: 3,
		LotSizeQty:   decimal.NewFromInt(10),
	})
	itemRepo.AddProduct(entities.Product{
		ID: "PROD-NOBOM", Code: "NOBOM", UnitOfMeasure: "pcs",
	})

	itemRepo.AddMaterial(entities.Material{
		ID: "MAT-X", Code: "X", UnitOfMeasure: "kg",
		LeadTimeDays: 7,
		LotSizeQty:   decimal.NewFromInt(10),
		MaxStockQty:  decimal.NewFromInt(100),
		CostPerUnit:  decimal.RequireFromString("4.50"),
	})
	itemRepo.AddMaterial(entities.Material{
		ID: "MAT-Y", Code: "Y", UnitOfMeasure: "pcs",
		LeadTimeDays:   14,
		SafetyStockQty: decimal.NewFromInt(8),
		LotSizeQty:     decimal.NewFromInt(25),
		MaxStockQty:    decimal.NewFromInt(60),
		CostPerUnit:    decimal.RequireFromString("2.00"),
	})

	mustAddHeader(bomRepo, entities.BOMHeader{ID: "BOM-A", ProductID: "PROD-A", Version: 1, IsActive: true})
	mustAddHeader(bomRepo, entities.BOMHeader{ID: "BOM-B", ProductID: "SUB-B", Version: 1, IsActive: true})

	bomRepo.AddLine(entities.BOMLine{
		BOMHeaderID: "BOM-A", ComponentType: entities.ComponentMaterial, ComponentID: "MAT-X",
		QuantityPer: decimal.NewFromInt(2), ScrapPercent: decimal.NewFromInt(10),
	})
	bomRepo.AddLine(entities.BOMLine{
		BOMHeaderID: "BOM-A", ComponentType: entities.ComponentProduct, ComponentID: "SUB-B",
		QuantityPer: decimal.NewFromInt(1), ScrapPercent: decimal.Zero,
	})
	bomRepo.AddLine(entities.BOMLine{
		BOMHeaderID: "BOM-B", ComponentType: entities.ComponentMaterial, ComponentID: "MAT-Y",
		QuantityPer: decimal.NewFromInt(3), ScrapPercent: decimal.Zero,
	})

	mustAddLot(inventoryRepo, entities.InventoryLot{
		ItemType: entities.ComponentMaterial, ItemID: "MAT-Y", LotNumber: "LOT-Y1",
		Quantity: decimal.NewFromInt(25), ReservedQuantity: decimal.NewFromInt(5),
		Status: entities.LotAvailable,
	})

	orderRepo.AddOrder(entities.ManufacturingOrder{
		ID: "ORD-1", Code: "MO-0001", DueDate: DueDate,
		Lines: []entities.OrderLine{{ProductID: "PROD-A", Quantity: decimal.NewFromInt(10)}},
	})
	orderRepo.AddOrder(entities.ManufacturingOrder{
		ID: "ORD-2", Code: "MO-0002", DueDate: DueDate,
		Lines: []entities.OrderLine{{ProductID: "PROD-NOBOM", Quantity: decimal.NewFromInt(4)}},
	})

	return &Repos{BOM: bomRepo, Items: itemRepo, Inventory: inventoryRepo, Orders: orderRepo}
}

// AddCyclicBOM wires PROD-C1 -> PROD-C2 -> PROD-C1 into the repositories
func AddCyclicBOM(r *Repos) {
	r.Items.AddProduct(entities.Product{ID: "PROD-C1", Code: "C1", UnitOfMeasure: "pcs"})
	r.Items.AddProduct(entities.Product{ID: "PROD-C2", Code: "C2", UnitOfMeasure: "pcs"})

	mustAddHeader(r.BOM, entities.BOMHeader{ID: "BOM-C1", ProductID: "PROD-C1", Version: 1, IsActive: true})
	mustAddHeader(r.BOM, entities.BOMHeader{ID: "BOM-C2", ProductID: "PROD-C2", Version: 1, IsActive: true})

	r.BOM.AddLine(entities.BOMLine{
		BOMHeaderID: "BOM-C1", ComponentType: entities.ComponentProduct, ComponentID: "PROD-C2",
		QuantityPer: decimal.NewFromInt(1), ScrapPercent: decimal.Zero,
	})
	r.BOM.AddLine(entities.BOMLine{
		BOMHeaderID: "BOM-C2", ComponentType: entities.ComponentProduct, ComponentID: "PROD-C1",
		QuantityPer: decimal.NewFromInt(1), ScrapPercent: decimal.Zero,
	})
}

// BuildCapacityTestData builds a one-period capacity scenario: PROD-A is
// milled then assembled, with a five-day calendar on each work center.
func BuildCapacityTestData() (*memory.WorkCenterRepository, []entities.PlanPeriod, map[entities.WorkCenterID][]*entities.CalendarEntry) {
	wcRepo := memory.NewWorkCenterRepository()

	wcRepo.AddWorkCenter(entities.WorkCenter{ID: "WC-MILL", Code: "MILL", CapacityUnitsPerHour: decimal.NewFromInt(4)})
	wcRepo.AddWorkCenter(entities.WorkCenter{ID: "WC-ASSY", Code: "ASSY", CapacityUnitsPerHour: decimal.NewFromInt(8)})

	wcRepo.AddRoutedOperation(entities.RoutedOperation{
		ProductID: "PROD-A", Sequence: 10, WorkCenterID: "WC-MILL",
		SetupTimeHours:      decimal.NewFromInt(1),
		RunTimePerUnitHours: decimal.RequireFromString("0.5"),
	})
	wcRepo.AddRoutedOperation(entities.RoutedOperation{
		ProductID: "PROD-A", Sequence: 20, WorkCenterID: "WC-ASSY",
		SetupTimeHours:      decimal.RequireFromString("0.5"),
		RunTimePerUnitHours: decimal.RequireFromString("0.25"),
	})

	periodStart := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	periods := []entities.PlanPeriod{{
		ID:        "P-2026-W37",
		StartDate: periodStart,
		EndDate:   periodStart.AddDate(0, 0, 6),
	}}

	calendars := make(map[entities.WorkCenterID][]*entities.CalendarEntry)
	for day := 0; day < 5; day++ {
		date := periodStart.AddDate(0, 0, day)
		calendars["WC-MILL"] = append(calendars["WC-MILL"], &entities.CalendarEntry{
			WorkCenterID: "WC-MILL", Date: date,
			AvailableHours:       decimal.NewFromInt(8),
			PlannedDowntimeHours: decimal.NewFromInt(1),
		})
		calendars["WC-ASSY"] = append(calendars["WC-ASSY"], &entities.CalendarEntry{
			WorkCenterID: "WC-ASSY", Date: date,
			AvailableHours: decimal.NewFromInt(8),
		})
	}

	return wcRepo, periods, calendars
}

func mustAddHeader(r *memory.BOMRepository, h entities.BOMHeader) {
	if err := r.AddHeader(h); err != nil {
		panic(err)
	}
}

func mustAddLot(r *memory.InventoryRepository, lot entities.InventoryLot) {
	if err := r.AddLot(lot); err != nil {
		panic(err)
	}
}
