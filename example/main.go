package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planforge/mrp/pkg/application/services/explosion"
	"github.com/planforge/mrp/pkg/application/services/mrp"
	"github.com/planforge/mrp/pkg/application/services/netting"
	"github.com/planforge/mrp/pkg/application/services/suggestion"
	"github.com/planforge/mrp/pkg/domain/entities"
	"github.com/planforge/mrp/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Create repositories
	bomRepo := memory.NewBOMRepository()
	itemRepo := memory.NewItemRepository()
	inventoryRepo := memory.NewInventoryRepository()
	orderRepo := memory.NewOrderRepository()

	// Set up a small bicycle BOM
	setupBicycleBOM(bomRepo, itemRepo, inventoryRepo)

	// Create planning services
	explosionSvc := explosion.NewService(bomRepo, itemRepo, nil)
	nettingSvc := netting.NewService(inventoryRepo, itemRepo, nil)
	mrpSvc := mrp.NewService(orderRepo, explosionSvc, nettingSvc, netting.Policy{}, nil, nil)
	suggestionSvc := suggestion.NewService(bomRepo, itemRepo, itemRepo, nil)

	// Define an order for a production batch
	dueDate := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	orderRepo.AddOrder(entities.ManufacturingOrder{
		ID:      "ORD-1001",
		Code:    "MO-1001",
		DueDate: dueDate,
		Lines: []entities.OrderLine{
			{ProductID: "BICYCLE", Quantity: decimal.NewFromInt(50)},
		},
	})

	fmt.Println("🚲 Running MRP for the bicycle batch...")
	fmt.Printf("Demand: 50 bicycles due %s\n\n", dueDate.Format("2006-01-02"))

	// Execute MRP
	report, err := mrpSvc.RunMRP(ctx, "ORD-1001")
	if err != nil {
		fmt.Printf("❌ MRP failed: %v\n", err)
		return
	}

	// Display results
	fmt.Println("📊 MRP Results:")
	fmt.Printf("  Materials: %d\n", report.Summary.TotalMaterials)
	fmt.Printf("  Shortages: %d\n", report.Summary.MaterialsWithShortage)
	fmt.Printf("  Shortage Value: %s\n\n", report.Summary.TotalShortageValue.StringFixed(2))

	fmt.Println("📝 Requirements:")
	for _, req := range report.Requirements {
		fmt.Printf("  %s: gross %s, available %s, net %s\n",
			req.MaterialID,
			req.GrossRequirement.String(),
			req.AvailableQty.String(),
			req.NetRequirement.String())
	}
	fmt.Println()

	// Generate replenishment suggestions
	suggestions, err := suggestionSvc.Suggest(ctx, report.Requirements, dueDate, suggestion.Policy{})
	if err != nil {
		fmt.Printf("❌ Suggestion generation failed: %v\n", err)
		return
	}

	fmt.Println("🛒 Suggestions:")
	for _, s := range suggestions {
		fmt.Printf("  %s %s: qty %s, start by %s (%s)\n",
			s.OrderType.String(),
			s.MaterialID,
			s.Quantity.String(),
			s.SuggestedDate.Format("2006-01-02"),
			s.Urgency.String())
	}
}

func setupBicycleBOM(bomRepo *memory.BOMRepository, itemRepo *memory.ItemRepository, inventoryRepo *memory.InventoryRepository) {
	// Products
	itemRepo.AddProduct(entities.Product{
		ID: "BICYCLE", Code: "P-BIKE", UnitOfMeasure: "pcs",
		LeadTimeDays: 5, LotSizeQty: decimal.NewFromInt(10),
	})
	itemRepo.AddProduct(entities.Product{
		ID: "WHEEL_ASSY", Code: "P-WHEEL", UnitOfMeasure: "pcs",
		LeadTimeDays: 3, LotSizeQty: decimal.NewFromInt(20),
	})

	// Materials
	itemRepo.AddMaterial(entities.Material{
		ID: "FRAME", Code: "M-FRAME", UnitOfMeasure: "pcs",
		LeadTimeDays: 14, CostPerUnit: decimal.RequireFromString("85.00"),
		LotSizeQty: decimal.NewFromInt(25),
	})
	itemRepo.AddMaterial(entities.Material{
		ID: "SPOKE", Code: "M-SPOKE", UnitOfMeasure: "pcs",
		LeadTimeDays: 7, CostPerUnit: decimal.RequireFromString("0.40"),
		LotSizeQty: decimal.NewFromInt(500),
	})
	itemRepo.AddMaterial(entities.Material{
		ID: "RIM", Code: "M-RIM", UnitOfMeasure: "pcs",
		LeadTimeDays: 10, CostPerUnit: decimal.RequireFromString("12.50"),
	})

	// BICYCLE = 1 FRAME + 2 WHEEL_ASSY
	_ = bomRepo.AddHeader(entities.BOMHeader{ID: "BOM-BIKE-1", ProductID: "BICYCLE", Version: 1, IsActive: true})
	bomRepo.AddLine(entities.BOMLine{
		BOMHeaderID: "BOM-BIKE-1", ComponentType: entities.ComponentMaterial,
		ComponentID: "FRAME", QuantityPer: decimal.NewFromInt(1), ScrapPercent: decimal.NewFromInt(2),
	})
	bomRepo.AddLine(entities.BOMLine{
		BOMHeaderID: "BOM-BIKE-1", ComponentType: entities.ComponentProduct,
		ComponentID: "WHEEL_ASSY", QuantityPer: decimal.NewFromInt(2), ScrapPercent: decimal.Zero,
	})

	// WHEEL_ASSY = 1 RIM + 36 SPOKE
	_ = bomRepo.AddHeader(entities.BOMHeader{ID: "BOM-WHEEL-1", ProductID: "WHEEL_ASSY", Version: 1, IsActive: true})
	bomRepo.AddLine(entities.BOMLine{
		BOMHeaderID: "BOM-WHEEL-1", ComponentType: entities.ComponentMaterial,
		ComponentID: "RIM", QuantityPer: decimal.NewFromInt(1), ScrapPercent: decimal.Zero,
	})
	bomRepo.AddLine(entities.BOMLine{
		BOMHeaderID: "BOM-WHEEL-1", ComponentType: entities.ComponentMaterial,
		ComponentID: "SPOKE", QuantityPer: decimal.NewFromInt(36), ScrapPercent: decimal.NewFromInt(5),
	})

	// Stock on hand
	_ = inventoryRepo.AddLot(entities.InventoryLot{
		ItemType: entities.ComponentMaterial, ItemID: "FRAME", LotNumber: "LOT-F1",
		Quantity: decimal.NewFromInt(30), ReservedQuantity: decimal.NewFromInt(5),
		Status: entities.LotAvailable,
	})
	_ = inventoryRepo.AddLot(entities.InventoryLot{
		ItemType: entities.ComponentMaterial, ItemID: "SPOKE", LotNumber: "LOT-S1",
		Quantity: decimal.NewFromInt(2000), ReservedQuantity: decimal.Zero,
		Status: entities.LotAvailable,
	})
}
