package csv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func writeCoreScenario(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, dir, "materials.csv",
		"id,code,description,unit_of_measure,lead_time_days,reorder_point,safety_stock_qty,lot_size_qty,max_stock_qty,cost_per_unit,lot_controlled,default_supplier\n"+
			"MAT-X,M-100,Steel rod,kg,7,0,0,10,100,4.50,true,ACME\n")
	writeFile(t, dir, "products.csv",
		"id,code,description,unit_of_measure,lead_time_days,safety_stock_qty,lot_size_qty\n"+
			"PROD-A,P-100,Widget,pcs,5,0,5\n")
	writeFile(t, dir, "bom_headers.csv",
		"id,product_id,version,effective_date,is_active\n"+
			"BOM-A2,PROD-A,2,2026-01-01,true\n")
	writeFile(t, dir, "bom_lines.csv",
		"bom_header_id,component_type,component_id,quantity_per,scrap_percent\n"+
			"BOM-A2,material,MAT-X,2,10\n")
	writeFile(t, dir, "orders.csv",
		"order_id,order_code,due_date,product_id,quantity\n"+
			"ORD-1,MO-0001,2026-09-30,PROD-A,10\n"+
			"ORD-1,MO-0001,2026-09-30,PROD-B,4\n"+
			"ORD-2,MO-0002,2026-10-15,PROD-A,1\n")
}

func TestLoadScenario_CoreFiles(t *testing.T) {
	dir := t.TempDir()
	writeCoreScenario(t, dir)

	scenario, err := NewLoader().LoadScenario(dir)
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}

	if len(scenario.Materials) != 1 {
		t.Fatalf("expected 1 material, got %d", len(scenario.Materials))
	}
	material := scenario.Materials[0]
	if !material.CostPerUnit.Equal(decimal.RequireFromString("4.50")) {
		t.Errorf("expected cost 4.50, got %s", material.CostPerUnit)
	}
	if !material.LotControlled {
		t.Error("expected lot_controlled true")
	}

	if len(scenario.BOMLines) != 1 {
		t.Fatalf("expected 1 BOM line, got %d", len(scenario.BOMLines))
	}
	if !scenario.BOMLines[0].ScrapPercent.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected scrap 10, got %s", scenario.BOMLines[0].ScrapPercent)
	}

	// Capacity files absent: scenario loads, capacity check is skipped.
	if scenario.HasCapacityData() {
		t.Error("expected no capacity data")
	}
}

func TestLoadOrders_GroupsLinesByOrder(t *testing.T) {
	dir := t.TempDir()
	writeCoreScenario(t, dir)

	orders, err := NewLoader().LoadOrders(filepath.Join(dir, "orders.csv"))
	if err != nil {
		t.Fatalf("LoadOrders failed: %v", err)
	}

	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != "ORD-1" || len(orders[0].Lines) != 2 {
		t.Errorf("expected ORD-1 with 2 lines, got %s with %d", orders[0].ID, len(orders[0].Lines))
	}
	if orders[1].ID != "ORD-2" || len(orders[1].Lines) != 1 {
		t.Errorf("expected ORD-2 with 1 line, got %s with %d", orders[1].ID, len(orders[1].Lines))
	}
}

func TestLoadMaterials_HeaderMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "materials.csv", "part_number,description\nMAT-X,Steel rod\n")

	if _, err := NewLoader().LoadMaterials(filepath.Join(dir, "materials.csv")); err == nil {
		t.Error("expected header mismatch error")
	}
}

func TestLoadInventory_EmptyExpiryNeverExpires(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "inventory.csv",
		"item_type,item_id,lot_number,quantity,reserved_quantity,expiry_date,status\n"+
			"material,MAT-X,LOT-1,25,5,,Available\n"+
			"material,MAT-X,LOT-2,10,0,2026-03-01,Quarantine\n")

	lots, err := NewLoader().LoadInventory(filepath.Join(dir, "inventory.csv"))
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	if len(lots) != 2 {
		t.Fatalf("expected 2 lots, got %d", len(lots))
	}
	if !lots[0].ExpiryDate.IsZero() {
		t.Errorf("expected zero expiry for empty expiry_date, got %v", lots[0].ExpiryDate)
	}
	if !lots[0].UnreservedQty().Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected unreserved 20, got %s", lots[0].UnreservedQty())
	}
	if lots[1].ExpiryDate.IsZero() {
		t.Error("expected parsed expiry date for LOT-2")
	}
}

func TestLoadBOMLines_RejectsBadScrap(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bom_lines.csv",
		"bom_header_id,component_type,component_id,quantity_per,scrap_percent\n"+
			"BOM-A2,material,MAT-X,2,100\n")

	if _, err := NewLoader().LoadBOMLines(filepath.Join(dir, "bom_lines.csv")); err == nil {
		t.Error("expected scrap percent 100 to be rejected")
	}
}
