// Package csv loads planning scenarios from a directory of CSV files.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planforge/mrp/pkg/domain/entities"
)

const dateLayout = "2006-01-02"

// Scenario holds the full contents of a CSV scenario directory.
type Scenario struct {
	Materials   []*entities.Material
	Products    []*entities.Product
	BOMHeaders  []*entities.BOMHeader
	BOMLines    []*entities.BOMLine
	Lots        []*entities.InventoryLot
	Orders      []*entities.ManufacturingOrder
	WorkCenters []*entities.WorkCenter
	Calendars   []*entities.CalendarEntry
	Routings    []*entities.RoutedOperation
	Periods     []*entities.PlanPeriod
	Plan        []entities.PlanEntry
}

// HasCapacityData reports whether the scenario carries a production plan
// that can be capacity-checked.
func (s *Scenario) HasCapacityData() bool {
	return len(s.Plan) > 0 && len(s.Periods) > 0
}

// Loader handles loading planning data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadScenario loads all scenario files from a directory. Master data and
// orders are required; the capacity files (work_centers.csv, calendars.csv,
// routings.csv, periods.csv, plan.csv) and inventory.csv are optional.
func (l *Loader) LoadScenario(dir string) (*Scenario, error) {
	scenario := &Scenario{}
	var err error

	if scenario.Materials, err = l.LoadMaterials(filepath.Join(dir, "materials.csv")); err != nil {
		return nil, err
	}
	if scenario.Products, err = l.LoadProducts(filepath.Join(dir, "products.csv")); err != nil {
		return nil, err
	}
	if scenario.BOMHeaders, err = l.LoadBOMHeaders(filepath.Join(dir, "bom_headers.csv")); err != nil {
		return nil, err
	}
	if scenario.BOMLines, err = l.LoadBOMLines(filepath.Join(dir, "bom_lines.csv")); err != nil {
		return nil, err
	}
	if scenario.Orders, err = l.LoadOrders(filepath.Join(dir, "orders.csv")); err != nil {
		return nil, err
	}

	if scenario.Lots, err = l.LoadInventory(filepath.Join(dir, "inventory.csv")); ignoreMissing(err) != nil {
		return nil, err
	}
	if scenario.WorkCenters, err = l.LoadWorkCenters(filepath.Join(dir, "work_centers.csv")); ignoreMissing(err) != nil {
		return nil, err
	}
	if scenario.Calendars, err = l.LoadCalendars(filepath.Join(dir, "calendars.csv")); ignoreMissing(err) != nil {
		return nil, err
	}
	if scenario.Routings, err = l.LoadRoutings(filepath.Join(dir, "routings.csv")); ignoreMissing(err) != nil {
		return nil, err
	}
	if scenario.Periods, err = l.LoadPeriods(filepath.Join(dir, "periods.csv")); ignoreMissing(err) != nil {
		return nil, err
	}
	if scenario.Plan, err = l.LoadPlan(filepath.Join(dir, "plan.csv")); ignoreMissing(err) != nil {
		return nil, err
	}

	return scenario, nil
}

// LoadMaterials loads material master records from a CSV file
func (l *Loader) LoadMaterials(filename string) ([]*entities.Material, error) {
	header := []string{
		"id", "code", "description", "unit_of_measure", "lead_time_days",
		"reorder_point", "safety_stock_qty", "lot_size_qty", "max_stock_qty",
		"cost_per_unit", "lot_controlled", "default_supplier",
	}
	return loadFile(filename, "materials", header, func(record []string) (*entities.Material, error) {
		leadTime, err := strconv.Atoi(record[4])
		if err != nil {
			return nil, fmt.Errorf("invalid lead_time_days: %s", record[4])
		}
		cost, err := parseDecimal("cost_per_unit", record[9])
		if err != nil {
			return nil, err
		}

		material, err := entities.NewMaterial(entities.MaterialID(record[0]), record[1], record[3], leadTime, cost)
		if err != nil {
			return nil, err
		}
		material.Description = record[2]
		material.DefaultSupplier = record[11]
		material.LotControlled = strings.EqualFold(record[10], "true")

		if material.ReorderPoint, err = parseDecimal("reorder_point", record[5]); err != nil {
			return nil, err
		}
		if material.SafetyStockQty, err = parseDecimal("safety_stock_qty", record[6]); err != nil {
			return nil, err
		}
		if material.LotSizeQty, err = parseDecimal("lot_size_qty", record[7]); err != nil {
			return nil, err
		}
		if material.MaxStockQty, err = parseDecimal("max_stock_qty", record[8]); err != nil {
			return nil, err
		}
		return material, nil
	})
}

// LoadProducts loads product master records from a CSV file
func (l *Loader) LoadProducts(filename string) ([]*entities.Product, error) {
	header := []string{
		"id", "code", "description", "unit_of_measure", "lead_time_days",
		"safety_stock_qty", "lot_size_qty",
	}
	return loadFile(filename, "products", header, func(record []string) (*entities.Product, error) {
		leadTime, err := strconv.Atoi(record[4])
		if err != nil {
			return nil, fmt.Errorf("invalid lead_time_days: %s", record[4])
		}
		safetyStock, err := parseDecimal("safety_stock_qty", record[5])
		if err != nil {
			return nil, err
		}
		lotSize, err := parseDecimal("lot_size_qty", record[6])
		if err != nil {
			return nil, err
		}

		product, err := entities.NewProduct(entities.ProductID(record[0]), record[1], record[3], leadTime, safetyStock, lotSize)
		if err != nil {
			return nil, err
		}
		product.Description = record[2]
		return product, nil
	})
}

// LoadBOMHeaders loads BOM versions from a CSV file
func (l *Loader) LoadBOMHeaders(filename string) ([]*entities.BOMHeader, error) {
	header := []string{"id", "product_id", "version", "effective_date", "is_active"}
	return loadFile(filename, "bom_headers", header, func(record []string) (*entities.BOMHeader, error) {
		version, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, fmt.Errorf("invalid version: %s", record[2])
		}
		effective, err := time.Parse(dateLayout, record[3])
		if err != nil {
			return nil, fmt.Errorf("invalid effective_date: %s (expected YYYY-MM-DD)", record[3])
		}
		return &entities.BOMHeader{
			ID:            entities.BOMHeaderID(record[0]),
			ProductID:     entities.ProductID(record[1]),
			Version:       version,
			EffectiveDate: effective,
			IsActive:      strings.EqualFold(record[4], "true"),
		}, nil
	})
}

// LoadBOMLines loads BOM component lines from a CSV file
func (l *Loader) LoadBOMLines(filename string) ([]*entities.BOMLine, error) {
	header := []string{"bom_header_id", "component_type", "component_id", "quantity_per", "scrap_percent"}
	return loadFile(filename, "bom_lines", header, func(record []string) (*entities.BOMLine, error) {
		componentType, err := parseComponentType(record[1])
		if err != nil {
			return nil, err
		}
		quantityPer, err := parseDecimal("quantity_per", record[3])
		if err != nil {
			return nil, err
		}
		scrapPercent, err := parseDecimal("scrap_percent", record[4])
		if err != nil {
			return nil, err
		}
		return entities.NewBOMLine(entities.BOMHeaderID(record[0]), componentType, record[2], quantityPer, scrapPercent)
	})
}

// LoadInventory loads inventory lots from a CSV file
func (l *Loader) LoadInventory(filename string) ([]*entities.InventoryLot, error) {
	header := []string{"item_type", "item_id", "lot_number", "quantity", "reserved_quantity", "expiry_date", "status"}
	return loadFile(filename, "inventory", header, func(record []string) (*entities.InventoryLot, error) {
		itemType, err := parseComponentType(record[0])
		if err != nil {
			return nil, err
		}
		quantity, err := parseDecimal("quantity", record[3])
		if err != nil {
			return nil, err
		}
		reserved, err := parseDecimal("reserved_quantity", record[4])
		if err != nil {
			return nil, err
		}

		// Empty expiry_date means the lot never expires.
		var expiry time.Time
		if record[5] != "" {
			if expiry, err = time.Parse(dateLayout, record[5]); err != nil {
				return nil, fmt.Errorf("invalid expiry_date: %s (expected YYYY-MM-DD or empty)", record[5])
			}
		}

		status, err := parseLotStatusCSV(record[6])
		if err != nil {
			return nil, err
		}
		return entities.NewInventoryLot(itemType, record[1], record[2], quantity, reserved, expiry, status)
	})
}

// LoadOrders loads manufacturing orders from a CSV file. Each row is one
// order line; rows sharing an order_id are grouped into a single order.
func (l *Loader) LoadOrders(filename string) ([]*entities.ManufacturingOrder, error) {
	header := []string{"order_id", "order_code", "due_date", "product_id", "quantity"}

	type row struct {
		orderID entities.OrderID
		code    string
		dueDate time.Time
		line    entities.OrderLine
	}

	rows, err := loadFile(filename, "orders", header, func(record []string) (*row, error) {
		dueDate, err := time.Parse(dateLayout, record[2])
		if err != nil {
			return nil, fmt.Errorf("invalid due_date: %s (expected YYYY-MM-DD)", record[2])
		}
		quantity, err := parseDecimal("quantity", record[4])
		if err != nil {
			return nil, err
		}
		line, err := entities.NewOrderLine(entities.ProductID(record[3]), quantity)
		if err != nil {
			return nil, err
		}
		return &row{
			orderID: entities.OrderID(record[0]),
			code:    record[1],
			dueDate: dueDate,
			line:    *line,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[entities.OrderID]*entities.ManufacturingOrder)
	orders := make([]*entities.ManufacturingOrder, 0)
	for _, r := range rows {
		order, ok := byID[r.orderID]
		if !ok {
			order = &entities.ManufacturingOrder{ID: r.orderID, Code: r.code, DueDate: r.dueDate}
			byID[r.orderID] = order
			orders = append(orders, order)
		}
		order.Lines = append(order.Lines, r.line)
	}
	return orders, nil
}

// LoadWorkCenters loads work centers from a CSV file
func (l *Loader) LoadWorkCenters(filename string) ([]*entities.WorkCenter, error) {
	header := []string{"id", "code", "description", "capacity_units_per_hour"}
	return loadFile(filename, "work_centers", header, func(record []string) (*entities.WorkCenter, error) {
		capacity, err := parseDecimal("capacity_units_per_hour", record[3])
		if err != nil {
			return nil, err
		}
		return &entities.WorkCenter{
			ID:                   entities.WorkCenterID(record[0]),
			Code:                 record[1],
			Description:          record[2],
			CapacityUnitsPerHour: capacity,
		}, nil
	})
}

// LoadCalendars loads work-center calendar days from a CSV file
func (l *Loader) LoadCalendars(filename string) ([]*entities.CalendarEntry, error) {
	header := []string{"work_center_id", "date", "available_hours", "planned_downtime_hours"}
	return loadFile(filename, "calendars", header, func(record []string) (*entities.CalendarEntry, error) {
		date, err := time.Parse(dateLayout, record[1])
		if err != nil {
			return nil, fmt.Errorf("invalid date: %s (expected YYYY-MM-DD)", record[1])
		}
		available, err := parseDecimal("available_hours", record[2])
		if err != nil {
			return nil, err
		}
		downtime, err := parseDecimal("planned_downtime_hours", record[3])
		if err != nil {
			return nil, err
		}
		return entities.NewCalendarEntry(entities.WorkCenterID(record[0]), date, available, downtime)
	})
}

// LoadRoutings loads routed operations from a CSV file
func (l *Loader) LoadRoutings(filename string) ([]*entities.RoutedOperation, error) {
	header := []string{"product_id", "sequence", "work_center_id", "setup_time_hours", "run_time_per_unit_hours"}
	return loadFile(filename, "routings", header, func(record []string) (*entities.RoutedOperation, error) {
		sequence, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("invalid sequence: %s", record[1])
		}
		setup, err := parseDecimal("setup_time_hours", record[3])
		if err != nil {
			return nil, err
		}
		runPerUnit, err := parseDecimal("run_time_per_unit_hours", record[4])
		if err != nil {
			return nil, err
		}
		return &entities.RoutedOperation{
			ProductID:           entities.ProductID(record[0]),
			Sequence:            sequence,
			WorkCenterID:        entities.WorkCenterID(record[2]),
			SetupTimeHours:      setup,
			RunTimePerUnitHours: runPerUnit,
		}, nil
	})
}

// LoadPeriods loads planning periods from a CSV file
func (l *Loader) LoadPeriods(filename string) ([]*entities.PlanPeriod, error) {
	header := []string{"id", "start_date", "end_date"}
	return loadFile(filename, "periods", header, func(record []string) (*entities.PlanPeriod, error) {
		start, err := time.Parse(dateLayout, record[1])
		if err != nil {
			return nil, fmt.Errorf("invalid start_date: %s (expected YYYY-MM-DD)", record[1])
		}
		end, err := time.Parse(dateLayout, record[2])
		if err != nil {
			return nil, fmt.Errorf("invalid end_date: %s (expected YYYY-MM-DD)", record[2])
		}
		if end.Before(start) {
			return nil, fmt.Errorf("end_date %s before start_date %s", record[2], record[1])
		}
		return &entities.PlanPeriod{ID: entities.PeriodID(record[0]), StartDate: start, EndDate: end}, nil
	})
}

// LoadPlan loads production plan entries from a CSV file
func (l *Loader) LoadPlan(filename string) ([]entities.PlanEntry, error) {
	header := []string{"product_id", "period_id", "planned_qty"}
	entries, err := loadFile(filename, "plan", header, func(record []string) (*entities.PlanEntry, error) {
		qty, err := parseDecimal("planned_qty", record[2])
		if err != nil {
			return nil, err
		}
		return &entities.PlanEntry{
			ProductID:  entities.ProductID(record[0]),
			PeriodID:   entities.PeriodID(record[1]),
			PlannedQty: qty,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	plan := make([]entities.PlanEntry, 0, len(entries))
	for _, e := range entries {
		plan = append(plan, *e)
	}
	return plan, nil
}

// Helper functions for parsing CSV records

func loadFile[T any](filename, name string, expectedHeader []string, parse func([]string) (*T, error)) ([]*T, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", name, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", name, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s CSV must have a header row", name)
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", name, expectedHeader, records[0])
	}

	results := make([]*T, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", name, i+2, len(expectedHeader), len(record))
		}
		parsed, err := parse(record)
		if err != nil {
			return nil, fmt.Errorf("%s CSV row %d: %w", name, i+2, err)
		}
		results = append(results, parsed)
	}
	return results, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}

func parseDecimal(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %s", field, value)
	}
	return d, nil
}

func parseComponentType(s string) (entities.ComponentType, error) {
	switch strings.ToLower(s) {
	case "material":
		return entities.ComponentMaterial, nil
	case "product":
		return entities.ComponentProduct, nil
	default:
		return entities.ComponentMaterial, fmt.Errorf("invalid component type: %s (expected 'material' or 'product')", s)
	}
}

func parseLotStatusCSV(s string) (entities.LotStatus, error) {
	switch strings.ToLower(s) {
	case "available":
		return entities.LotAvailable, nil
	case "quarantine":
		return entities.LotQuarantine, nil
	case "blocked":
		return entities.LotBlocked, nil
	default:
		return entities.LotAvailable, fmt.Errorf("invalid status: %s (expected Available, Quarantine, or Blocked)", s)
	}
}

// ignoreMissing keeps "file does not exist" out of the caller's error path
// for optional scenario files.
func ignoreMissing(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
