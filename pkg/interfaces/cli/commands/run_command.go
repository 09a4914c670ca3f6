// Package commands wires scenario data through the planning services for
// the CLI.
package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/planforge/mrp/pkg/application/dto"
	"github.com/planforge/mrp/pkg/application/services/capacity"
	"github.com/planforge/mrp/pkg/application/services/explosion"
	"github.com/planforge/mrp/pkg/application/services/mrp"
	"github.com/planforge/mrp/pkg/application/services/netting"
	"github.com/planforge/mrp/pkg/application/services/suggestion"
	"github.com/planforge/mrp/pkg/domain/entities"
	appconfig "github.com/planforge/mrp/pkg/infrastructure/config"
	"github.com/planforge/mrp/pkg/infrastructure/logger"
	"github.com/planforge/mrp/pkg/infrastructure/metrics"
	"github.com/planforge/mrp/pkg/infrastructure/repositories/csv"
	"github.com/planforge/mrp/pkg/infrastructure/repositories/memory"
	"github.com/planforge/mrp/pkg/interfaces/cli/output"
)

// Config holds configuration for the run command
type Config struct {
	ScenarioDir string
	ConfigFile  string
	Format      string
	OutputPath  string
	Help        bool
}

// RunCommand loads a CSV scenario, runs MRP for every order and a capacity
// check for the plan, and renders the results.
type RunCommand struct {
	config Config
}

// NewRunCommand creates a new run command with the given configuration
func NewRunCommand(config Config) *RunCommand {
	return &RunCommand{config: config}
}

// Execute runs the command
func (c *RunCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if c.config.ScenarioDir == "" {
		return fmt.Errorf("missing required -scenario flag (use -help for usage)")
	}

	appCfg := appconfig.Config{}
	if c.config.ConfigFile != "" {
		loaded, err := appconfig.Load(c.config.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		appCfg = loaded
	}
	if appCfg.Planning.MaxBOMDepth == 0 {
		appCfg.Planning.MaxBOMDepth = explosion.DefaultMaxDepth
	}

	log := logger.New(appCfg.App.Env)

	var planningMetrics *metrics.Planning
	if appCfg.Metrics.Enabled {
		planningMetrics = metrics.NewPlanning(prometheus.NewRegistry())
	}

	scenario, err := csv.NewLoader().LoadScenario(c.config.ScenarioDir)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	repos, err := buildRepositories(scenario)
	if err != nil {
		return fmt.Errorf("failed to build repositories: %w", err)
	}

	nettingPolicy := netting.Policy{
		IncludeExpired:      appCfg.Planning.IncludeExpiredLots,
		SubtractSafetyStock: appCfg.Planning.SubtractSafetyStock,
	}

	explosionSvc := explosion.NewServiceWithDepth(repos.bom, repos.items, appCfg.Planning.MaxBOMDepth, log)
	nettingSvc := netting.NewService(repos.inventory, repos.items, log)
	mrpSvc := mrp.NewService(repos.orders, explosionSvc, nettingSvc, nettingPolicy, log, planningMetrics)
	suggestionSvc := suggestion.NewService(repos.bom, repos.items, repos.items, log)
	capacitySvc := capacity.NewService(repos.workCenters, log, planningMetrics)

	result := &output.RunResult{}

	for _, order := range scenario.Orders {
		report, err := mrpSvc.RunMRP(ctx, order.ID)
		if err != nil {
			return fmt.Errorf("MRP run failed for order %s: %w", order.ID, err)
		}

		suggestions, err := suggestionSvc.Suggest(ctx, report.Requirements, order.DueDate, suggestion.Policy{})
		if err != nil {
			return fmt.Errorf("suggestion generation failed for order %s: %w", order.ID, err)
		}

		result.Orders = append(result.Orders, output.OrderResult{
			Report:      report,
			Suggestions: suggestions,
		})
	}

	if scenario.HasCapacityData() {
		capacityReport, err := checkCapacity(ctx, capacitySvc, scenario)
		if err != nil {
			return fmt.Errorf("capacity check failed: %w", err)
		}
		result.Capacity = capacityReport
	}

	// The workbook carries the material catalog as a reference sheet.
	if c.config.Format == "xlsx" {
		materials, err := repos.items.GetAllMaterials(ctx)
		if err != nil {
			return fmt.Errorf("failed to load material catalog: %w", err)
		}
		sort.Slice(materials, func(i, j int) bool { return materials[i].ID < materials[j].ID })
		result.Materials = materials
	}

	return output.Generate(result, output.Config{
		Format:     c.config.Format,
		OutputPath: c.config.OutputPath,
	})
}

type scenarioRepos struct {
	bom         *memory.BOMRepository
	items       *memory.ItemRepository
	inventory   *memory.InventoryRepository
	orders      *memory.OrderRepository
	workCenters *memory.WorkCenterRepository
}

func buildRepositories(scenario *csv.Scenario) (*scenarioRepos, error) {
	repos := &scenarioRepos{
		bom:         memory.NewBOMRepository(),
		items:       memory.NewItemRepository(),
		inventory:   memory.NewInventoryRepository(),
		orders:      memory.NewOrderRepository(),
		workCenters: memory.NewWorkCenterRepository(),
	}

	for _, m := range scenario.Materials {
		repos.items.AddMaterial(*m)
	}
	for _, p := range scenario.Products {
		repos.items.AddProduct(*p)
	}
	for _, h := range scenario.BOMHeaders {
		if err := repos.bom.AddHeader(*h); err != nil {
			return nil, err
		}
	}
	for _, line := range scenario.BOMLines {
		repos.bom.AddLine(*line)
	}
	for _, lot := range scenario.Lots {
		if err := repos.inventory.AddLot(*lot); err != nil {
			return nil, err
		}
	}
	for _, order := range scenario.Orders {
		repos.orders.AddOrder(*order)
	}
	for _, wc := range scenario.WorkCenters {
		repos.workCenters.AddWorkCenter(*wc)
	}
	for _, entry := range scenario.Calendars {
		repos.workCenters.AddCalendarEntry(*entry)
	}
	for _, op := range scenario.Routings {
		repos.workCenters.AddRoutedOperation(*op)
	}
	return repos, nil
}

func checkCapacity(ctx context.Context, svc *capacity.Service, scenario *csv.Scenario) (*dto.CapacityReport, error) {
	periods := make([]entities.PlanPeriod, 0, len(scenario.Periods))
	for _, p := range scenario.Periods {
		periods = append(periods, *p)
	}

	calendars := make(map[entities.WorkCenterID][]*entities.CalendarEntry)
	for _, entry := range scenario.Calendars {
		calendars[entry.WorkCenterID] = append(calendars[entry.WorkCenterID], entry)
	}
	for _, entries := range calendars {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })
	}

	return svc.CheckCapacity(ctx, scenario.Plan, periods, calendars)
}

func (c *RunCommand) showHelp() {
	fmt.Println(`mrp - material requirements planning

Usage:
  mrp -scenario <dir> [-config <file>] [-format text|xlsx] [-output <path>]

The scenario directory must contain materials.csv, products.csv,
bom_headers.csv, bom_lines.csv and orders.csv. inventory.csv,
work_centers.csv, calendars.csv, routings.csv, periods.csv and plan.csv
are optional; a capacity check runs when periods.csv and plan.csv are
present.

Flags:
  -scenario   Path to scenario directory containing CSV files
  -config     Path to a config file (viper format)
  -format     Output format: text (default) or xlsx
  -output     Output path for the xlsx workbook
  -help       Show this help message`)
}
