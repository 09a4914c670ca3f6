// Package capacity validates a planned-production schedule against
// work-center hour capacity. Exceeding capacity is reported data, never an
// error; only structurally invalid input fails a check.
package capacity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/planforge/mrp/pkg/application/dto"
	"github.com/planforge/mrp/pkg/domain/entities"
	"github.com/planforge/mrp/pkg/domain/repositories"
	"github.com/planforge/mrp/pkg/infrastructure/metrics"
)

// epsilon guards the utilization division when a work center has no
// available hours in a period.
var epsilon = decimal.RequireFromString("0.0001")

// Service checks planned quantities against work-center calendars
type Service struct {
	workCenterRepo repositories.WorkCenterRepository
	logger         *slog.Logger
	metrics        *metrics.Planning
}

// NewService creates a capacity validator. The metrics instrument may be nil.
func NewService(workCenterRepo repositories.WorkCenterRepository, logger *slog.Logger, planningMetrics *metrics.Planning) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		workCenterRepo: workCenterRepo,
		logger:         logger,
		metrics:        planningMetrics,
	}
}

// CheckCapacity computes required versus available hours per period and
// work center for the given plan. Calendars are supplied by the planning
// collaborator as a snapshot keyed by work center. A plan entry referencing
// an unknown period or an operation referencing an unknown work center is a
// ValidationError; a product without a routing only yields a warning.
func (s *Service) CheckCapacity(
	ctx context.Context,
	entries []entities.PlanEntry,
	periods []entities.PlanPeriod,
	calendars map[entities.WorkCenterID][]*entities.CalendarEntry,
) (*dto.CapacityReport, error) {
	periodByID := make(map[entities.PeriodID]*entities.PlanPeriod, len(periods))
	for i := range periods {
		periodByID[periods[i].ID] = &periods[i]
	}

	report := &dto.CapacityReport{
		Utilization: make(map[entities.PeriodID]map[entities.WorkCenterID]entities.Utilization),
	}
	report.Summary.PeriodsChecked = len(periods)

	// requiredHours[period][workCenter] accumulated over all plan entries.
	requiredHours := make(map[entities.PeriodID]map[entities.WorkCenterID]decimal.Decimal)
	routingCache := make(map[entities.ProductID][]*entities.RoutedOperation)
	knownWorkCenters := make(map[entities.WorkCenterID]bool)

	for i := range entries {
		entry := &entries[i]
		if entry.PlannedQty.IsNegative() {
			return nil, entities.NewValidationError("plan entry for product %s has negative quantity %s", entry.ProductID, entry.PlannedQty)
		}
		if _, ok := periodByID[entry.PeriodID]; !ok {
			return nil, entities.NewValidationError("plan entry for product %s references unknown period %s", entry.ProductID, entry.PeriodID)
		}

		routing, cached := routingCache[entry.ProductID]
		if !cached {
			var err error
			routing, err = s.workCenterRepo.GetRouting(ctx, entry.ProductID)
			if err != nil {
				return nil, fmt.Errorf("failed to load routing for %s: %w", entry.ProductID, err)
			}
			routingCache[entry.ProductID] = routing
		}

		if len(routing) == 0 {
			report.Warnings = append(report.Warnings, entities.Warning{
				Kind:    entities.WarnDataIntegrity,
				Subject: string(entry.ProductID),
				Message: fmt.Sprintf("product %s has no routing; plan entry consumes no capacity", entry.ProductID),
			})
			continue
		}

		for _, op := range routing {
			if !knownWorkCenters[op.WorkCenterID] {
				if _, err := s.workCenterRepo.GetWorkCenter(ctx, op.WorkCenterID); err != nil {
					if isNotFound(err) {
						return nil, entities.NewValidationError("routing of product %s references unknown work center %s", entry.ProductID, op.WorkCenterID)
					}
					return nil, fmt.Errorf("failed to load work center %s: %w", op.WorkCenterID, err)
				}
				knownWorkCenters[op.WorkCenterID] = true
			}

			byWC, ok := requiredHours[entry.PeriodID]
			if !ok {
				byWC = make(map[entities.WorkCenterID]decimal.Decimal)
				requiredHours[entry.PeriodID] = byWC
			}
			byWC[op.WorkCenterID] = byWC[op.WorkCenterID].Add(op.HoursFor(entry.PlannedQty))
		}
	}

	s.buildReport(report, periodByID, requiredHours, calendars)
	s.metrics.ObserveCapacityCheck()

	s.logger.InfoContext(ctx, "capacity check complete",
		slog.Int("periods", report.Summary.PeriodsChecked),
		slog.Int("issues", report.Summary.TotalIssues))

	return report, nil
}

// buildReport turns accumulated hours into the utilization map and issue
// list. Issues are ordered by period then work center so identical inputs
// produce identical reports.
func (s *Service) buildReport(
	report *dto.CapacityReport,
	periodByID map[entities.PeriodID]*entities.PlanPeriod,
	requiredHours map[entities.PeriodID]map[entities.WorkCenterID]decimal.Decimal,
	calendars map[entities.WorkCenterID][]*entities.CalendarEntry,
) {
	periodIDs := make([]entities.PeriodID, 0, len(requiredHours))
	for id := range requiredHours {
		periodIDs = append(periodIDs, id)
	}
	sort.Slice(periodIDs, func(i, j int) bool { return periodIDs[i] < periodIDs[j] })

	for _, periodID := range periodIDs {
		period := periodByID[periodID]
		byWC := requiredHours[periodID]

		wcIDs := make([]entities.WorkCenterID, 0, len(byWC))
		for id := range byWC {
			wcIDs = append(wcIDs, id)
		}
		sort.Slice(wcIDs, func(i, j int) bool { return wcIDs[i] < wcIDs[j] })

		for _, wcID := range wcIDs {
			required := byWC[wcID]
			available, hasCalendar := availableHours(calendars[wcID], period)

			if !hasCalendar {
				report.Issues = append(report.Issues, entities.CapacityIssue{
					Kind:          entities.IssueWorkCenterUnavailable,
					PeriodID:      periodID,
					WorkCenterID:  wcID,
					RequiredHours: required,
					OverrunHours:  required,
				})
				continue
			}

			divisor := available
			if divisor.LessThan(epsilon) {
				divisor = epsilon
			}
			percent := required.Div(divisor).Mul(decimal.NewFromInt(100)).Round(2)

			util := entities.Utilization{
				RequiredHours:  required,
				AvailableHours: available,
				Percent:        percent,
			}
			if report.Utilization[periodID] == nil {
				report.Utilization[periodID] = make(map[entities.WorkCenterID]entities.Utilization)
			}
			report.Utilization[periodID][wcID] = util

			if required.GreaterThan(available) {
				report.Issues = append(report.Issues, entities.CapacityIssue{
					Kind:               entities.IssueOverload,
					PeriodID:           periodID,
					WorkCenterID:       wcID,
					RequiredHours:      required,
					AvailableHours:     available,
					OverrunHours:       required.Sub(available),
					UtilizationPercent: percent,
				})
			}
		}
	}

	report.HasIssues = len(report.Issues) > 0
	report.Summary.TotalIssues = len(report.Issues)
	report.Summary.CanProceed = !report.HasIssues
}

// availableHours sums net calendar hours falling inside the period. The
// second return value is false when the work center has no calendar entry
// in the period at all.
func availableHours(entries []*entities.CalendarEntry, period *entities.PlanPeriod) (decimal.Decimal, bool) {
	total := decimal.Zero
	found := false
	for _, entry := range entries {
		if !period.Contains(entry.Date) {
			continue
		}
		total = total.Add(entry.NetHours())
		found = true
	}
	return total, found
}

func isNotFound(err error) bool {
	var nf *entities.NotFoundError
	return errors.As(err, &nf)
}
