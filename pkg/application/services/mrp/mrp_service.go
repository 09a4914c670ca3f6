// Package mrp orchestrates a full material-requirements run for one
// manufacturing order: per-line BOM explosion, merge of gross demand,
// a single netting pass, and report assembly.
package mrp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/planforge/mrp/pkg/application/dto"
	"github.com/planforge/mrp/pkg/application/services/explosion"
	"github.com/planforge/mrp/pkg/application/services/netting"
	"github.com/planforge/mrp/pkg/domain/entities"
	"github.com/planforge/mrp/pkg/domain/repositories"
	"github.com/planforge/mrp/pkg/infrastructure/metrics"
)

// Service drives the explosion and netting engines for manufacturing
// orders. It performs no writes: repeated runs over an unchanged snapshot
// yield value-identical reports.
type Service struct {
	orderRepo     repositories.OrderRepository
	explosionSvc  *explosion.Service
	nettingSvc    *netting.Service
	nettingPolicy netting.Policy
	logger        *slog.Logger
	metrics       *metrics.Planning
}

// NewService creates an MRP orchestrator. The metrics instrument may be nil.
func NewService(
	orderRepo repositories.OrderRepository,
	explosionSvc *explosion.Service,
	nettingSvc *netting.Service,
	nettingPolicy netting.Policy,
	logger *slog.Logger,
	planningMetrics *metrics.Planning,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		orderRepo:     orderRepo,
		explosionSvc:  explosionSvc,
		nettingSvc:    nettingSvc,
		nettingPolicy: nettingPolicy,
		logger:        logger,
		metrics:       planningMetrics,
	}
}

// RunMRP computes the material requirements report for an order. Line-level
// explosion problems downgrade to warnings as long as at least one line can
// be processed; an absent order, a BOM cycle or malformed input fail the
// whole run.
func (s *Service) RunMRP(ctx context.Context, orderID entities.OrderID) (*dto.MRPReport, error) {
	started := time.Now()
	report, err := s.run(ctx, orderID, started)

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	s.metrics.ObserveRun(outcome, time.Since(started))

	return report, err
}

func (s *Service) run(ctx context.Context, orderID entities.OrderID, started time.Time) (*dto.MRPReport, error) {
	order, err := s.orderRepo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve order %s: %w", orderID, err)
	}

	gross := make(map[entities.MaterialID]decimal.Decimal)
	var warnings []entities.Warning
	succeeded := 0
	failed := 0

	for _, line := range order.Lines {
		if line.Quantity.IsNegative() {
			return nil, entities.NewValidationError("order %s line for product %s has negative quantity %s", orderID, line.ProductID, line.Quantity)
		}

		lineResult, err := s.explosionSvc.Explode(ctx, line.ProductID, line.Quantity)
		if err != nil {
			if isHard(err) {
				return nil, fmt.Errorf("explosion failed for product %s: %w", line.ProductID, err)
			}
			// Single-line failure: zero contribution, warning attached.
			warnings = append(warnings, entities.Warning{
				Kind:    entities.WarnDataIntegrity,
				Subject: string(line.ProductID),
				Message: fmt.Sprintf("order line for product %s skipped: %v", line.ProductID, err),
			})
			failed++
			continue
		}

		for id, req := range lineResult.Requirements {
			gross[id] = gross[id].Add(req.Quantity)
		}
		warnings = append(warnings, lineResult.Warnings...)
		succeeded++
	}

	if len(order.Lines) > 0 && succeeded == 0 && failed > 0 {
		return nil, fmt.Errorf("explosion failed for every line of order %s", orderID)
	}

	// Stock is netted as of the order's due date so reruns over an
	// unchanged snapshot see the same expiry cutoff.
	asOf := order.DueDate
	if asOf.IsZero() {
		asOf = started
	}
	netted, err := s.nettingSvc.Net(ctx, gross, asOf, s.nettingPolicy)
	if err != nil {
		return nil, fmt.Errorf("netting failed for order %s: %w", orderID, err)
	}
	warnings = append(warnings, netted.Warnings...)

	report := &dto.MRPReport{
		RunID:        uuid.New().String(),
		OrderID:      orderID,
		GeneratedAt:  started,
		Requirements: netted.Requirements,
		Warnings:     warnings,
		Summary:      summarize(netted.Requirements),
	}

	s.logger.InfoContext(ctx, "mrp run complete",
		slog.String("order", string(orderID)),
		slog.String("run_id", report.RunID),
		slog.Int("materials", report.Summary.TotalMaterials),
		slog.Int("shortages", report.Summary.MaterialsWithShortage),
		slog.Int("warnings", len(report.Warnings)))

	return report, nil
}

func summarize(reqs []entities.Requirement) dto.MRPSummary {
	summary := dto.MRPSummary{
		TotalMaterials:     len(reqs),
		TotalShortageValue: decimal.Zero,
	}
	for i := range reqs {
		if reqs[i].Shortage {
			summary.MaterialsWithShortage++
			summary.TotalShortageValue = summary.TotalShortageValue.Add(reqs[i].ShortageValue())
		}
	}
	return summary
}

// isHard reports whether an explosion error must fail the whole run rather
// than downgrade to a line warning.
func isHard(err error) bool {
	var cycle *entities.CycleDetectedError
	var validation *entities.ValidationError
	var unavailable *entities.DatabaseUnavailableError
	return errors.As(err, &cycle) || errors.As(err, &validation) || errors.As(err, &unavailable)
}
