// Package netting implements the inventory netting service: it subtracts
// available stock from gross material demand to obtain net requirements.
package netting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planforge/mrp/pkg/domain/entities"
	"github.com/planforge/mrp/pkg/domain/repositories"
)

// Policy controls how available stock is computed before netting.
// The zero value is the default behavior: expired lots never count as
// available and safety stock is informational only.
type Policy struct {
	// IncludeExpired counts lots whose expiry date lies before the netting
	// as-of date as available stock.
	IncludeExpired bool
	// SubtractSafetyStock reserves the material's safety stock out of the
	// available quantity before netting.
	SubtractSafetyStock bool
}

// Result contains netted requirements plus non-fatal warnings
type Result struct {
	Requirements []entities.Requirement
	Warnings     []entities.Warning
}

// Service nets gross material demand against inventory lot snapshots
type Service struct {
	inventoryRepo repositories.InventoryRepository
	materialRepo  repositories.MaterialRepository
	logger        *slog.Logger
}

// NewService creates a netting service
func NewService(inventoryRepo repositories.InventoryRepository, materialRepo repositories.MaterialRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		inventoryRepo: inventoryRepo,
		materialRepo:  materialRepo,
		logger:        logger,
	}
}

// Net computes net requirements for each gross demand entry as of the given
// date. Output is ordered by material id so identical inputs produce
// identical results. A material unknown to the master data nets at zero
// availability and is flagged with a data integrity warning.
func (s *Service) Net(ctx context.Context, gross map[entities.MaterialID]decimal.Decimal, asOf time.Time, policy Policy) (*Result, error) {
	ids := make([]entities.MaterialID, 0, len(gross))
	for id := range gross {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := &Result{Requirements: make([]entities.Requirement, 0, len(ids))}

	for _, id := range ids {
		grossQty := gross[id]
		if grossQty.IsNegative() {
			return nil, entities.NewValidationError("gross requirement for %s cannot be negative, got %s", id, grossQty)
		}

		req := entities.Requirement{
			MaterialID:       id,
			GrossRequirement: grossQty,
			AvailableQty:     decimal.Zero,
		}

		material, err := s.materialRepo.GetMaterial(ctx, id)
		switch {
		case err == nil:
			req.MaterialCode = material.Code
			req.UnitOfMeasure = material.UnitOfMeasure
			req.CostPerUnit = material.CostPerUnit
		case isNotFound(err):
			result.Warnings = append(result.Warnings, entities.Warning{
				Kind:    entities.WarnDataIntegrity,
				Subject: string(id),
				Message: fmt.Sprintf("material %s has no master record; treated as zero available", id),
			})
			material = nil
		default:
			return nil, fmt.Errorf("failed to load material %s: %w", id, err)
		}

		if material != nil {
			available, err := s.availableQty(ctx, id, asOf, policy)
			if err != nil {
				return nil, err
			}
			if policy.SubtractSafetyStock {
				available = available.Sub(material.SafetyStockQty)
				if available.IsNegative() {
					available = decimal.Zero
				}
			}
			req.AvailableQty = available
		}

		net := grossQty.Sub(req.AvailableQty)
		if net.IsNegative() {
			net = decimal.Zero
		}
		req.NetRequirement = net
		req.Shortage = net.IsPositive()

		result.Requirements = append(result.Requirements, req)
	}

	s.logger.DebugContext(ctx, "netting complete",
		slog.Int("materials", len(result.Requirements)),
		slog.Int("warnings", len(result.Warnings)))

	return result, nil
}

// availableQty sums unreserved quantity over available-status lots,
// excluding expired lots unless the policy admits them.
func (s *Service) availableQty(ctx context.Context, id entities.MaterialID, asOf time.Time, policy Policy) (decimal.Decimal, error) {
	lots, err := s.inventoryRepo.GetMaterialLots(ctx, id)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load inventory lots for %s: %w", id, err)
	}

	available := decimal.Zero
	for _, lot := range lots {
		if lot.Status != entities.LotAvailable {
			continue
		}
		if !policy.IncludeExpired && lot.IsExpired(asOf) {
			continue
		}
		available = available.Add(lot.UnreservedQty())
	}
	return available, nil
}

func isNotFound(err error) bool {
	var nf *entities.NotFoundError
	return errors.As(err, &nf)
}
