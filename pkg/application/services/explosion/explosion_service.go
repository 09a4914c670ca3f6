// Package explosion implements the BOM explosion engine: it expands a
// product's active multi-level bill of materials into aggregated
// leaf-material demand, compounding per-line scrap factors along the way.
package explosion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/planforge/mrp/pkg/domain/entities"
	"github.com/planforge/mrp/pkg/domain/repositories"
)

// DefaultMaxDepth bounds BOM recursion independently of cycle detection.
const DefaultMaxDepth = 50

// MaterialRequirement is the aggregated demand for one leaf material,
// annotated with a cost snapshot for downstream valuation. The cost is not
// part of the netting arithmetic.
type MaterialRequirement struct {
	MaterialID    entities.MaterialID
	MaterialCode  string
	UnitOfMeasure string
	Quantity      decimal.Decimal
	CostPerUnit   decimal.Decimal
}

// Result contains the aggregated output of one explosion
type Result struct {
	Requirements map[entities.MaterialID]*MaterialRequirement
	Warnings     []entities.Warning
}

// Service performs recursive BOM explosion over injected repositories
type Service struct {
	bomRepo      repositories.BOMRepository
	materialRepo repositories.MaterialRepository
	maxDepth     int
	logger       *slog.Logger
}

// NewService creates an explosion service with the default depth bound
func NewService(bomRepo repositories.BOMRepository, materialRepo repositories.MaterialRepository, logger *slog.Logger) *Service {
	return NewServiceWithDepth(bomRepo, materialRepo, DefaultMaxDepth, logger)
}

// NewServiceWithDepth creates an explosion service with a custom depth bound
func NewServiceWithDepth(bomRepo repositories.BOMRepository, materialRepo repositories.MaterialRepository, maxDepth int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		bomRepo:      bomRepo,
		materialRepo: materialRepo,
		maxDepth:     maxDepth,
		logger:       logger,
	}
}

// Explode expands the active BOM of rootProduct into aggregated leaf-material
// quantities for the given order quantity. A zero quantity yields an empty
// result. A product with no active BOM yields an empty contribution and a
// no_active_bom warning; a cycle in the BOM graph fails the whole call.
func (s *Service) Explode(ctx context.Context, rootProduct entities.ProductID, quantity decimal.Decimal) (*Result, error) {
	if string(rootProduct) == "" {
		return nil, entities.NewValidationError("product id cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, entities.NewValidationError("explosion quantity cannot be negative, got %s", quantity)
	}

	result := &Result{Requirements: make(map[entities.MaterialID]*MaterialRequirement)}
	if quantity.IsZero() {
		return result, nil
	}

	// The ancestor path is threaded explicitly through the recursion so
	// cycle detection does not depend on call-stack behavior.
	path := make([]entities.ProductID, 0, 8)
	onPath := make(map[entities.ProductID]bool)

	if err := s.explode(ctx, rootProduct, quantity, path, onPath, 0, result); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "bom explosion complete",
		slog.String("product", string(rootProduct)),
		slog.String("quantity", quantity.String()),
		slog.Int("materials", len(result.Requirements)),
		slog.Int("warnings", len(result.Warnings)))

	return result, nil
}

func (s *Service) explode(
	ctx context.Context,
	productID entities.ProductID,
	parentQty decimal.Decimal,
	path []entities.ProductID,
	onPath map[entities.ProductID]bool,
	depth int,
	result *Result,
) error {
	if onPath[productID] {
		pathCopy := make([]entities.ProductID, len(path))
		copy(pathCopy, path)
		return &entities.CycleDetectedError{ProductID: productID, Path: pathCopy}
	}
	if depth > s.maxDepth {
		return entities.NewValidationError("BOM depth exceeds maximum of %d at product %s", s.maxDepth, productID)
	}

	header, err := s.bomRepo.GetActiveBOMHeader(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to look up active BOM for %s: %w", productID, err)
	}
	if header == nil {
		result.Warnings = append(result.Warnings, entities.Warning{
			Kind:    entities.WarnNoActiveBOM,
			Subject: string(productID),
			Message: fmt.Sprintf("product %s has no active BOM; branch contributes nothing", productID),
		})
		return nil
	}

	lines, err := s.bomRepo.GetBOMLines(ctx, header.ID)
	if err != nil {
		return fmt.Errorf("failed to load BOM lines for %s: %w", header.ID, err)
	}

	path = append(path, productID)
	onPath[productID] = true
	defer delete(onPath, productID)

	for _, line := range lines {
		requiredQty := parentQty.Mul(line.QuantityPer).Mul(line.ScrapFactor())

		switch line.ComponentType {
		case entities.ComponentProduct:
			if err := s.explode(ctx, entities.ProductID(line.ComponentID), requiredQty, path, onPath, depth+1, result); err != nil {
				return err
			}
		case entities.ComponentMaterial:
			if err := s.accumulate(ctx, entities.MaterialID(line.ComponentID), requiredQty, result); err != nil {
				return err
			}
		default:
			return entities.NewValidationError("BOM line on %s has unknown component type %d", productID, line.ComponentType)
		}
	}

	return nil
}

// accumulate adds demand for a leaf material, summing contributions from
// every path that reaches it. Master data is snapshotted on first sight.
func (s *Service) accumulate(ctx context.Context, materialID entities.MaterialID, qty decimal.Decimal, result *Result) error {
	if existing, ok := result.Requirements[materialID]; ok {
		existing.Quantity = existing.Quantity.Add(qty)
		return nil
	}

	req := &MaterialRequirement{MaterialID: materialID, Quantity: qty}
	material, err := s.materialRepo.GetMaterial(ctx, materialID)
	switch {
	case err == nil:
		req.MaterialCode = material.Code
		req.UnitOfMeasure = material.UnitOfMeasure
		req.CostPerUnit = material.CostPerUnit
	case isNotFound(err):
		result.Warnings = append(result.Warnings, entities.Warning{
			Kind:    entities.WarnDataIntegrity,
			Subject: string(materialID),
			Message: fmt.Sprintf("material %s referenced by BOM has no master record; cost snapshot is zero", materialID),
		})
	default:
		return fmt.Errorf("failed to load material %s: %w", materialID, err)
	}
	result.Requirements[materialID] = req
	return nil
}

func isNotFound(err error) bool {
	var nf *entities.NotFoundError
	return errors.As(err, &nf)
}
