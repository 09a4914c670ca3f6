// Package suggestion turns net shortages into proposed purchase or
// production orders. Persisting proposals as real orders is owned by the
// purchasing and production collaborators.
package suggestion

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

// LotSizingRule selects how shortage quantities are rounded into order
// quantities
type LotSizingRule int

const (
	// LotForLot orders exactly the shortfall.
	LotForLot LotSizingRule = iota
	// FixedLot rounds up to a multiple of the item's lot size.
	FixedLot
	// ReorderToMax fills stock up to the material's maximum level.
	ReorderToMax
)

// String method for LotSizingRule enum
func (r LotSizingRule) String() string {
	switch r {
	case LotForLot:
		return "LotForLot"
	case FixedLot:
		return "FixedLot"
	case ReorderToMax:
		return "ReorderToMax"
	default:
		return "Unknown"
	}
}

// Policy controls lot sizing and scheduling of generated suggestions
type Policy struct {
	LotSizing       LotSizingRule
	MinimumOrderQty decimal.Decimal
	// Now anchors the expedite check; the zero value means time.Now().
	Now time.Time
}

// Service generates replenishment suggestions from netted requirements
type Service struct {
	bomRepo      repositories.BOMRepository
	materialRepo repositories.MaterialRepository
	productRepo  repositories.ProductRepository
	logger       *slog.Logger
}

// NewService creates a suggestion service
func NewService(bomRepo repositories.BOMRepository, materialRepo repositories.MaterialRepository, productRepo repositories.ProductRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		bomRepo:      bomRepo,
		materialRepo: materialRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// Suggest proposes one replenishment order per shortage requirement. Items
// that carry an active BOM of their own are classified as production
// (sub-assembly demand); everything else is purchased. The returned slice
// is fully built before return and ordered by suggested date, ties broken
// by descending shortage magnitude.
func (s *Service) Suggest(ctx context.Context, reqs []entities.Requirement, requiredDate time.Time, policy Policy) ([]entities.Suggestion, error) {
	now := policy.Now
	if now.IsZero() {
		now = time.Now()
	}

	suggestions := make([]entities.Suggestion, 0, len(reqs))
	for i := range reqs {
		req := &reqs[i]
		if !req.Shortage {
			continue
		}

		sug, err := s.buildSuggestion(ctx, req, requiredDate, now, policy)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, *sug)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if !suggestions[i].SuggestedDate.Equal(suggestions[j].SuggestedDate) {
			return suggestions[i].SuggestedDate.Before(suggestions[j].SuggestedDate)
		}
		return suggestions[i].ShortageQty.GreaterThan(suggestions[j].ShortageQty)
	})

	s.logger.DebugContext(ctx, "suggestions generated",
		slog.Int("shortages", len(suggestions)),
		slog.String("lot_sizing", policy.LotSizing.String()))

	return suggestions, nil
}

func (s *Service) buildSuggestion(ctx context.Context, req *entities.Requirement, requiredDate, now time.Time, policy Policy) (*entities.Suggestion, error) {
	header, err := s.bomRepo.GetActiveBOMHeader(ctx, entities.ProductID(req.MaterialID))
	if err != nil {
		return nil, fmt.Errorf("failed to classify item %s: %w", req.MaterialID, err)
	}

	orderType := entities.SuggestPurchase
	leadTimeDays := 0
	var lotSize, maxStock decimal.Decimal

	if header != nil {
		// Manufactured sub-assembly: schedule with the product's lead time.
		orderType = entities.SuggestProduction
		product, err := s.productRepo.GetProduct(ctx, header.ProductID)
		if err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("failed to load product %s: %w", header.ProductID, err)
		}
		if product != nil {
			leadTimeDays = product.LeadTimeDays
			lotSize = product.LotSizeQty
		}
	}

	material, err := s.materialRepo.GetMaterial(ctx, req.MaterialID)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("failed to load material %s: %w", req.MaterialID, err)
	}
	if material != nil {
		if orderType == entities.SuggestPurchase {
			leadTimeDays = material.LeadTimeDays
			lotSize = material.LotSizeQty
		}
		maxStock = material.MaxStockQty
	}

	qty := s.applyLotSizing(req, lotSize, maxStock, policy)

	suggestedDate := requiredDate.AddDate(0, 0, -leadTimeDays)
	urgency := entities.UrgencyNormal
	if suggestedDate.Before(now) {
		urgency = entities.UrgencyExpedite
	}

	return &entities.Suggestion{
		MaterialID:    req.MaterialID,
		MaterialCode:  req.MaterialCode,
		OrderType:     orderType,
		Quantity:      qty,
		RequiredDate:  requiredDate,
		SuggestedDate: suggestedDate,
		Urgency:       urgency,
		ShortageQty:   req.NetRequirement,
	}, nil
}

// applyLotSizing raises the net shortfall to the minimum order quantity and
// then applies the configured lot-sizing rule. The result is never below
// the net requirement.
func (s *Service) applyLotSizing(req *entities.Requirement, lotSize, maxStock decimal.Decimal, policy Policy) decimal.Decimal {
	qty := req.NetRequirement
	if qty.LessThan(policy.MinimumOrderQty) {
		qty = policy.MinimumOrderQty
	}

	switch policy.LotSizing {
	case FixedLot:
		if lotSize.IsPositive() {
			lots := qty.Div(lotSize).Ceil()
			qty = lots.Mul(lotSize)
		}
	case ReorderToMax:
		// Order enough to land at the maximum stock level after covering
		// the shortfall; never less than the shortfall itself.
		target := maxStock.Sub(req.AvailableQty)
		if target.GreaterThan(qty) {
			qty = target
		}
	case LotForLot:
		// Exactly the shortfall.
	}

	return qty
}

func isNotFound(err error) bool {
	var nf *entities.NotFoundError
	return errors.As(err, &nf)
}
