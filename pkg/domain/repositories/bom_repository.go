package repositories

import (
	"context"

	"github.com/planforge/mrp/pkg/domain/entities"
)

// BOMRepository provides read access to bill-of-materials data
type BOMRepository interface {
	// GetActiveBOMHeader returns the currently active BOM version for a
	// product, or nil when the product has no active BOM.
	GetActiveBOMHeader(ctx context.Context, productID entities.ProductID) (*entities.BOMHeader, error)

	// GetBOMLines returns the component lines of a BOM version.
	GetBOMLines(ctx context.Context, headerID entities.BOMHeaderID) ([]*entities.BOMLine, error)
}
