package memory

import (
	"context"
	"fmt"

	"github.com/planforge/mrp/pkg/domain/entities"
	"github.com/planforge/mrp/pkg/domain/repositories"
)

// BOMRepository stores BOM headers and lines in memory
type BOMRepository struct {
	headers       []entities.BOMHeader
	activeIndex   map[entities.ProductID]int
	linesByHeader map[entities.BOMHeaderID][]entities.BOMLine
}

// NewBOMRepository creates an empty in-memory BOM repository
func NewBOMRepository() *BOMRepository {
	return &BOMRepository{
		activeIndex:   make(map[entities.ProductID]int),
		linesByHeader: make(map[entities.BOMHeaderID][]entities.BOMLine),
	}
}

// Verify interface compliance
var _ repositories.BOMRepository = (*BOMRepository)(nil)

// AddHeader adds a BOM header. Loading a second active header for the same
// product is rejected to guard the one-active-version invariant owned by
// the engineering collaborator.
func (r *BOMRepository) AddHeader(h entities.BOMHeader) error {
	if h.IsActive {
		if _, exists := r.activeIndex[h.ProductID]; exists {
			return fmt.Errorf("product %s already has an active BOM header", h.ProductID)
		}
		r.activeIndex[h.ProductID] = len(r.headers)
	}
	r.headers = append(r.headers, h)
	return nil
}

// AddLine adds a BOM line to its header
func (r *BOMRepository) AddLine(line entities.BOMLine) {
	r.linesByHeader[line.BOMHeaderID] = append(r.linesByHeader[line.BOMHeaderID], line)
}

// GetActiveBOMHeader returns the active BOM version for a product, or nil
// when the product has no active BOM
func (r *BOMRepository) GetActiveBOMHeader(ctx context.Context, productID entities.ProductID) (*entities.BOMHeader, error) {
	index, ok := r.activeIndex[productID]
	if !ok {
		return nil, nil
	}
	header := r.headers[index]
	return &header, nil
}

// GetBOMLines returns the component lines of a BOM version
func (r *BOMRepository) GetBOMLines(ctx context.Context, headerID entities.BOMHeaderID) ([]*entities.BOMLine, error) {
	stored := r.linesByHeader[headerID]
	lines := make([]*entities.BOMLine, 0, len(stored))
	for i := range stored {
		line := stored[i]
		lines = append(lines, &line)
	}
	return lines, nil
}
