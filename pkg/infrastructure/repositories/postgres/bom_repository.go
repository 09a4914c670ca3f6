package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planforge/mrp/pkg/domain/entities"
	"github.com/planforge/mrp/pkg/domain/repositories"
)

// BOMRepository reads bill-of-materials data from postgres
type BOMRepository struct {
	pool *pgxpool.Pool
}

// Interface compliance check
var _ repositories.BOMRepository = (*BOMRepository)(nil)

// NewBOMRepository creates a postgres-backed BOMRepository
func NewBOMRepository(pool *pgxpool.Pool) *BOMRepository {
	return &BOMRepository{pool: pool}
}

// GetActiveBOMHeader returns the active BOM version for a product, or nil
// when the product has no active BOM.
func (r *BOMRepository) GetActiveBOMHeader(ctx context.Context, productID entities.ProductID) (*entities.BOMHeader, error) {
	return withRetry(ctx, "get active bom header", func(ctx context.Context) (*entities.BOMHeader, error) {
		const q = `
			SELECT id, product_id, version, effective_date, is_active
			FROM bom_headers
			WHERE product_id = $1 AND is_active
		`
		var header entities.BOMHeader
		err := r.pool.QueryRow(ctx, q, string(productID)).Scan(
			&header.ID, &header.ProductID, &header.Version,
			&header.EffectiveDate, &header.IsActive,
		)
		if noRows(err) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &header, nil
	})
}

// GetBOMLines returns the component lines of a BOM version.
func (r *BOMRepository) GetBOMLines(ctx context.Context, headerID entities.BOMHeaderID) ([]*entities.BOMLine, error) {
	return withRetry(ctx, "get bom lines", func(ctx context.Context) ([]*entities.BOMLine, error) {
		const q = `
			SELECT bom_header_id, component_type, component_id, quantity_per, scrap_percent
			FROM bom_lines
			WHERE bom_header_id = $1
			ORDER BY component_id
		`
		rows, err := r.pool.Query(ctx, q, string(headerID))
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		lines := make([]*entities.BOMLine, 0)
		for rows.Next() {
			var line entities.BOMLine
			var componentType string
			if err := rows.Scan(
				&line.BOMHeaderID, &componentType, &line.ComponentID,
				&line.QuantityPer, &line.ScrapPercent,
			); err != nil {
				return nil, err
			}
			if line.ComponentType, err = parseComponentType(componentType); err != nil {
				return nil, fmt.Errorf("bom line of header %s: %w", headerID, err)
			}
			lines = append(lines, &line)
		}
		return lines, rows.Err()
	})
}
