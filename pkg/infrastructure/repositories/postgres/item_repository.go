package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planforge/mrp/pkg/domain/entities"
	"github.com/planforge/mrp/pkg/domain/repositories"
)

// ItemRepository reads material and product master data from postgres
type ItemRepository struct {
	pool *pgxpool.Pool
}

// Interface compliance checks
var (
	_ repositories.MaterialRepository = (*ItemRepository)(nil)
	_ repositories.ProductRepository  = (*ItemRepository)(nil)
)

// NewItemRepository creates a postgres-backed ItemRepository
func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

// GetMaterial returns the material master record, or a NotFoundError when
// no such material exists.
func (r *ItemRepository) GetMaterial(ctx context.Context, id entities.MaterialID) (*entities.Material, error) {
	return withRetry(ctx, "get material", func(ctx context.Context) (*entities.Material, error) {
		const q = `
			SELECT id, code, description, unit_of_measure, lead_time_days,
			       reorder_point, safety_stock_qty, lot_size_qty, max_stock_qty,
			       cost_per_unit, lot_controlled, default_supplier
			FROM materials
			WHERE id = $1
		`
		material, err := scanMaterial(r.pool.QueryRow(ctx, q, string(id)))
		if noRows(err) {
			return nil, &entities.NotFoundError{Entity: "material", ID: string(id)}
		}
		return material, err
	})
}

// GetAllMaterials returns every material master record.
func (r *ItemRepository) GetAllMaterials(ctx context.Context) ([]*entities.Material, error) {
	return withRetry(ctx, "get all materials", func(ctx context.Context) ([]*entities.Material, error) {
		const q = `
			SELECT id, code, description, unit_of_measure, lead_time_days,
			       reorder_point, safety_stock_qty, lot_size_qty, max_stock_qty,
			       cost_per_unit, lot_controlled, default_supplier
			FROM materials
			ORDER BY id
		`
		rows, err := r.pool.Query(ctx, q)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		materials := make([]*entities.Material, 0)
		for rows.Next() {
			material, err := scanMaterial(rows)
			if err != nil {
				return nil, err
			}
			materials = append(materials, material)
		}
		return materials, rows.Err()
	})
}

// GetProduct returns the product master record, or a NotFoundError when no
// such product exists.
func (r *ItemRepository) GetProduct(ctx context.Context, id entities.ProductID) (*entities.Product, error) {
	return withRetry(ctx, "get product", func(ctx context.Context) (*entities.Product, error) {
		const q = `
			SELECT id, code, description, unit_of_measure, lead_time_days,
			       safety_stock_qty, lot_size_qty
			FROM products
			WHERE id = $1
		`
		var product entities.Product
		err := r.pool.QueryRow(ctx, q, string(id)).Scan(
			&product.ID, &product.Code, &product.Description,
			&product.UnitOfMeasure, &product.LeadTimeDays,
			&product.SafetyStockQty, &product.LotSizeQty,
		)
		if noRows(err) {
			return nil, &entities.NotFoundError{Entity: "product", ID: string(id)}
		}
		if err != nil {
			return nil, err
		}
		return &product, nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMaterial(row rowScanner) (*entities.Material, error) {
	var material entities.Material
	err := row.Scan(
		&material.ID, &material.Code, &material.Description,
		&material.UnitOfMeasure, &material.LeadTimeDays,
		&material.ReorderPoint, &material.SafetyStockQty,
		&material.LotSizeQty, &material.MaxStockQty,
		&material.CostPerUnit, &material.LotControlled,
		&material.DefaultSupplier,
	)
	if err != nil {
		return nil, err
	}
	return &material, nil
}
