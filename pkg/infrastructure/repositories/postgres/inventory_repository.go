package postgres

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planforge/mrp/pkg/domain/entities"
	"github.com/planforge/mrp/pkg/domain/repositories"
)

// InventoryRepository reads lot-level stock snapshots from postgres
type InventoryRepository struct {
	pool *pgxpool.Pool
}

// Interface compliance check
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// NewInventoryRepository creates a postgres-backed InventoryRepository
func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

// GetMaterialLots returns all inventory lots for a material. An unknown
// material yields an empty slice.
func (r *InventoryRepository) GetMaterialLots(ctx context.Context, materialID entities.MaterialID) ([]*entities.InventoryLot, error) {
	return withRetry(ctx, "get material lots", func(ctx context.Context) ([]*entities.InventoryLot, error) {
		const q = `
			SELECT item_id, lot_number, quantity, reserved_quantity, expiry_date, status
			FROM inventory_lots
			WHERE item_type = 'material' AND item_id = $1
			ORDER BY lot_number
		`
		rows, err := r.pool.Query(ctx, q, string(materialID))
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		lots := make([]*entities.InventoryLot, 0)
		for rows.Next() {
			lot := entities.InventoryLot{ItemType: entities.ComponentMaterial}
			var expiry sql.NullTime
			var status string
			if err := rows.Scan(
				&lot.ItemID, &lot.LotNumber, &lot.Quantity,
				&lot.ReservedQuantity, &expiry, &status,
			); err != nil {
				return nil, err
			}
			if expiry.Valid {
				lot.ExpiryDate = expiry.Time
			}
			lot.Status = parseLotStatus(status)
			lots = append(lots, &lot)
		}
		return lots, rows.Err()
	})
}

func parseLotStatus(s string) entities.LotStatus {
	switch s {
	case "quarantine":
		return entities.LotQuarantine
	case "blocked":
		return entities.LotBlocked
	default:
		return entities.LotAvailable
	}
}
