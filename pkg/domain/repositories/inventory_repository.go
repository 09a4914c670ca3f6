package repositories

import (
	"context"

	"github.com/planforge/mrp/pkg/domain/entities"
)

// InventoryRepository provides read access to point-in-time stock snapshots
type InventoryRepository interface {
	// GetMaterialLots returns all inventory lots for a material. An unknown
	// material yields an empty slice, not an error; the netting service
	// decides how to report dangling references.
	GetMaterialLots(ctx context.Context, materialID entities.MaterialID) ([]*entities.InventoryLot, error)
}
