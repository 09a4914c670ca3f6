package memory

import (
	"context"
	"fmt"

	"github.com/planforge/mrp/pkg/domain/entities"
	"github.com/planforge/mrp/pkg/domain/repositories"
)

// InventoryRepository stores inventory lot snapshots in memory
type InventoryRepository struct {
	lotsByMaterial map[entities.MaterialID][]entities.InventoryLot
}

// NewInventoryRepository creates an empty in-memory inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		lotsByMaterial: make(map[entities.MaterialID][]entities.InventoryLot),
	}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// AddLot adds an inventory lot snapshot. Only material lots participate in
// netting; a lot of any other item type is rejected so bad scenario data
// cannot vanish silently.
func (r *InventoryRepository) AddLot(lot entities.InventoryLot) error {
	if lot.ItemType != entities.ComponentMaterial {
		return fmt.Errorf("lot %s of item %s has type %s; only material lots are netted", lot.LotNumber, lot.ItemID, lot.ItemType)
	}
	id := entities.MaterialID(lot.ItemID)
	r.lotsByMaterial[id] = append(r.lotsByMaterial[id], lot)
	return nil
}

// GetMaterialLots returns all lots for a material; unknown materials yield
// an empty slice
func (r *InventoryRepository) GetMaterialLots(ctx context.Context, materialID entities.MaterialID) ([]*entities.InventoryLot, error) {
	stored := r.lotsByMaterial[materialID]
	lots := make([]*entities.InventoryLot, 0, len(stored))
	for i := range stored {
		lot := stored[i]
		lots = append(lots, &lot)
	}
	return lots, nil
}
