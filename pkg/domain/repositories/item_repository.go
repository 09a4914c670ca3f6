package repositories

import (
	"context"

	"github.com/planforge/mrp/pkg/domain/entities"
)

// MaterialRepository provides read access to material master data
type MaterialRepository interface {
	// GetMaterial returns the material master record, or a NotFoundError
	// when no such material exists.
	GetMaterial(ctx context.Context, id entities.MaterialID) (*entities.Material, error)

	// GetAllMaterials returns every material master record.
	GetAllMaterials(ctx context.Context) ([]*entities.Material, error)
}

// ProductRepository provides read access to product master data
type ProductRepository interface {
	// GetProduct returns the product master record, or a NotFoundError
	// when no such product exists.
	GetProduct(ctx context.Context, id entities.ProductID) (*entities.Product, error)
}
