// Package memory provides deterministic in-memory repository
// implementations used by unit tests and the CSV-driven CLI.
package memory

import (
	"context"

	"github.com/planforge/mrp/pkg/domain/entities"
	"github.com/planforge/mrp/pkg/domain/repositories"
)

// ItemRepository stores material and product master data in memory
type ItemRepository struct {
	materials map[entities.MaterialID]entities.Material
	products  map[entities.ProductID]entities.Product
}

// NewItemRepository creates an empty in-memory item repository
func NewItemRepository() *ItemRepository {
	return &ItemRepository{
		materials: make(map[entities.MaterialID]entities.Material),
		products:  make(map[entities.ProductID]entities.Product),
	}
}

// Verify interface compliance
var _ repositories.MaterialRepository = (*ItemRepository)(nil)
var _ repositories.ProductRepository = (*ItemRepository)(nil)

// AddMaterial adds a material master record
func (r *ItemRepository) AddMaterial(m entities.Material) {
	r.materials[m.ID] = m
}

// AddProduct adds a product master record
func (r *ItemRepository) AddProduct(p entities.Product) {
	r.products[p.ID] = p
}

// GetMaterial returns a material master record by id
func (r *ItemRepository) GetMaterial(ctx context.Context, id entities.MaterialID) (*entities.Material, error) {
	m, ok := r.materials[id]
	if !ok {
		return nil, &entities.NotFoundError{Entity: "material", ID: string(id)}
	}
	return &m, nil
}

// GetAllMaterials returns every material master record
func (r *ItemRepository) GetAllMaterials(ctx context.Context) ([]*entities.Material, error) {
	materials := make([]*entities.Material, 0, len(r.materials))
	for id := range r.materials {
		m := r.materials[id]
		materials = append(materials, &m)
	}
	return materials, nil
}

// GetProduct returns a product master record by id
func (r *ItemRepository) GetProduct(ctx context.Context, id entities.ProductID) (*entities.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, &entities.NotFoundError{Entity: "product", ID: string(id)}
	}
	return &p, nil
}
