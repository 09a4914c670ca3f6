package memory

import (
	"context"

	"github.com/planforge/mrp/pkg/domain/entities"
	"github.com/planforge/mrp/pkg/domain/repositories"
)

// OrderRepository stores manufacturing orders in memory
type OrderRepository struct {
	orders map[entities.OrderID]entities.ManufacturingOrder
}

// NewOrderRepository creates an empty in-memory order repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[entities.OrderID]entities.ManufacturingOrder)}
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// AddOrder adds a manufacturing order
func (r *OrderRepository) AddOrder(o entities.ManufacturingOrder) {
	r.orders[o.ID] = o
}

// GetOrder returns an order with its lines by id
func (r *OrderRepository) GetOrder(ctx context.Context, id entities.OrderID) (*entities.ManufacturingOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, &entities.NotFoundError{Entity: "order", ID: string(id)}
	}
	return &o, nil
}
