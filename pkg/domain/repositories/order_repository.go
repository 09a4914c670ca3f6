package repositories

import (
	"context"

	"github.com/planforge/mrp/pkg/domain/entities"
)

// OrderRepository provides read access to manufacturing orders
type OrderRepository interface {
	// GetOrder returns the order with its lines, or a NotFoundError when
	// no such order exists.
	GetOrder(ctx context.Context, id entities.OrderID) (*entities.ManufacturingOrder, error)
}
