package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planforge/mrp/pkg/domain/entities"
	"github.com/planforge/mrp/pkg/domain/repositories"
)

// OrderRepository reads manufacturing orders from postgres
type OrderRepository struct {
	pool *pgxpool.Pool
}

// Interface compliance check
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// NewOrderRepository creates a postgres-backed OrderRepository
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// GetOrder returns the order with its lines, or a NotFoundError when no
// such order exists.
func (r *OrderRepository) GetOrder(ctx context.Context, id entities.OrderID) (*entities.ManufacturingOrder, error) {
	return withRetry(ctx, "get order", func(ctx context.Context) (*entities.ManufacturingOrder, error) {
		const headerQ = `
			SELECT id, code, due_date
			FROM manufacturing_orders
			WHERE id = $1
		`
		var order entities.ManufacturingOrder
		err := r.pool.QueryRow(ctx, headerQ, string(id)).Scan(&order.ID, &order.Code, &order.DueDate)
		if noRows(err) {
			return nil, &entities.NotFoundError{Entity: "order", ID: string(id)}
		}
		if err != nil {
			return nil, err
		}

		const linesQ = `
			SELECT product_id, quantity
			FROM manufacturing_order_lines
			WHERE order_id = $1
			ORDER BY line_no
		`
		rows, err := r.pool.Query(ctx, linesQ, string(id))
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		for rows.Next() {
			var line entities.OrderLine
			if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
				return nil, err
			}
			order.Lines = append(order.Lines, line)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return &order, nil
	})
}
