package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planforge/mrp/pkg/domain/entities"
	"github.com/planforge/mrp/pkg/domain/repositories"
)

// WorkCenterRepository reads work centers, calendars and routings from postgres
type WorkCenterRepository struct {
	pool *pgxpool.Pool
}

// Interface compliance check
var _ repositories.WorkCenterRepository = (*WorkCenterRepository)(nil)

// NewWorkCenterRepository creates a postgres-backed WorkCenterRepository
func NewWorkCenterRepository(pool *pgxpool.Pool) *WorkCenterRepository {
	return &WorkCenterRepository{pool: pool}
}

// GetWorkCenter returns the work center, or a NotFoundError when no such
// work center exists.
func (r *WorkCenterRepository) GetWorkCenter(ctx context.Context, id entities.WorkCenterID) (*entities.WorkCenter, error) {
	return withRetry(ctx, "get work center", func(ctx context.Context) (*entities.WorkCenter, error) {
		const q = `
			SELECT id, code, description, capacity_units_per_hour
			FROM work_centers
			WHERE id = $1
		`
		var wc entities.WorkCenter
		err := r.pool.QueryRow(ctx, q, string(id)).Scan(
			&wc.ID, &wc.Code, &wc.Description, &wc.CapacityUnitsPerHour,
		)
		if noRows(err) {
			return nil, &entities.NotFoundError{Entity: "work center", ID: string(id)}
		}
		if err != nil {
			return nil, err
		}
		return &wc, nil
	})
}

// GetCalendar returns calendar entries for a work center with dates in
// [from, to], ordered by date.
func (r *WorkCenterRepository) GetCalendar(ctx context.Context, id entities.WorkCenterID, from, to time.Time) ([]*entities.CalendarEntry, error) {
	return withRetry(ctx, "get calendar", func(ctx context.Context) ([]*entities.CalendarEntry, error) {
		const q = `
			SELECT work_center_id, calendar_date, available_hours, planned_downtime_hours
			FROM work_center_calendar
			WHERE work_center_id = $1 AND calendar_date BETWEEN $2 AND $3
			ORDER BY calendar_date
		`
		rows, err := r.pool.Query(ctx, q, string(id), from, to)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		entries := make([]*entities.CalendarEntry, 0)
		for rows.Next() {
			var entry entities.CalendarEntry
			if err := rows.Scan(
				&entry.WorkCenterID, &entry.Date,
				&entry.AvailableHours, &entry.PlannedDowntimeHours,
			); err != nil {
				return nil, err
			}
			entries = append(entries, &entry)
		}
		return entries, rows.Err()
	})
}

// GetRouting returns a product's routed operations ordered by sequence.
// A product without a routing yields an empty slice.
func (r *WorkCenterRepository) GetRouting(ctx context.Context, productID entities.ProductID) ([]*entities.RoutedOperation, error) {
	return withRetry(ctx, "get routing", func(ctx context.Context) ([]*entities.RoutedOperation, error) {
		const q = `
			SELECT product_id, sequence, work_center_id, setup_time_hours, run_time_per_unit_hours
			FROM routing_operations
			WHERE product_id = $1
			ORDER BY sequence
		`
		rows, err := r.pool.Query(ctx, q, string(productID))
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		ops := make([]*entities.RoutedOperation, 0)
		for rows.Next() {
			var op entities.RoutedOperation
			if err := rows.Scan(
				&op.ProductID, &op.Sequence, &op.WorkCenterID,
				&op.SetupTimeHours, &op.RunTimePerUnitHours,
			); err != nil {
				return nil, err
			}
			ops = append(ops, &op)
		}
		return ops, rows.Err()
	})
}
