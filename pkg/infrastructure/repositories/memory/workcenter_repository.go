package memory

import (
	"context"
	"sort"
	"time"

	"github.com/planforge/mrp/pkg/domain/entities"
	"github.com/planforge/mrp/pkg/domain/repositories"
)

// WorkCenterRepository stores work centers, calendars and routings in memory
type WorkCenterRepository struct {
	workCenters map[entities.WorkCenterID]entities.WorkCenter
	calendars   map[entities.WorkCenterID][]entities.CalendarEntry
	routings    map[entities.ProductID][]entities.RoutedOperation
}

// NewWorkCenterRepository creates an empty in-memory work center repository
func NewWorkCenterRepository() *WorkCenterRepository {
	return &WorkCenterRepository{
		workCenters: make(map[entities.WorkCenterID]entities.WorkCenter),
		calendars:   make(map[entities.WorkCenterID][]entities.CalendarEntry),
		routings:    make(map[entities.ProductID][]entities.RoutedOperation),
	}
}

// Verify interface compliance
var _ repositories.WorkCenterRepository = (*WorkCenterRepository)(nil)

// AddWorkCenter adds a work center
func (r *WorkCenterRepository) AddWorkCenter(wc entities.WorkCenter) {
	r.workCenters[wc.ID] = wc
}

// AddCalendarEntry adds a calendar day for a work center
func (r *WorkCenterRepository) AddCalendarEntry(entry entities.CalendarEntry) {
	r.calendars[entry.WorkCenterID] = append(r.calendars[entry.WorkCenterID], entry)
}

// AddRoutedOperation adds a routing step for a product
func (r *WorkCenterRepository) AddRoutedOperation(op entities.RoutedOperation) {
	r.routings[op.ProductID] = append(r.routings[op.ProductID], op)
}

// GetWorkCenter returns a work center by id
func (r *WorkCenterRepository) GetWorkCenter(ctx context.Context, id entities.WorkCenterID) (*entities.WorkCenter, error) {
	wc, ok := r.workCenters[id]
	if !ok {
		return nil, &entities.NotFoundError{Entity: "work center", ID: string(id)}
	}
	return &wc, nil
}

// GetCalendar returns calendar entries with dates in [from, to], ordered by date
func (r *WorkCenterRepository) GetCalendar(ctx context.Context, id entities.WorkCenterID, from, to time.Time) ([]*entities.CalendarEntry, error) {
	var entries []*entities.CalendarEntry
	for i := range r.calendars[id] {
		entry := r.calendars[id][i]
		if entry.Date.Before(from) || entry.Date.After(to) {
			continue
		}
		entries = append(entries, &entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })
	return entries, nil
}

// GetRouting returns a product's routed operations ordered by sequence
func (r *WorkCenterRepository) GetRouting(ctx context.Context, productID entities.ProductID) ([]*entities.RoutedOperation, error) {
	stored := r.routings[productID]
	ops := make([]*entities.RoutedOperation, 0, len(stored))
	for i := range stored {
		op := stored[i]
		ops = append(ops, &op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Sequence < ops[j].Sequence })
	return ops, nil
}
