package repositories

import (
	"context"
	"time"

	"github.com/planforge/mrp/pkg/domain/entities"
)

// WorkCenterRepository provides read access to work centers, their
// calendars and product routings
type WorkCenterRepository interface {
	// GetWorkCenter returns the work center, or a NotFoundError when no
	// such work center exists.
	GetWorkCenter(ctx context.Context, id entities.WorkCenterID) (*entities.WorkCenter, error)

	// GetCalendar returns calendar entries for a work center with dates in
	// [from, to], ordered by date.
	GetCalendar(ctx context.Context, id entities.WorkCenterID, from, to time.Time) ([]*entities.CalendarEntry, error)

	// GetRouting returns a product's routed operations ordered by sequence.
	// A product without a routing yields an empty slice.
	GetRouting(ctx context.Context, productID entities.ProductID) ([]*entities.RoutedOperation, error)
}
