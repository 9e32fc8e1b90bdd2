package alert

import (
	"context"
	"time"
)

// Repository persists alerts. Alerts are append-and-mutate only: Resolve
// archives, nothing deletes.
type Repository interface {
	Create(ctx context.Context, a Alert) (Alert, error)
	CreateBatch(ctx context.Context, alerts []Alert) error
	GetByID(ctx context.Context, id string) (Alert, error)
	List(ctx context.Context, filter Filter) ([]Alert, int64, error)
	// GetOpenByEmployeeDate returns unresolved alerts for the employee on
	// the given work date, for duplicate suppression.
	GetOpenByEmployeeDate(ctx context.Context, employeeID string, date time.Time) ([]Alert, error)
	MarkRead(ctx context.Context, id string, readAt time.Time) error
	Resolve(ctx context.Context, id string, resolvedBy string, resolution string, resolvedAt time.Time) error
}
