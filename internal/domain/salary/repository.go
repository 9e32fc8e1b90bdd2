package salary

import "context"

type Filter struct {
	Year       int
	Month      int
	EmployeeID string
	Status     Status
	Limit      int
	Offset     int
}

type Repository interface {
	Upsert(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (*Record, error)
	List(ctx context.Context, filter Filter) ([]Record, error)
	UpdateStatus(ctx context.Context, r *Record) error
}
