package attendance

import (
	"context"
	"time"
)

type Filter struct {
	EmployeeID string
	SiteID     string
	Status     Status
	DateFrom   time.Time
	DateTo     time.Time
	Limit      int
	Offset     int
}

type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	GetByEmployeeDate(ctx context.Context, employeeID string, workDate time.Time) (*Record, error)
	List(ctx context.Context, filter Filter) ([]Record, error)
	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
	ListOpenBefore(ctx context.Context, cutoff time.Time) ([]Record, error)
	Update(ctx context.Context, r *Record) error

	CreateBreak(ctx context.Context, b *BreakRecord) error
	UpdateBreak(ctx context.Context, b *BreakRecord) error
}
