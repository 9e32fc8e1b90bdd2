package employee

import "context"

type Repository interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id string) (*Employee, error)
	GetByCode(ctx context.Context, code string) (*Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	ListBySite(ctx context.Context, siteID string) ([]Employee, error)
	Update(ctx context.Context, e *Employee) error
	SoftDelete(ctx context.Context, id string) error
}
