package site

import "context"

type Repository interface {
	Create(ctx context.Context, s *Site) error
	GetByID(ctx context.Context, id string) (*Site, error)
	List(ctx context.Context, activeOnly bool) ([]Site, error)
	Update(ctx context.Context, s *Site) error
	SoftDelete(ctx context.Context, id string) error
}
