package company

import "context"

type Repository interface {
	Get(ctx context.Context) (*Company, error)
	UpdateProfile(ctx context.Context, c *Company) error
	// UpdateSettings persists new settings and bumps the version.
	// It fails with ErrStaleSettings when expectedVersion no longer matches.
	UpdateSettings(ctx context.Context, c *Company, expectedVersion int) error
	GetSettingsVersion(ctx context.Context, version int) (*Company, error)
}
