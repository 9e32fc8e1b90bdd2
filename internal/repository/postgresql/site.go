package postgresql

import (
	"context"

	"github.com/genbaworks/kintai-backend-go/internal/domain/site"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type siteRepositoryImpl struct {
	db *database.DB
}

func NewSiteRepository(db *database.DB) site.Repository {
	return &siteRepositoryImpl{db: db}
}

const siteColumns = `id, name, address, latitude, longitude, geofence_radius_m, active, created_at, updated_at, deleted_at`

func scanSite(row interface{ Scan(dest ...any) error }) (*site.Site, error) {
	var s site.Site
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Address,
		&s.Latitude,
		&s.Longitude,
		&s.GeofenceRadiusM,
		&s.Active,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create implements site.Repository.
func (r *siteRepositoryImpl) Create(ctx context.Context, s *site.Site) error {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	query := `
		INSERT INTO sites (id, name, address, latitude, longitude, geofence_radius_m, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	return q.QueryRow(ctx, query,
		s.ID, s.Name, s.Address, s.Latitude, s.Longitude, s.GeofenceRadiusM, s.Active,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

// GetByID implements site.Repository.
func (r *siteRepositoryImpl) GetByID(ctx context.Context, id string) (*site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + siteColumns + ` FROM sites WHERE id = $1 AND deleted_at IS NULL`
	return scanSite(q.QueryRow(ctx, query, id))
}

// List implements site.Repository.
func (r *siteRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + siteColumns + ` FROM sites WHERE deleted_at IS NULL`
	if activeOnly {
		query += ` AND active`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []site.Site
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		sites = append(sites, *s)
	}
	return sites, rows.Err()
}

// Update implements site.Repository.
func (r *siteRepositoryImpl) Update(ctx context.Context, s *site.Site) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sites
		SET name = $2, address = $3, latitude = $4, longitude = $5,
		    geofence_radius_m = $6, active = $7, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at
	`
	return q.QueryRow(ctx, query,
		s.ID, s.Name, s.Address, s.Latitude, s.Longitude, s.GeofenceRadiusM, s.Active,
	).Scan(&s.UpdatedAt)
}

// SoftDelete implements site.Repository.
func (r *siteRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sites SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`
	var deleted string
	return q.QueryRow(ctx, query, id).Scan(&deleted)
}
