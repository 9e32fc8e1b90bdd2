package site

import (
	"context"
	"errors"
	"fmt"

	"github.com/genbaworks/kintai-backend-go/internal/domain/site"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type SiteServiceImpl struct {
	db   *database.DB
	repo site.Repository
}

func NewSiteService(db *database.DB, repo site.Repository) site.Service {
	return &SiteServiceImpl{db: db, repo: repo}
}

// Create implements site.Service.
func (s *SiteServiceImpl) Create(ctx context.Context, req site.CreateSiteRequest) (site.SiteResponse, error) {
	if err := req.Validate(); err != nil {
		return site.SiteResponse{}, err
	}

	entity := &site.Site{
		Name:            req.Name,
		Address:         req.Address,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		GeofenceRadiusM: req.GeofenceRadiusM,
		Active:          true,
	}
	if err := s.repo.Create(ctx, entity); err != nil {
		return site.SiteResponse{}, fmt.Errorf("failed to create site: %w", err)
	}
	return mapSiteToResponse(entity), nil
}

// Get implements site.Service.
func (s *SiteServiceImpl) Get(ctx context.Context, id string) (site.SiteResponse, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.SiteResponse{}, site.ErrSiteNotFound
		}
		return site.SiteResponse{}, fmt.Errorf("failed to get site: %w", err)
	}
	return mapSiteToResponse(entity), nil
}

// List implements site.Service.
func (s *SiteServiceImpl) List(ctx context.Context, activeOnly bool) ([]site.SiteResponse, error) {
	sites, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}

	responses := make([]site.SiteResponse, 0, len(sites))
	for i := range sites {
		responses = append(responses, mapSiteToResponse(&sites[i]))
	}
	return responses, nil
}

// Update implements site.Service.
func (s *SiteServiceImpl) Update(ctx context.Context, req site.UpdateSiteRequest) (site.SiteResponse, error) {
	if err := req.Validate(); err != nil {
		return site.SiteResponse{}, err
	}

	entity, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.SiteResponse{}, site.ErrSiteNotFound
		}
		return site.SiteResponse{}, fmt.Errorf("failed to get site: %w", err)
	}

	if req.Name != nil {
		entity.Name = *req.Name
	}
	if req.Address != nil {
		entity.Address = *req.Address
	}
	if req.Latitude != nil {
		entity.Latitude = req.Latitude
		entity.Longitude = req.Longitude
		entity.GeofenceRadiusM = req.GeofenceRadiusM
	}
	if req.Active != nil {
		entity.Active = *req.Active
	}

	if err := s.repo.Update(ctx, entity); err != nil {
		return site.SiteResponse{}, fmt.Errorf("failed to update site: %w", err)
	}
	return mapSiteToResponse(entity), nil
}

// Delete implements site.Service.
func (s *SiteServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.ErrSiteNotFound
		}
		return fmt.Errorf("failed to delete site: %w", err)
	}
	return nil
}

func mapSiteToResponse(s *site.Site) site.SiteResponse {
	return site.SiteResponse{
		ID:              s.ID,
		Name:            s.Name,
		Address:         s.Address,
		Latitude:        s.Latitude,
		Longitude:       s.Longitude,
		GeofenceRadiusM: s.GeofenceRadiusM,
		Active:          s.Active,
	}
}
