package company

import (
	"context"
	"errors"
	"fmt"

	"github.com/genbaworks/kintai-backend-go/internal/domain/company"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/database"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/sse"
	"github.com/jackc/pgx/v5"
)

type CompanyServiceImpl struct {
	db   *database.DB
	repo company.Repository
	hub  *sse.Hub
}

func NewCompanyService(db *database.DB, repo company.Repository, hub *sse.Hub) company.Service {
	return &CompanyServiceImpl{db: db, repo: repo, hub: hub}
}

// Get implements company.Service.
func (c *CompanyServiceImpl) Get(ctx context.Context) (company.CompanyResponse, error) {
	comp, err := c.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.CompanyResponse{}, company.ErrCompanyNotFound
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to get company: %w", err)
	}
	return mapCompanyToResponse(comp), nil
}

// UpdateProfile implements company.Service.
func (c *CompanyServiceImpl) UpdateProfile(ctx context.Context, req company.UpdateProfileRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	comp, err := c.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.CompanyResponse{}, company.ErrCompanyNotFound
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to get company: %w", err)
	}

	if req.Name != nil {
		comp.Name = *req.Name
	}
	if req.Address != nil {
		comp.Address = req.Address
	}
	if req.PhoneNumber != nil {
		comp.PhoneNumber = req.PhoneNumber
	}

	if err := c.repo.UpdateProfile(ctx, comp); err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to update company: %w", err)
	}
	return mapCompanyToResponse(comp), nil
}

// GetSettings implements company.Service.
func (c *CompanyServiceImpl) GetSettings(ctx context.Context) (company.SettingsResponse, error) {
	comp, err := c.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.SettingsResponse{}, company.ErrCompanyNotFound
		}
		return company.SettingsResponse{}, fmt.Errorf("failed to get company: %w", err)
	}
	return company.SettingsResponse{Settings: comp.Settings}, nil
}

// UpdateSettings implements company.Service. The new snapshot replaces the
// old one wholesale and the repository bumps the version; concurrent edits
// lose with ErrStaleSettings.
func (c *CompanyServiceImpl) UpdateSettings(ctx context.Context, req company.UpdateSettingsRequest) (company.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return company.SettingsResponse{}, err
	}

	comp, err := c.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.SettingsResponse{}, company.ErrCompanyNotFound
		}
		return company.SettingsResponse{}, fmt.Errorf("failed to get company: %w", err)
	}
	if comp.Settings.Version != req.Version {
		return company.SettingsResponse{}, company.ErrStaleSettings
	}

	comp.Settings = req.Settings
	comp.Settings.Version = req.Version + 1

	if err := c.repo.UpdateSettings(ctx, comp, req.Version); err != nil {
		if errors.Is(err, company.ErrStaleSettings) {
			return company.SettingsResponse{}, company.ErrStaleSettings
		}
		return company.SettingsResponse{}, fmt.Errorf("failed to update settings: %w", err)
	}

	// Connected clients pick up the new snapshot without polling.
	c.hub.Broadcast(sse.Event{
		Event: "settings_updated",
		Data:  map[string]int{"version": comp.Settings.Version},
	})

	return company.SettingsResponse{Settings: comp.Settings}, nil
}

func mapCompanyToResponse(comp *company.Company) company.CompanyResponse {
	return company.CompanyResponse{
		ID:          comp.ID,
		Name:        comp.Name,
		Address:     comp.Address,
		PhoneNumber: comp.PhoneNumber,
	}
}
