package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/genbaworks/kintai-backend-go/internal/domain/employee"
	"github.com/genbaworks/kintai-backend-go/internal/domain/site"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/database"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	db       *database.DB
	repo     employee.Repository
	siteRepo site.Repository
}

func NewEmployeeService(db *database.DB, repo employee.Repository, siteRepo site.Repository) employee.Service {
	return &EmployeeServiceImpl{
		db:       db,
		repo:     repo,
		siteRepo: siteRepo,
	}
}

// Create implements employee.Service.
func (e *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := e.repo.GetByCode(ctx, req.EmployeeCode)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee code: %w", err)
	}
	if existing != nil {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	}

	if req.SiteID != nil {
		if err := e.checkSite(ctx, *req.SiteID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	hireDate, _ := validator.IsValidDate(req.HireDate)
	base := decimal.Zero
	if req.BaseSalary != nil {
		base = *req.BaseSalary
	}

	emp := &employee.Employee{
		SiteID:           req.SiteID,
		EmployeeCode:     req.EmployeeCode,
		FullName:         req.FullName,
		PhoneNumber:      req.PhoneNumber,
		Address:          req.Address,
		HireDate:         hireDate,
		EmploymentType:   employee.EmploymentType(req.EmploymentType),
		EmploymentStatus: employee.EmploymentStatusActive,
		HourlyWage:       req.HourlyWage,
		BaseSalary:       base,
		Allowances:       req.Allowances,
		Deductions:       req.Deductions,
	}
	if err := e.repo.Create(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return mapEmployeeToResponse(emp), nil
}

// Get implements employee.Service.
func (e *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := e.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return mapEmployeeToResponse(emp), nil
}

// List implements employee.Service.
func (e *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := e.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for i := range employees {
		responses = append(responses, mapEmployeeToResponse(&employees[i]))
	}
	return responses, nil
}

// Update implements employee.Service.
func (e *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := e.repo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if req.SiteID != nil {
		if err := e.checkSite(ctx, *req.SiteID); err != nil {
			return employee.EmployeeResponse{}, err
		}
		emp.SiteID = req.SiteID
	}
	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		emp.PhoneNumber = req.PhoneNumber
	}
	if req.Address != nil {
		emp.Address = req.Address
	}
	if req.EmploymentType != nil {
		emp.EmploymentType = employee.EmploymentType(*req.EmploymentType)
	}
	if req.HourlyWage != nil {
		emp.HourlyWage = *req.HourlyWage
	}
	if req.BaseSalary != nil {
		emp.BaseSalary = *req.BaseSalary
	}
	if req.Allowances != nil {
		emp.Allowances = *req.Allowances
	}
	if req.Deductions != nil {
		emp.Deductions = *req.Deductions
	}
	if req.ResignationDate != nil {
		d, _ := validator.IsValidDate(*req.ResignationDate)
		emp.ResignationDate = &d
		emp.EmploymentStatus = employee.EmploymentStatusResigned
	}
	now := time.Now().UTC()
	emp.UpdatedAt = now

	if err := e.repo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return mapEmployeeToResponse(emp), nil
}

// Delete implements employee.Service.
func (e *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if err := e.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}

func (e *EmployeeServiceImpl) checkSite(ctx context.Context, siteID string) error {
	s, err := e.siteRepo.GetByID(ctx, siteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.ErrSiteNotFound
		}
		return fmt.Errorf("failed to get site: %w", err)
	}
	if !s.Active {
		return site.ErrSiteInactive
	}
	return nil
}

func datePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02")
	return &format
}

func mapEmployeeToResponse(emp *employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:               emp.ID,
		EmployeeCode:     emp.EmployeeCode,
		FullName:         emp.FullName,
		PhoneNumber:      emp.PhoneNumber,
		Address:          emp.Address,
		SiteID:           emp.SiteID,
		SiteName:         emp.SiteName,
		HireDate:         emp.HireDate.Format("2006-01-02"),
		ResignationDate:  datePtrToString(emp.ResignationDate),
		EmploymentType:   string(emp.EmploymentType),
		EmploymentStatus: string(emp.EmploymentStatus),
		HourlyWage:       emp.HourlyWage,
		BaseSalary:       emp.BaseSalary,
		Allowances:       emp.Allowances,
		Deductions:       emp.Deductions,
	}
}
