package postgresql

import (
	"context"

	"github.com/genbaworks/kintai-backend-go/internal/domain/employee"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.user_id, e.site_id, e.employee_code, e.full_name, e.phone_number,
	e.address, e.hire_date, e.resignation_date, e.employment_type,
	e.employment_status, e.hourly_wage, e.base_salary,
	COALESCE(e.allowances, '[]'::jsonb), COALESCE(e.deductions, '[]'::jsonb),
	e.created_at, e.updated_at, e.deleted_at, s.name AS site_name`

const employeeFrom = `
	FROM employees e
	LEFT JOIN sites s ON s.id = e.site_id`

func scanEmployee(row interface{ Scan(dest ...any) error }) (*employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.SiteID,
		&e.EmployeeCode,
		&e.FullName,
		&e.PhoneNumber,
		&e.Address,
		&e.HireDate,
		&e.ResignationDate,
		&e.EmploymentType,
		&e.EmploymentStatus,
		&e.HourlyWage,
		&e.BaseSalary,
		&e.Allowances,
		&e.Deductions,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.DeletedAt,
		&e.SiteName,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create implements employee.Repository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e *employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	query := `
		INSERT INTO employees (
			id, user_id, site_id, employee_code, full_name, phone_number,
			address, hire_date, employment_type, employment_status,
			hourly_wage, base_salary, allowances, deductions
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at
	`
	return q.QueryRow(ctx, query,
		e.ID, e.UserID, e.SiteID, e.EmployeeCode, e.FullName, e.PhoneNumber,
		e.Address, e.HireDate, e.EmploymentType, e.EmploymentStatus,
		e.HourlyWage, e.BaseSalary, e.Allowances, e.Deductions,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
}

// GetByID implements employee.Repository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + employeeColumns + employeeFrom + ` WHERE e.id = $1 AND e.deleted_at IS NULL`
	return scanEmployee(q.QueryRow(ctx, query, id))
}

// GetByCode implements employee.Repository.
func (r *employeeRepositoryImpl) GetByCode(ctx context.Context, code string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + employeeColumns + employeeFrom + ` WHERE e.employee_code = $1 AND e.deleted_at IS NULL`
	return scanEmployee(q.QueryRow(ctx, query, code))
}

// ListActive implements employee.Repository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + employeeColumns + employeeFrom + `
		WHERE e.deleted_at IS NULL AND e.employment_status = 'active'
		ORDER BY e.employee_code`
	return r.list(ctx, q, query)
}

// ListBySite implements employee.Repository.
func (r *employeeRepositoryImpl) ListBySite(ctx context.Context, siteID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + employeeColumns + employeeFrom + `
		WHERE e.deleted_at IS NULL AND e.site_id = $1
		ORDER BY e.employee_code`
	return r.list(ctx, q, query, siteID)
}

func (r *employeeRepositoryImpl) list(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]employee.Employee, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

// Update implements employee.Repository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e *employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET user_id = $2, site_id = $3, full_name = $4, phone_number = $5,
		    address = $6, hire_date = $7, resignation_date = $8,
		    employment_type = $9, employment_status = $10,
		    hourly_wage = $11, base_salary = $12,
		    allowances = $13, deductions = $14, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at
	`
	return q.QueryRow(ctx, query,
		e.ID, e.UserID, e.SiteID, e.FullName, e.PhoneNumber,
		e.Address, e.HireDate, e.ResignationDate,
		e.EmploymentType, e.EmploymentStatus,
		e.HourlyWage, e.BaseSalary, e.Allowances, e.Deductions,
	).Scan(&e.UpdatedAt)
}

// SoftDelete implements employee.Repository.
func (r *employeeRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`
	var deleted string
	return q.QueryRow(ctx, query, id).Scan(&deleted)
}
