package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/genbaworks/kintai-backend-go/internal/domain/salary"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type salaryRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.Repository {
	return &salaryRepositoryImpl{db: db}
}

const salaryColumns = `
	r.id, r.employee_id, r.year, r.month,
	r.work_days, r.absent_days, r.late_days, r.overtime_days, r.regular_minutes, r.overtime_minutes, r.night_minutes, r.holiday_minutes,
	r.base_salary, r.overtime_pay, r.night_pay, r.holiday_pay,
	r.total_allowances, r.total_deductions, r.total_gross, r.net_salary,
	r.status, r.settings_version, r.calculated_at, r.approved_at, r.approved_by, r.paid_at,
	r.created_at, r.updated_at, e.full_name AS employee_name, e.employee_code`

const salaryFrom = `
	FROM salary_records r
	JOIN employees e ON e.id = r.employee_id`

func scanSalary(row interface{ Scan(dest ...any) error }) (*salary.Record, error) {
	var rec salary.Record
	err := row.Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.Year,
		&rec.Month,
		&rec.WorkDays,
		&rec.AbsentDays,
		&rec.LateDays,
		&rec.OvertimeDays,
		&rec.RegularMinutes,
		&rec.OvertimeMinutes,
		&rec.NightMinutes,
		&rec.HolidayMinutes,
		&rec.BaseSalary,
		&rec.OvertimePay,
		&rec.NightPay,
		&rec.HolidayPay,
		&rec.TotalAllowances,
		&rec.TotalDeductions,
		&rec.TotalGross,
		&rec.NetSalary,
		&rec.Status,
		&rec.SettingsVersion,
		&rec.CalculatedAt,
		&rec.ApprovedAt,
		&rec.ApprovedBy,
		&rec.PaidAt,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.EmployeeName,
		&rec.EmployeeCode,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Upsert implements salary.Repository. The (employee, year, month) pair is
// unique; recalculation replaces the previous figures in place.
func (r *salaryRepositoryImpl) Upsert(ctx context.Context, rec *salary.Record) error {
	q := GetQuerier(ctx, r.db)

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	query := `
		INSERT INTO salary_records (
			id, employee_id, year, month,
			work_days, absent_days, late_days, overtime_days, regular_minutes, overtime_minutes, night_minutes, holiday_minutes,
			base_salary, overtime_pay, night_pay, holiday_pay,
			total_allowances, total_deductions, total_gross, net_salary,
			status, settings_version, calculated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		ON CONFLICT (employee_id, year, month) DO UPDATE SET
			work_days = EXCLUDED.work_days,
			absent_days = EXCLUDED.absent_days,
			late_days = EXCLUDED.late_days,
			overtime_days = EXCLUDED.overtime_days,
			regular_minutes = EXCLUDED.regular_minutes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			night_minutes = EXCLUDED.night_minutes,
			holiday_minutes = EXCLUDED.holiday_minutes,
			base_salary = EXCLUDED.base_salary,
			overtime_pay = EXCLUDED.overtime_pay,
			night_pay = EXCLUDED.night_pay,
			holiday_pay = EXCLUDED.holiday_pay,
			total_allowances = EXCLUDED.total_allowances,
			total_deductions = EXCLUDED.total_deductions,
			total_gross = EXCLUDED.total_gross,
			net_salary = EXCLUDED.net_salary,
			status = EXCLUDED.status,
			settings_version = EXCLUDED.settings_version,
			calculated_at = EXCLUDED.calculated_at,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	return q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, rec.Year, rec.Month,
		rec.WorkDays, rec.AbsentDays, rec.LateDays, rec.OvertimeDays, rec.RegularMinutes, rec.OvertimeMinutes, rec.NightMinutes, rec.HolidayMinutes,
		rec.BaseSalary, rec.OvertimePay, rec.NightPay, rec.HolidayPay,
		rec.TotalAllowances, rec.TotalDeductions, rec.TotalGross, rec.NetSalary,
		rec.Status, rec.SettingsVersion, rec.CalculatedAt,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

// GetByID implements salary.Repository.
func (r *salaryRepositoryImpl) GetByID(ctx context.Context, id string) (*salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + salaryColumns + salaryFrom + ` WHERE r.id = $1`
	return scanSalary(q.QueryRow(ctx, query, id))
}

// GetByEmployeePeriod implements salary.Repository.
func (r *salaryRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (*salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + salaryColumns + salaryFrom + ` WHERE r.employee_id = $1 AND r.year = $2 AND r.month = $3`
	return scanSalary(q.QueryRow(ctx, query, employeeID, year, month))
}

// List implements salary.Repository.
func (r *salaryRepositoryImpl) List(ctx context.Context, filter salary.Filter) ([]salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	var where []string
	var args []interface{}
	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if filter.Year > 0 {
		add("r.year = $%d", filter.Year)
	}
	if filter.Month > 0 {
		add("r.month = $%d", filter.Month)
	}
	if filter.EmployeeID != "" {
		add("r.employee_id = $%d", filter.EmployeeID)
	}
	if filter.Status != "" {
		add("r.status = $%d", filter.Status)
	}

	query := `SELECT` + salaryColumns + salaryFrom
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY r.year DESC, r.month DESC, e.employee_code`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []salary.Record
	for rows.Next() {
		rec, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// UpdateStatus implements salary.Repository.
func (r *salaryRepositoryImpl) UpdateStatus(ctx context.Context, rec *salary.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_records
		SET status = $2, approved_at = $3, approved_by = $4, paid_at = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return q.QueryRow(ctx, query,
		rec.ID, rec.Status, rec.ApprovedAt, rec.ApprovedBy, rec.PaidAt,
	).Scan(&rec.UpdatedAt)
}
