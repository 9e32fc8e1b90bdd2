package salary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/genbaworks/kintai-backend-go/internal/domain/attendance"
	"github.com/genbaworks/kintai-backend-go/internal/domain/company"
	"github.com/genbaworks/kintai-backend-go/internal/domain/employee"
	"github.com/genbaworks/kintai-backend-go/internal/domain/salary"
	"github.com/genbaworks/kintai-backend-go/internal/domain/worktime"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type SalaryServiceImpl struct {
	db             *database.DB
	repo           salary.Repository
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
	companyRepo    company.Repository
}

func NewSalaryService(
	db *database.DB,
	repo salary.Repository,
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	companyRepo company.Repository,
) salary.Service {
	return &SalaryServiceImpl{
		db:             db,
		repo:           repo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		companyRepo:    companyRepo,
	}
}

// Calculate implements salary.Service. It reduces each employee's finalized
// attendance for the period into one record. Approved and paid records are
// never touched; the response counts them as skipped.
func (s *SalaryServiceImpl) Calculate(ctx context.Context, req salary.CalculateRequest) (salary.CalculateResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.CalculateResponse{}, err
	}

	comp, err := s.companyRepo.Get(ctx)
	if err != nil {
		return salary.CalculateResponse{}, fmt.Errorf("failed to get work settings: %w", err)
	}
	settings := comp.Settings

	employees, err := s.targetEmployees(ctx, req)
	if err != nil {
		return salary.CalculateResponse{}, err
	}

	from := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	resp := salary.CalculateResponse{Records: make([]salary.RecordResponse, 0, len(employees))}
	for i := range employees {
		emp := &employees[i]

		existing, err := s.repo.GetByEmployeePeriod(ctx, emp.ID, req.Year, req.Month)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return salary.CalculateResponse{}, fmt.Errorf("failed to get salary record: %w", err)
		}
		if existing != nil && existing.Locked() {
			resp.Skipped++
			continue
		}

		rec, err := s.calculateOne(ctx, emp, req.Year, req.Month, from, to, settings)
		if err != nil {
			return salary.CalculateResponse{}, err
		}
		if existing != nil {
			rec.ID = existing.ID
		}

		if err := s.repo.Upsert(ctx, rec); err != nil {
			return salary.CalculateResponse{}, fmt.Errorf("failed to save salary record: %w", err)
		}
		resp.Calculated++
		resp.Records = append(resp.Records, mapRecordToResponse(rec))
	}
	return resp, nil
}

func (s *SalaryServiceImpl) targetEmployees(ctx context.Context, req salary.CalculateRequest) ([]employee.Employee, error) {
	if req.EmployeeID != nil {
		emp, err := s.employeeRepo.GetByID(ctx, *req.EmployeeID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, employee.ErrEmployeeNotFound
			}
			return nil, fmt.Errorf("failed to get employee: %w", err)
		}
		return []employee.Employee{*emp}, nil
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func toPayLines(lines []employee.PayLine) []worktime.PayLine {
	if len(lines) == 0 {
		return nil
	}
	out := make([]worktime.PayLine, len(lines))
	for i, l := range lines {
		out[i] = worktime.PayLine{Name: l.Name, Amount: l.Amount}
	}
	return out
}

// calculateOne folds one employee-month of attendance into a draft record.
func (s *SalaryServiceImpl) calculateOne(ctx context.Context, emp *employee.Employee, year, month int, from, to time.Time, settings worktime.Settings) (*salary.Record, error) {
	records, err := s.attendanceRepo.ListByEmployeeRange(ctx, emp.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for %s: %w", emp.ID, err)
	}

	var buckets worktime.HourBuckets
	workDays, absentDays, lateDays, overtimeDays := 0, 0, 0, 0
	for i := range records {
		rec := &records[i]
		if rec.Status == attendance.StatusAbsent {
			absentDays++
			continue
		}
		if !rec.Finalized() {
			continue
		}
		workDays++
		if rec.Status == attendance.StatusLate {
			lateDays++
		}
		if rec.OvertimeMinutes > 0 {
			overtimeDays++
		}
		if rec.IsHoliday {
			buckets.Holiday += rec.WorkMinutes
		} else {
			buckets.Overtime += rec.OvertimeMinutes
			buckets.Regular += rec.WorkMinutes - rec.OvertimeMinutes
		}
		buckets.Night += rec.NightMinutes
	}

	base := emp.BaseSalary
	if !emp.Salaried() {
		base = worktime.HourlyBasePay(buckets, emp.HourlyWage)
	}

	pay, err := worktime.CalculatePay(buckets, emp.HourlyWage, base, settings, toPayLines(emp.Allowances), toPayLines(emp.Deductions))
	if err != nil {
		return nil, fmt.Errorf("failed to calculate pay for %s: %w", emp.ID, err)
	}

	now := time.Now().UTC()
	return &salary.Record{
		EmployeeID: emp.ID,
		Year:       year,
		Month:      month,

		WorkDays:        workDays,
		AbsentDays:      absentDays,
		LateDays:        lateDays,
		OvertimeDays:    overtimeDays,
		RegularMinutes:  buckets.Regular,
		OvertimeMinutes: buckets.Overtime,
		NightMinutes:    buckets.Night,
		HolidayMinutes:  buckets.Holiday,

		BaseSalary:      pay.BaseSalary,
		OvertimePay:     pay.OvertimePay,
		NightPay:        pay.NightPay,
		HolidayPay:      pay.HolidayPay,
		TotalAllowances: pay.TotalAllowances,
		TotalDeductions: pay.TotalDeductions,
		TotalGross:      pay.TotalGross,
		NetSalary:       pay.NetSalary,

		Status:          salary.StatusCalculated,
		SettingsVersion: settings.Version,
		CalculatedAt:    &now,

		EmployeeName: &emp.FullName,
		EmployeeCode: &emp.EmployeeCode,
	}, nil
}

// Get implements salary.Service.
func (s *SalaryServiceImpl) Get(ctx context.Context, id string) (salary.RecordResponse, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.RecordResponse{}, salary.ErrRecordNotFound
		}
		return salary.RecordResponse{}, fmt.Errorf("failed to get salary record: %w", err)
	}
	return mapRecordToResponse(rec), nil
}

// List implements salary.Service.
func (s *SalaryServiceImpl) List(ctx context.Context, filter salary.Filter) ([]salary.RecordResponse, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}

	responses := make([]salary.RecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, mapRecordToResponse(&records[i]))
	}
	return responses, nil
}

// ChangeStatus implements salary.Service.
func (s *SalaryServiceImpl) ChangeStatus(ctx context.Context, req salary.StatusRequest, actorID string) (salary.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.RecordResponse{}, err
	}

	rec, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.RecordResponse{}, salary.ErrRecordNotFound
		}
		return salary.RecordResponse{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	next := salary.Status(req.Status)
	if !salary.CanTransition(rec.Status, next) {
		return salary.RecordResponse{}, salary.ErrInvalidTransition
	}

	now := time.Now().UTC()
	switch next {
	case salary.StatusApproved:
		rec.ApprovedAt = &now
		rec.ApprovedBy = &actorID
	case salary.StatusPaid:
		rec.PaidAt = &now
	case salary.StatusDraft:
		rec.ApprovedAt = nil
		rec.ApprovedBy = nil
	}
	rec.Status = next

	if err := s.repo.UpdateStatus(ctx, rec); err != nil {
		return salary.RecordResponse{}, fmt.Errorf("failed to update salary status: %w", err)
	}
	return mapRecordToResponse(rec), nil
}

func mapRecordToResponse(rec *salary.Record) salary.RecordResponse {
	return salary.RecordResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		EmployeeCode: rec.EmployeeCode,
		Year:         rec.Year,
		Month:        rec.Month,

		WorkDays:        rec.WorkDays,
		AbsentDays:      rec.AbsentDays,
		LateDays:        rec.LateDays,
		OvertimeDays:    rec.OvertimeDays,
		RegularMinutes:  rec.RegularMinutes,
		OvertimeMinutes: rec.OvertimeMinutes,
		NightMinutes:    rec.NightMinutes,
		HolidayMinutes:  rec.HolidayMinutes,

		BaseSalary:      rec.BaseSalary,
		OvertimePay:     rec.OvertimePay,
		NightPay:        rec.NightPay,
		HolidayPay:      rec.HolidayPay,
		TotalAllowances: rec.TotalAllowances,
		TotalDeductions: rec.TotalDeductions,
		TotalGross:      rec.TotalGross,
		NetSalary:       rec.NetSalary,

		Status:          string(rec.Status),
		SettingsVersion: rec.SettingsVersion,
	}
}
