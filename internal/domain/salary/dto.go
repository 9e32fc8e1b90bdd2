package salary

import (
	"context"

	"github.com/genbaworks/kintai-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CalculateRequest struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type StatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *StatusRequest) Validate() error {
	switch Status(r.Status) {
	case StatusDraft, StatusCalculated, StatusApproved, StatusPaid:
		return nil
	}
	return validator.ValidationErrors{{Field: "status", Message: "must be draft, calculated, approved or paid"}}
}

type RecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	Year         int     `json:"year"`
	Month        int     `json:"month"`

	WorkDays        int `json:"work_days"`
	AbsentDays      int `json:"absent_days"`
	LateDays        int `json:"late_days"`
	OvertimeDays    int `json:"overtime_days"`
	RegularMinutes  int `json:"regular_minutes"`
	OvertimeMinutes int `json:"overtime_minutes"`
	NightMinutes    int `json:"night_minutes"`
	HolidayMinutes  int `json:"holiday_minutes"`

	BaseSalary      decimal.Decimal `json:"base_salary"`
	OvertimePay     decimal.Decimal `json:"overtime_pay"`
	NightPay        decimal.Decimal `json:"night_pay"`
	HolidayPay      decimal.Decimal `json:"holiday_pay"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	NetSalary       decimal.Decimal `json:"net_salary"`

	Status          string `json:"status"`
	SettingsVersion int    `json:"settings_version"`
}

type CalculateResponse struct {
	Calculated int              `json:"calculated"`
	Skipped    int              `json:"skipped"`
	Records    []RecordResponse `json:"records"`
}

type Service interface {
	Calculate(ctx context.Context, req CalculateRequest) (CalculateResponse, error)
	Get(ctx context.Context, id string) (RecordResponse, error)
	List(ctx context.Context, filter Filter) ([]RecordResponse, error)
	ChangeStatus(ctx context.Context, req StatusRequest, actorID string) (RecordResponse, error)
}
