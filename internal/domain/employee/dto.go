package employee

import (
	"context"

	"github.com/genbaworks/kintai-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode   string           `json:"employee_code"`
	FullName       string           `json:"full_name"`
	PhoneNumber    *string          `json:"phone_number,omitempty"`
	Address        *string          `json:"address,omitempty"`
	HireDate       string           `json:"hire_date"`
	EmploymentType string           `json:"employment_type"`
	SiteID         *string          `json:"site_id,omitempty"`
	HourlyWage     decimal.Decimal  `json:"hourly_wage"`
	BaseSalary     *decimal.Decimal `json:"base_salary,omitempty"`
	Allowances     []PayLine        `json:"allowances,omitempty"`
	Deductions     []PayLine        `json:"deductions,omitempty"`
}

func validatePayLines(field string, lines []PayLine, errs validator.ValidationErrors) validator.ValidationErrors {
	for _, l := range lines {
		if validator.IsEmpty(l.Name) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "every line needs a name"})
			break
		}
		if l.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "amounts must be non-negative"})
			break
		}
	}
	return errs
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is required"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be YYYY-MM-DD"})
	}
	switch EmploymentType(r.EmploymentType) {
	case EmploymentTypeFullTime, EmploymentTypePartTime, EmploymentTypeContract:
	default:
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "must be full_time, part_time or contract"})
	}
	if r.HourlyWage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourly_wage", Message: "must be non-negative"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	errs = validatePayLines("allowances", r.Allowances, errs)
	errs = validatePayLines("deductions", r.Deductions, errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID              string           `json:"-"`
	FullName        *string          `json:"full_name,omitempty"`
	PhoneNumber     *string          `json:"phone_number,omitempty"`
	Address         *string          `json:"address,omitempty"`
	SiteID          *string          `json:"site_id,omitempty"`
	EmploymentType  *string          `json:"employment_type,omitempty"`
	HourlyWage      *decimal.Decimal `json:"hourly_wage,omitempty"`
	BaseSalary      *decimal.Decimal `json:"base_salary,omitempty"`
	Allowances      *[]PayLine       `json:"allowances,omitempty"`
	Deductions      *[]PayLine       `json:"deductions,omitempty"`
	ResignationDate *string          `json:"resignation_date,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.HourlyWage != nil && r.HourlyWage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourly_wage", Message: "must be non-negative"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if r.Allowances != nil {
		errs = validatePayLines("allowances", *r.Allowances, errs)
	}
	if r.Deductions != nil {
		errs = validatePayLines("deductions", *r.Deductions, errs)
	}
	if r.ResignationDate != nil {
		if _, ok := validator.IsValidDate(*r.ResignationDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "resignation_date", Message: "must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID               string          `json:"id"`
	EmployeeCode     string          `json:"employee_code"`
	FullName         string          `json:"full_name"`
	PhoneNumber      *string         `json:"phone_number,omitempty"`
	Address          *string         `json:"address,omitempty"`
	SiteID           *string         `json:"site_id,omitempty"`
	SiteName         *string         `json:"site_name,omitempty"`
	HireDate         string          `json:"hire_date"`
	ResignationDate  *string         `json:"resignation_date,omitempty"`
	EmploymentType   string          `json:"employment_type"`
	EmploymentStatus string          `json:"employment_status"`
	HourlyWage       decimal.Decimal `json:"hourly_wage"`
	BaseSalary       decimal.Decimal `json:"base_salary"`
	Allowances       []PayLine       `json:"allowances,omitempty"`
	Deductions       []PayLine       `json:"deductions,omitempty"`
}

// Service is the employee administration surface.
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context) ([]EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}
