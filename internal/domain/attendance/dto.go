package attendance

import (
	"context"
	"time"

	"github.com/genbaworks/kintai-backend-go/internal/pkg/validator"
)

type PunchRequest struct {
	EmployeeID string   `json:"-"`
	Timestamp  string   `json:"timestamp"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Timestamp != "" {
		if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "must be an ISO8601 timestamp"})
		}
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{Field: "location", Message: "latitude and longitude must be set together"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// When reports the punch time: the client timestamp when one was sent,
// otherwise the server clock. Call Validate first.
func (r *PunchRequest) When() time.Time {
	if r.Timestamp == "" {
		return time.Now().UTC()
	}
	t, _ := validator.IsValidDateTime(r.Timestamp)
	return t
}

type CorrectionRequest struct {
	ID        string  `json:"-"`
	ClockIn   *string `json:"clock_in,omitempty"`
	ClockOut  *string `json:"clock_out,omitempty"`
	IsHoliday *bool   `json:"is_holiday,omitempty"`
	Note      *string `json:"note,omitempty"`
}

func (r *CorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ClockIn != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockIn); !ok {
			errs = append(errs, validator.ValidationError{Field: "clock_in", Message: "must be an ISO8601 timestamp"})
		}
	}
	if r.ClockOut != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockOut); !ok {
			errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "must be an ISO8601 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BreakResponse struct {
	ID           string  `json:"id"`
	StartTime    string  `json:"start_time"`
	EndTime      *string `json:"end_time,omitempty"`
	AutoInserted bool    `json:"auto_inserted"`
}

type RecordResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    *string         `json:"employee_name,omitempty"`
	SiteID          *string         `json:"site_id,omitempty"`
	SiteName        *string         `json:"site_name,omitempty"`
	WorkDate        string          `json:"work_date"`
	ClockIn         *string         `json:"clock_in,omitempty"`
	ClockOut        *string         `json:"clock_out,omitempty"`
	Status          string          `json:"status"`
	IsHoliday       bool            `json:"is_holiday"`
	Note            *string         `json:"note,omitempty"`
	WorkMinutes     int             `json:"work_minutes"`
	OvertimeMinutes int             `json:"overtime_minutes"`
	NightMinutes    int             `json:"night_minutes"`
	BreakMinutes    int             `json:"break_minutes"`
	Breaks          []BreakResponse `json:"breaks"`
}

type ListRecordsResponse struct {
	Records []RecordResponse `json:"records"`
	Total   int              `json:"total"`
}

type Service interface {
	ClockIn(ctx context.Context, req PunchRequest) (RecordResponse, error)
	ClockOut(ctx context.Context, req PunchRequest) (RecordResponse, error)
	StartBreak(ctx context.Context, req PunchRequest) (RecordResponse, error)
	EndBreak(ctx context.Context, req PunchRequest) (RecordResponse, error)
	Today(ctx context.Context, employeeID string) (RecordResponse, error)
	Get(ctx context.Context, id string) (RecordResponse, error)
	List(ctx context.Context, filter Filter) (ListRecordsResponse, error)
	Correct(ctx context.Context, req CorrectionRequest) (RecordResponse, error)
}
