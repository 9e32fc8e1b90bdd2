package alert

import (
	"context"
	"time"

	"github.com/genbaworks/kintai-backend-go/internal/pkg/validator"
)

type Filter struct {
	EmployeeID *string
	SiteID     *string
	Type       *Type
	Severity   *Severity
	Status     *Status
	Page       int
	Limit      int
}

type ResolveRequest struct {
	ID         string `json:"-"`
	Resolution string `json:"resolution"`
}

func (r *ResolveRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Resolution) {
		errs = append(errs, validator.ValidationError{Field: "resolution", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AlertResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	SiteID       *string `json:"site_id,omitempty"`
	SiteName     *string `json:"site_name,omitempty"`
	Date         string  `json:"date"`
	Type         string  `json:"type"`
	Severity     string  `json:"severity"`
	Title        string  `json:"title"`
	Message      string  `json:"message"`
	Status       string  `json:"status"`
	ReadAt       *string `json:"read_at,omitempty"`
	ResolvedAt   *string `json:"resolved_at,omitempty"`
	ResolvedBy   *string `json:"resolved_by,omitempty"`
	Resolution   *string `json:"resolution,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type ListAlertsResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Alerts     []AlertResponse `json:"alerts"`
}

// Service is the manager-facing alert surface. Evaluate is also driven by
// the scheduler once per day.
type Service interface {
	List(ctx context.Context, filter Filter) (ListAlertsResponse, error)
	Get(ctx context.Context, id string) (AlertResponse, error)
	MarkRead(ctx context.Context, id string) (AlertResponse, error)
	Resolve(ctx context.Context, req ResolveRequest) (AlertResponse, error)
	// Evaluate runs the monthly and daily checks for every active employee
	// as of date and persists whatever is not already open. It returns the
	// number of alerts created.
	Evaluate(ctx context.Context, date time.Time) (int, error)
}
