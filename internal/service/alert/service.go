package alert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/genbaworks/kintai-backend-go/internal/domain/alert"
	"github.com/genbaworks/kintai-backend-go/internal/domain/attendance"
	"github.com/genbaworks/kintai-backend-go/internal/domain/company"
	"github.com/genbaworks/kintai-backend-go/internal/domain/employee"
	"github.com/genbaworks/kintai-backend-go/internal/domain/user"
	"github.com/genbaworks/kintai-backend-go/internal/domain/worktime"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/database"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/sse"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

// streakLookbackDays bounds the consecutive-workday scan. Anything beyond
// two weeks is already far past the alert threshold.
const streakLookbackDays = 14

type AlertServiceImpl struct {
	db             *database.DB
	repo           alert.Repository
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
	companyRepo    company.Repository
	userRepo       user.Repository
	hub            *sse.Hub
}

func NewAlertService(
	db *database.DB,
	repo alert.Repository,
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	companyRepo company.Repository,
	userRepo user.Repository,
	hub *sse.Hub,
) alert.Service {
	return &AlertServiceImpl{
		db:             db,
		repo:           repo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		companyRepo:    companyRepo,
		userRepo:       userRepo,
		hub:            hub,
	}
}

// List implements alert.Service.
func (s *AlertServiceImpl) List(ctx context.Context, filter alert.Filter) (alert.ListAlertsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	alerts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return alert.ListAlertsResponse{}, fmt.Errorf("failed to list alerts: %w", err)
	}

	responses := make([]alert.AlertResponse, 0, len(alerts))
	for i := range alerts {
		responses = append(responses, mapAlertToResponse(alerts[i]))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return alert.ListAlertsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Alerts:     responses,
	}, nil
}

// Get implements alert.Service.
func (s *AlertServiceImpl) Get(ctx context.Context, id string) (alert.AlertResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return alert.AlertResponse{}, alert.ErrAlertNotFound
		}
		return alert.AlertResponse{}, fmt.Errorf("failed to get alert: %w", err)
	}
	return mapAlertToResponse(a), nil
}

// MarkRead implements alert.Service.
func (s *AlertServiceImpl) MarkRead(ctx context.Context, id string) (alert.AlertResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return alert.AlertResponse{}, alert.ErrAlertNotFound
		}
		return alert.AlertResponse{}, fmt.Errorf("failed to get alert: %w", err)
	}
	if a.Status == alert.StatusResolved {
		return alert.AlertResponse{}, alert.ErrInvalidStatusChange
	}

	now := time.Now().UTC()
	if err := s.repo.MarkRead(ctx, id, now); err != nil {
		return alert.AlertResponse{}, fmt.Errorf("failed to mark alert read: %w", err)
	}
	a.Status = alert.StatusRead
	a.ReadAt = &now
	return mapAlertToResponse(a), nil
}

// Resolve implements alert.Service.
func (s *AlertServiceImpl) Resolve(ctx context.Context, req alert.ResolveRequest) (alert.AlertResponse, error) {
	if err := req.Validate(); err != nil {
		return alert.AlertResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return alert.AlertResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return alert.AlertResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	a, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return alert.AlertResponse{}, alert.ErrAlertNotFound
		}
		return alert.AlertResponse{}, fmt.Errorf("failed to get alert: %w", err)
	}
	if a.Status == alert.StatusResolved {
		return alert.AlertResponse{}, alert.ErrAlreadyResolved
	}

	now := time.Now().UTC()
	if err := s.repo.Resolve(ctx, req.ID, userID, req.Resolution, now); err != nil {
		return alert.AlertResponse{}, fmt.Errorf("failed to resolve alert: %w", err)
	}
	a.Status = alert.StatusResolved
	a.ResolvedAt = &now
	a.ResolvedBy = &userID
	a.Resolution = &req.Resolution
	return mapAlertToResponse(a), nil
}

// Evaluate implements alert.Service. The date is truncated to midnight so
// idempotence checks and persisted rows never carry a wall-clock component.
func (s *AlertServiceImpl) Evaluate(ctx context.Context, date time.Time) (int, error) {
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	comp, err := s.companyRepo.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get work settings: %w", err)
	}
	settings := comp.Settings

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list employees: %w", err)
	}

	created := 0
	for i := range employees {
		n, err := s.evaluateEmployee(ctx, &employees[i], date, settings)
		if err != nil {
			return created, err
		}
		created += n
	}
	return created, nil
}

func (s *AlertServiceImpl) evaluateEmployee(ctx context.Context, emp *employee.Employee, date time.Time, settings worktime.Settings) (int, error) {
	monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	from := monthStart
	if lookback := date.AddDate(0, 0, -streakLookbackDays); lookback.Before(from) {
		from = lookback
	}

	records, err := s.attendanceRepo.ListByEmployeeRange(ctx, emp.ID, from, date)
	if err != nil {
		return 0, fmt.Errorf("failed to list attendance for %s: %w", emp.ID, err)
	}

	worked := make(map[string]*attendance.Record, len(records))
	monthlyOvertime := 0
	for i := range records {
		rec := &records[i]
		if !rec.Finalized() {
			continue
		}
		worked[rec.WorkDate.Format("2006-01-02")] = rec
		if !rec.WorkDate.Before(monthStart) {
			monthlyOvertime += rec.OvertimeMinutes
		}
	}

	streak := 0
	for d := date; ; d = d.AddDate(0, 0, -1) {
		if _, ok := worked[d.Format("2006-01-02")]; !ok {
			break
		}
		streak++
		if streak > streakLookbackDays {
			break
		}
	}

	existing, err := s.repo.GetOpenByEmployeeDate(ctx, emp.ID, date)
	if err != nil {
		return 0, fmt.Errorf("failed to get open alerts for %s: %w", emp.ID, err)
	}

	candidates := alert.EvaluateMonthly(alert.MonthlyInput{
		EmployeeID:             emp.ID,
		SiteID:                 emp.SiteID,
		Date:                   date,
		MonthlyOvertimeMinutes: monthlyOvertime,
		ConsecutiveWorkDays:    streak,
	}, settings, existing)

	if rec, ok := worked[date.Format("2006-01-02")]; ok {
		candidates = append(candidates, alert.EvaluateDaily(dailyInputFromRecord(rec, settings), settings, existing)...)
	}

	if len(candidates) == 0 {
		return 0, nil
	}
	if err := s.repo.CreateBatch(ctx, candidates); err != nil {
		return 0, fmt.Errorf("failed to persist alerts for %s: %w", emp.ID, err)
	}

	s.notifyManagers(ctx, candidates)
	return len(candidates), nil
}

func dailyInputFromRecord(rec *attendance.Record, settings worktime.Settings) alert.DailyInput {
	in := alert.DailyInput{
		EmployeeID:    rec.EmployeeID,
		SiteID:        rec.SiteID,
		Date:          rec.WorkDate,
		WorkedMinutes: rec.WorkMinutes,
		BreakMinutes:  rec.BreakMinutes,
	}

	start := atClock(rec.WorkDate, settings.StandardStartTime)
	end := atClock(rec.WorkDate, settings.StandardEndTime)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	graceIn := start.Add(time.Duration(settings.LateArrivalGraceMinutes) * time.Minute)
	graceOut := end.Add(-time.Duration(settings.EarlyLeaveGraceMinutes) * time.Minute)

	if rec.ClockIn.After(graceIn) {
		in.LateMinutes = int(rec.ClockIn.Sub(start).Minutes())
	}
	if rec.ClockOut.Before(graceOut) {
		in.EarlyLeaveMinutes = int(end.Sub(*rec.ClockOut).Minutes())
	}
	return in
}

// notifyManagers pushes created alerts to every connected manager and admin.
// Delivery is best effort; a missed push still shows up in the alert list.
func (s *AlertServiceImpl) notifyManagers(ctx context.Context, alerts []alert.Alert) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return
	}

	var managerIDs []string
	for i := range users {
		if users[i].Active && users[i].CanApprove() {
			managerIDs = append(managerIDs, users[i].ID)
		}
	}

	for i := range alerts {
		s.hub.PublishToMany(managerIDs, sse.Event{
			Event: "alert.created",
			Data:  mapAlertToResponse(alerts[i]),
		})
	}
}

func atClock(date time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

func mapAlertToResponse(a alert.Alert) alert.AlertResponse {
	return alert.AlertResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		SiteID:       a.SiteID,
		SiteName:     a.SiteName,
		Date:         a.Date.Format("2006-01-02"),
		Type:         string(a.Type),
		Severity:     string(a.Severity),
		Title:        a.Title,
		Message:      a.Message,
		Status:       string(a.Status),
		ReadAt:       timePtrToString(a.ReadAt),
		ResolvedAt:   timePtrToString(a.ResolvedAt),
		ResolvedBy:   a.ResolvedBy,
		Resolution:   a.Resolution,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
}
