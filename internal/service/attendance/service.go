package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/genbaworks/kintai-backend-go/internal/domain/attendance"
	"github.com/genbaworks/kintai-backend-go/internal/domain/company"
	"github.com/genbaworks/kintai-backend-go/internal/domain/employee"
	"github.com/genbaworks/kintai-backend-go/internal/domain/salary"
	"github.com/genbaworks/kintai-backend-go/internal/domain/site"
	"github.com/genbaworks/kintai-backend-go/internal/domain/worktime"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/database"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/utils"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type AttendanceServiceImpl struct {
	db           *database.DB
	repo         attendance.Repository
	employeeRepo employee.Repository
	siteRepo     site.Repository
	companyRepo  company.Repository
	salaryRepo   salary.Repository
}

func NewAttendanceService(
	db *database.DB,
	repo attendance.Repository,
	employeeRepo employee.Repository,
	siteRepo site.Repository,
	companyRepo company.Repository,
	salaryRepo salary.Repository,
) attendance.Service {
	return &AttendanceServiceImpl{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		siteRepo:     siteRepo,
		companyRepo:  companyRepo,
		salaryRepo:   salaryRepo,
	}
}

func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return employeeID, nil
}

// ClockIn implements attendance.Service.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.PunchRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := a.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.RecordResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.EmploymentStatus == employee.EmploymentStatusResigned {
		return attendance.RecordResponse{}, employee.ErrEmployeeResigned
	}

	comp, err := a.companyRepo.Get(ctx)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get work settings: %w", err)
	}
	settings := comp.Settings

	now := req.When()
	workDate := dateOf(now)

	existing, err := a.repo.GetByEmployeeDate(ctx, employeeID, workDate)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return attendance.RecordResponse{}, fmt.Errorf("failed to check today's record: %w", err)
	}
	if existing != nil && existing.ClockIn != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyClockedIn
	}

	scheduledStart := atClock(workDate, settings.StandardStartTime)
	earliest := scheduledStart.Add(-time.Duration(settings.ClockInWindowMinutes) * time.Minute)
	if now.Before(earliest) {
		return attendance.RecordResponse{}, attendance.ErrClockWindowClosed
	}

	if err := a.checkGeofence(ctx, emp.SiteID, req.Latitude, req.Longitude); err != nil {
		return attendance.RecordResponse{}, err
	}

	rec := &attendance.Record{
		EmployeeID: employeeID,
		SiteID:     emp.SiteID,
		WorkDate:   workDate,
		ClockIn:    &now,
		Status:     attendance.StatusWorking,
		ClockInLat: req.Latitude,
		ClockInLng: req.Longitude,
	}
	if err := a.repo.Create(ctx, rec); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return mapRecordToResponse(rec), nil
}

// ClockOut implements attendance.Service.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.PunchRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := req.When()

	rec, err := a.openRecord(ctx, employeeID, now)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !now.After(*rec.ClockIn) {
		return attendance.RecordResponse{}, attendance.ErrClockOutBeforeIn
	}

	if err := a.checkGeofence(ctx, rec.SiteID, req.Latitude, req.Longitude); err != nil {
		return attendance.RecordResponse{}, err
	}

	comp, err := a.companyRepo.Get(ctx)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get work settings: %w", err)
	}
	settings := comp.Settings

	// A break left running is closed at the clock-out time.
	if open := rec.OpenBreak(); open != nil {
		end := now
		open.EndTime = &end
		if err := a.repo.UpdateBreak(ctx, open); err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to close open break: %w", err)
		}
	}

	rec.ClockOut = &now
	rec.ClockOutLat = req.Latitude
	rec.ClockOutLng = req.Longitude

	if err := a.insertAutoBreak(ctx, rec, settings); err != nil {
		return attendance.RecordResponse{}, err
	}

	if err := finalizeRecord(rec, settings); err != nil {
		return attendance.RecordResponse{}, err
	}

	if err := a.repo.Update(ctx, rec); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapRecordToResponse(rec), nil
}

// openRecord finds the record the punch closes: today's, or yesterday's
// when a night shift crosses midnight.
func (a *AttendanceServiceImpl) openRecord(ctx context.Context, employeeID string, now time.Time) (*attendance.Record, error) {
	today := dateOf(now)

	rec, err := a.repo.GetByEmployeeDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get today's record: %w", err)
	}
	if rec != nil {
		if rec.ClockOut != nil {
			return nil, attendance.ErrAlreadyClockedOut
		}
		if rec.ClockIn != nil {
			return rec, nil
		}
	}

	yesterday := today.AddDate(0, 0, -1)
	rec, err = a.repo.GetByEmployeeDate(ctx, employeeID, yesterday)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get yesterday's record: %w", err)
	}
	if rec != nil && rec.Working() {
		return rec, nil
	}
	return nil, attendance.ErrNotClockedIn
}

// insertAutoBreak adds the statutory break when a long shift recorded none.
func (a *AttendanceServiceImpl) insertAutoBreak(ctx context.Context, rec *attendance.Record, settings worktime.Settings) error {
	if !settings.AutoBreakEnabled || len(rec.Breaks) > 0 {
		return nil
	}

	span := rec.ClockOut.Sub(*rec.ClockIn)
	if span < time.Duration(settings.AutoBreakThresholdHours)*time.Hour {
		return nil
	}

	breakLen := time.Duration(settings.AutoBreakMinutes) * time.Minute
	start := rec.ClockIn.Add((span - breakLen) / 2)
	end := start.Add(breakLen)

	b := attendance.BreakRecord{
		AttendanceID: rec.ID,
		StartTime:    start,
		EndTime:      &end,
		AutoInserted: true,
	}
	if err := a.repo.CreateBreak(ctx, &b); err != nil {
		return fmt.Errorf("failed to insert auto break: %w", err)
	}
	rec.Breaks = append(rec.Breaks, b)
	return nil
}

// finalizeRecord classifies a completed in/out pair and derives the status.
func finalizeRecord(rec *attendance.Record, settings worktime.Settings) error {
	buckets, err := worktime.ClassifySegment(*rec.ClockIn, *rec.ClockOut, rec.BreakIntervals(), settings, rec.IsHoliday)
	if err != nil {
		return err
	}
	rounded := worktime.RoundBuckets(buckets, settings)

	rec.WorkMinutes = rounded.Total()
	rec.OvertimeMinutes = rounded.Overtime
	rec.NightMinutes = rounded.Night

	rec.BreakMinutes = 0
	for _, b := range rec.BreakIntervals() {
		rec.BreakMinutes += b.Minutes()
	}

	scheduledStart := atClock(rec.WorkDate, settings.StandardStartTime)
	scheduledEnd := atClock(rec.WorkDate, settings.StandardEndTime)
	if !scheduledEnd.After(scheduledStart) {
		scheduledEnd = scheduledEnd.AddDate(0, 0, 1)
	}
	rec.Status = attendance.DeriveStatus(
		*rec.ClockIn, *rec.ClockOut,
		scheduledStart, scheduledEnd,
		settings.LateArrivalGraceMinutes, settings.EarlyLeaveGraceMinutes,
	)
	return nil
}

func (a *AttendanceServiceImpl) checkGeofence(ctx context.Context, siteID *string, lat, lng *float64) error {
	if siteID == nil {
		return nil
	}

	s, err := a.siteRepo.GetByID(ctx, *siteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.ErrSiteNotFound
		}
		return fmt.Errorf("failed to get site: %w", err)
	}
	if !s.HasGeofence() {
		return nil
	}
	if lat == nil || lng == nil {
		return attendance.ErrLocationRequired
	}

	distance := utils.HaversineDistance(*lat, *lng, *s.Latitude, *s.Longitude)
	if distance > float64(*s.GeofenceRadiusM) {
		return site.ErrOutsideGeofence
	}
	return nil
}

// StartBreak implements attendance.Service.
func (a *AttendanceServiceImpl) StartBreak(ctx context.Context, req attendance.PunchRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := req.When()
	rec, err := a.openRecord(ctx, employeeID, now)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if rec.OpenBreak() != nil {
		return attendance.RecordResponse{}, attendance.ErrBreakAlreadyOpen
	}

	b := attendance.BreakRecord{
		AttendanceID: rec.ID,
		StartTime:    now,
	}
	if err := a.repo.CreateBreak(ctx, &b); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to start break: %w", err)
	}
	rec.Breaks = append(rec.Breaks, b)

	return mapRecordToResponse(rec), nil
}

// EndBreak implements attendance.Service.
func (a *AttendanceServiceImpl) EndBreak(ctx context.Context, req attendance.PunchRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := req.When()
	rec, err := a.openRecord(ctx, employeeID, now)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	open := rec.OpenBreak()
	if open == nil {
		return attendance.RecordResponse{}, attendance.ErrNoOpenBreak
	}
	if !now.After(open.StartTime) {
		return attendance.RecordResponse{}, attendance.ErrClockOutBeforeIn
	}

	open.EndTime = &now
	if err := a.repo.UpdateBreak(ctx, open); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to end break: %w", err)
	}

	return mapRecordToResponse(rec), nil
}

// Today implements attendance.Service.
func (a *AttendanceServiceImpl) Today(ctx context.Context, employeeID string) (attendance.RecordResponse, error) {
	rec, err := a.repo.GetByEmployeeDate(ctx, employeeID, dateOf(time.Now().UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.RecordResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get today's record: %w", err)
	}
	return mapRecordToResponse(rec), nil
}

// Get implements attendance.Service.
func (a *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.RecordResponse, error) {
	rec, err := a.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.RecordResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return mapRecordToResponse(rec), nil
}

// List implements attendance.Service.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.Filter) (attendance.ListRecordsResponse, error) {
	records, err := a.repo.List(ctx, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, mapRecordToResponse(&records[i]))
	}
	return attendance.ListRecordsResponse{Records: responses, Total: len(responses)}, nil
}

// Correct implements attendance.Service. Admin fixes to punches re-run the
// classification unless no complete in/out pair remains.
func (a *AttendanceServiceImpl) Correct(ctx context.Context, req attendance.CorrectionRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := a.repo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.RecordResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	// A record whose month has an approved or paid salary run is immutable.
	sal, err := a.salaryRepo.GetByEmployeePeriod(ctx, rec.EmployeeID, rec.WorkDate.Year(), int(rec.WorkDate.Month()))
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get salary record: %w", err)
	}
	if sal != nil && sal.Locked() {
		return attendance.RecordResponse{}, attendance.ErrRecordFinalized
	}

	if req.ClockIn != nil {
		t, _ := validator.IsValidDateTime(*req.ClockIn)
		rec.ClockIn = &t
	}
	if req.ClockOut != nil {
		t, _ := validator.IsValidDateTime(*req.ClockOut)
		rec.ClockOut = &t
	}
	if req.IsHoliday != nil {
		rec.IsHoliday = *req.IsHoliday
	}
	if req.Note != nil {
		rec.Note = req.Note
	}

	if rec.Finalized() {
		if !rec.ClockOut.After(*rec.ClockIn) {
			return attendance.RecordResponse{}, attendance.ErrClockOutBeforeIn
		}
		comp, err := a.companyRepo.Get(ctx)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to get work settings: %w", err)
		}
		if err := finalizeRecord(rec, comp.Settings); err != nil {
			return attendance.RecordResponse{}, err
		}
	}

	if err := a.repo.Update(ctx, rec); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}
	return mapRecordToResponse(rec), nil
}

// dateOf truncates a timestamp to its work date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// atClock anchors an "HH:MM" clock string on a work date.
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

func mapRecordToResponse(rec *attendance.Record) attendance.RecordResponse {
	breaks := make([]attendance.BreakResponse, 0, len(rec.Breaks))
	for _, b := range rec.Breaks {
		breaks = append(breaks, attendance.BreakResponse{
			ID:           b.ID,
			StartTime:    b.StartTime.Format(time.RFC3339),
			EndTime:      timePtrToString(b.EndTime),
			AutoInserted: b.AutoInserted,
		})
	}

	return attendance.RecordResponse{
		ID:              rec.ID,
		EmployeeID:      rec.EmployeeID,
		EmployeeName:    rec.EmployeeName,
		SiteID:          rec.SiteID,
		SiteName:        rec.SiteName,
		WorkDate:        rec.WorkDate.Format("2006-01-02"),
		ClockIn:         timePtrToString(rec.ClockIn),
		ClockOut:        timePtrToString(rec.ClockOut),
		Status:          string(rec.Status),
		IsHoliday:       rec.IsHoliday,
		Note:            rec.Note,
		WorkMinutes:     rec.WorkMinutes,
		OvertimeMinutes: rec.OvertimeMinutes,
		NightMinutes:    rec.NightMinutes,
		BreakMinutes:    rec.BreakMinutes,
		Breaks:          breaks,
	}
}
