package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/genbaworks/kintai-backend-go/internal/domain/attendance"
	"github.com/genbaworks/kintai-backend-go/internal/domain/company"
	"github.com/genbaworks/kintai-backend-go/internal/domain/employee"
	"github.com/genbaworks/kintai-backend-go/internal/domain/salary"
	"github.com/genbaworks/kintai-backend-go/internal/domain/site"
	"github.com/genbaworks/kintai-backend-go/internal/domain/worktime"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== IN-MEMORY FAKES =====

type fakeAttendanceRepo struct {
	byID     map[string]*attendance.Record
	byDate   map[string]*attendance.Record
	breakSeq int
	seq      int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		byID:   make(map[string]*attendance.Record),
		byDate: make(map[string]*attendance.Record),
	}
}

func dateKey(employeeID string, d time.Time) string {
	return employeeID + "/" + d.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, r *attendance.Record) error {
	f.seq++
	r.ID = fmt.Sprintf("att-%d", f.seq)
	f.byID[r.ID] = r
	f.byDate[dateKey(r.EmployeeID, r.WorkDate)] = r
	return nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (*attendance.Record, error) {
	if r, ok := f.byID[id]; ok {
		return r, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAttendanceRepo) GetByEmployeeDate(_ context.Context, employeeID string, workDate time.Time) (*attendance.Record, error) {
	if r, ok := f.byDate[dateKey(employeeID, workDate)]; ok {
		return r, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.Filter) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.byID {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeRange(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.byID {
		if r.EmployeeID == employeeID && !r.WorkDate.Before(from) && !r.WorkDate.After(to) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListOpenBefore(_ context.Context, cutoff time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.byID {
		if r.Working() && r.ClockIn.Before(cutoff) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, r *attendance.Record) error {
	f.byID[r.ID] = r
	f.byDate[dateKey(r.EmployeeID, r.WorkDate)] = r
	return nil
}

func (f *fakeAttendanceRepo) CreateBreak(_ context.Context, b *attendance.BreakRecord) error {
	f.breakSeq++
	b.ID = fmt.Sprintf("brk-%d", f.breakSeq)
	return nil
}

func (f *fakeAttendanceRepo) UpdateBreak(_ context.Context, _ *attendance.BreakRecord) error {
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]*employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e *employee.Employee) error {
	f.employees[e.ID] = e
	return nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (*employee.Employee, error) {
	if e, ok := f.employees[id]; ok {
		return e, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, _ string) (*employee.Employee, error) {
	return nil, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.EmploymentStatus == employee.EmploymentStatusActive {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) ListBySite(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, e *employee.Employee) error {
	f.employees[e.ID] = e
	return nil
}

func (f *fakeEmployeeRepo) SoftDelete(_ context.Context, _ string) error { return nil }

type fakeSiteRepo struct {
	sites map[string]*site.Site
}

func (f *fakeSiteRepo) Create(_ context.Context, s *site.Site) error { f.sites[s.ID] = s; return nil }

func (f *fakeSiteRepo) GetByID(_ context.Context, id string) (*site.Site, error) {
	if s, ok := f.sites[id]; ok {
		return s, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeSiteRepo) List(_ context.Context, _ bool) ([]site.Site, error) { return nil, nil }
func (f *fakeSiteRepo) Update(_ context.Context, _ *site.Site) error        { return nil }
func (f *fakeSiteRepo) SoftDelete(_ context.Context, _ string) error        { return nil }

type fakeCompanyRepo struct {
	company *company.Company
}

func (f *fakeCompanyRepo) Get(_ context.Context) (*company.Company, error) {
	return f.company, nil
}

func (f *fakeCompanyRepo) UpdateProfile(_ context.Context, _ *company.Company) error { return nil }

func (f *fakeCompanyRepo) UpdateSettings(_ context.Context, c *company.Company, _ int) error {
	f.company = c
	return nil
}

func (f *fakeCompanyRepo) GetSettingsVersion(_ context.Context, _ int) (*company.Company, error) {
	return f.company, nil
}

type fakeSalaryRepo struct {
	byPeriod map[string]*salary.Record
	upserts  int
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{byPeriod: make(map[string]*salary.Record)}
}

func periodKey(employeeID string, year, month int) string {
	return fmt.Sprintf("%s/%04d-%02d", employeeID, year, month)
}

func (f *fakeSalaryRepo) Upsert(_ context.Context, r *salary.Record) error {
	f.upserts++
	if r.ID == "" {
		r.ID = fmt.Sprintf("sal-%d", f.upserts)
	}
	f.byPeriod[periodKey(r.EmployeeID, r.Year, r.Month)] = r
	return nil
}

func (f *fakeSalaryRepo) GetByID(_ context.Context, id string) (*salary.Record, error) {
	for _, r := range f.byPeriod {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeSalaryRepo) GetByEmployeePeriod(_ context.Context, employeeID string, year, month int) (*salary.Record, error) {
	if r, ok := f.byPeriod[periodKey(employeeID, year, month)]; ok {
		return r, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeSalaryRepo) List(_ context.Context, _ salary.Filter) ([]salary.Record, error) {
	var out []salary.Record
	for _, r := range f.byPeriod {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeSalaryRepo) UpdateStatus(_ context.Context, r *salary.Record) error {
	f.byPeriod[periodKey(r.EmployeeID, r.Year, r.Month)] = r
	return nil
}

// ===== HELPERS =====

const testEmployeeID = "emp-1"

func employeeCtx(t *testing.T, employeeID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"employee_id": employeeID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type attendanceFixture struct {
	repo       *fakeAttendanceRepo
	salaryRepo *fakeSalaryRepo
	service    attendance.Service
}

func newAttendanceFixture(settings worktime.Settings) *attendanceFixture {
	repo := newFakeAttendanceRepo()
	salaryRepo := newFakeSalaryRepo()
	employeeRepo := &fakeEmployeeRepo{employees: map[string]*employee.Employee{
		testEmployeeID: {
			ID:               testEmployeeID,
			EmployeeCode:     "E001",
			FullName:         "Taro Yamada",
			EmploymentType:   employee.EmploymentTypeFullTime,
			EmploymentStatus: employee.EmploymentStatusActive,
			HourlyWage:       decimal.NewFromInt(2000),
		},
	}}
	siteRepo := &fakeSiteRepo{sites: map[string]*site.Site{}}
	companyRepo := &fakeCompanyRepo{company: &company.Company{ID: "co-1", Name: "Genba Works", Settings: settings}}

	svc := NewAttendanceService(nil, repo, employeeRepo, siteRepo, companyRepo, salaryRepo)
	return &attendanceFixture{repo: repo, salaryRepo: salaryRepo, service: svc}
}

func punchAt(ts string) attendance.PunchRequest {
	return attendance.PunchRequest{Timestamp: ts}
}

// ===== CLOCK IN / CLOCK OUT =====

func TestAttendanceService_ClockIn_Success(t *testing.T) {
	fx := newAttendanceFixture(worktime.DefaultSettings())
	ctx := employeeCtx(t, testEmployeeID)

	resp, err := fx.service.ClockIn(ctx, punchAt("2026-03-02T09:00:00Z"))

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusWorking), resp.Status)
	assert.Equal(t, "2026-03-02", resp.WorkDate)
	require.NotNil(t, resp.ClockIn)
	assert.Nil(t, resp.ClockOut)
}

func TestAttendanceService_ClockIn_Twice(t *testing.T) {
	fx := newAttendanceFixture(worktime.DefaultSettings())
	ctx := employeeCtx(t, testEmployeeID)

	_, err := fx.service.ClockIn(ctx, punchAt("2026-03-02T09:00:00Z"))
	require.NoError(t, err)

	_, err = fx.service.ClockIn(ctx, punchAt("2026-03-02T09:05:00Z"))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestAttendanceService_ClockIn_BeforeWindow(t *testing.T) {
	// Default window opens 30 minutes before the 09:00 start.
	fx := newAttendanceFixture(worktime.DefaultSettings())
	ctx := employeeCtx(t, testEmployeeID)

	_, err := fx.service.ClockIn(ctx, punchAt("2026-03-02T08:00:00Z"))
	assert.ErrorIs(t, err, attendance.ErrClockWindowClosed)
}

func TestAttendanceService_ClockOut_FullDayInsertsAutoBreak(t *testing.T) {
	fx := newAttendanceFixture(worktime.DefaultSettings())
	ctx := employeeCtx(t, testEmployeeID)

	_, err := fx.service.ClockIn(ctx, punchAt("2026-03-02T09:00:00Z"))
	require.NoError(t, err)

	resp, err := fx.service.ClockOut(ctx, punchAt("2026-03-02T18:00:00Z"))
	require.NoError(t, err)

	// 9h span, no break punched: the 45 min statutory break is inserted,
	// leaving 495 worked minutes of which 15 exceed the 8h threshold.
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.Equal(t, 495, resp.WorkMinutes)
	assert.Equal(t, 15, resp.OvertimeMinutes)
	assert.Equal(t, 45, resp.BreakMinutes)
	require.Len(t, resp.Breaks, 1)
	assert.True(t, resp.Breaks[0].AutoInserted)
}

func TestAttendanceService_ClockOut_WithoutClockIn(t *testing.T) {
	fx := newAttendanceFixture(worktime.DefaultSettings())
	ctx := employeeCtx(t, testEmployeeID)

	_, err := fx.service.ClockOut(ctx, punchAt("2026-03-02T18:00:00Z"))
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestAttendanceService_ClockOut_NoAutoBreakWhenPunched(t *testing.T) {
	fx := newAttendanceFixture(worktime.DefaultSettings())
	ctx := employeeCtx(t, testEmployeeID)

	_, err := fx.service.ClockIn(ctx, punchAt("2026-03-02T09:00:00Z"))
	require.NoError(t, err)
	_, err = fx.service.StartBreak(ctx, punchAt("2026-03-02T12:00:00Z"))
	require.NoError(t, err)
	_, err = fx.service.EndBreak(ctx, punchAt("2026-03-02T13:00:00Z"))
	require.NoError(t, err)

	resp, err := fx.service.ClockOut(ctx, punchAt("2026-03-02T18:00:00Z"))
	require.NoError(t, err)

	assert.Equal(t, 480, resp.WorkMinutes)
	assert.Equal(t, 0, resp.OvertimeMinutes)
	assert.Equal(t, 60, resp.BreakMinutes)
	require.Len(t, resp.Breaks, 1)
	assert.False(t, resp.Breaks[0].AutoInserted)
}

func TestAttendanceService_ClockIn_GeofenceEnforced(t *testing.T) {
	fx := newAttendanceFixture(worktime.DefaultSettings())

	lat, lng := 35.6812, 139.7671
	radius := 100
	siteID := "site-1"
	fxSiteRepo := &fakeSiteRepo{sites: map[string]*site.Site{
		siteID: {ID: siteID, Name: "Tokyo Station", Latitude: &lat, Longitude: &lng, GeofenceRadiusM: &radius, Active: true},
	}}
	employeeRepo := &fakeEmployeeRepo{employees: map[string]*employee.Employee{
		testEmployeeID: {
			ID:               testEmployeeID,
			SiteID:           &siteID,
			EmploymentStatus: employee.EmploymentStatusActive,
		},
	}}
	companyRepo := &fakeCompanyRepo{company: &company.Company{Settings: worktime.DefaultSettings()}}
	svc := NewAttendanceService(nil, fx.repo, employeeRepo, fxSiteRepo, companyRepo, fx.salaryRepo)
	ctx := employeeCtx(t, testEmployeeID)

	// No coordinates at a geofenced site.
	_, err := svc.ClockIn(ctx, punchAt("2026-03-02T09:00:00Z"))
	assert.ErrorIs(t, err, attendance.ErrLocationRequired)

	// Shinjuku is well outside a 100 m fence around Tokyo Station.
	farLat, farLng := 35.6896, 139.7006
	req := punchAt("2026-03-02T09:00:00Z")
	req.Latitude, req.Longitude = &farLat, &farLng
	_, err = svc.ClockIn(ctx, req)
	assert.ErrorIs(t, err, site.ErrOutsideGeofence)

	// On the doorstep.
	req.Latitude, req.Longitude = &lat, &lng
	_, err = svc.ClockIn(ctx, req)
	assert.NoError(t, err)
}

// ===== CORRECTIONS =====

func TestAttendanceService_Correct_RecomputesTotals(t *testing.T) {
	fx := newAttendanceFixture(worktime.DefaultSettings())
	ctx := employeeCtx(t, testEmployeeID)

	_, err := fx.service.ClockIn(ctx, punchAt("2026-03-02T09:00:00Z"))
	require.NoError(t, err)
	resp, err := fx.service.ClockOut(ctx, punchAt("2026-03-02T17:00:00Z"))
	require.NoError(t, err)

	newOut := "2026-03-02T19:00:00Z"
	corrected, err := fx.service.Correct(ctx, attendance.CorrectionRequest{ID: resp.ID, ClockOut: &newOut})
	require.NoError(t, err)

	// 10h span minus the auto break is 555 minutes, 75 over the threshold.
	assert.Equal(t, 555, corrected.WorkMinutes)
	assert.Equal(t, 75, corrected.OvertimeMinutes)
}

func TestAttendanceService_Correct_RejectedWhenSalaryLocked(t *testing.T) {
	fx := newAttendanceFixture(worktime.DefaultSettings())
	ctx := employeeCtx(t, testEmployeeID)

	_, err := fx.service.ClockIn(ctx, punchAt("2026-03-02T09:00:00Z"))
	require.NoError(t, err)
	resp, err := fx.service.ClockOut(ctx, punchAt("2026-03-02T18:00:00Z"))
	require.NoError(t, err)

	// Approving the month's salary freezes its attendance.
	require.NoError(t, fx.salaryRepo.Upsert(context.Background(), &salary.Record{
		EmployeeID: testEmployeeID,
		Year:       2026,
		Month:      3,
		Status:     salary.StatusApproved,
	}))

	newOut := "2026-03-02T19:00:00Z"
	_, err = fx.service.Correct(ctx, attendance.CorrectionRequest{ID: resp.ID, ClockOut: &newOut})
	assert.ErrorIs(t, err, attendance.ErrRecordFinalized)
}

func TestAttendanceService_Correct_AllowedWhenSalaryDraft(t *testing.T) {
	fx := newAttendanceFixture(worktime.DefaultSettings())
	ctx := employeeCtx(t, testEmployeeID)

	_, err := fx.service.ClockIn(ctx, punchAt("2026-03-02T09:00:00Z"))
	require.NoError(t, err)
	resp, err := fx.service.ClockOut(ctx, punchAt("2026-03-02T18:00:00Z"))
	require.NoError(t, err)

	require.NoError(t, fx.salaryRepo.Upsert(context.Background(), &salary.Record{
		EmployeeID: testEmployeeID,
		Year:       2026,
		Month:      3,
		Status:     salary.StatusCalculated,
	}))

	note := "forgot badge"
	_, err = fx.service.Correct(ctx, attendance.CorrectionRequest{ID: resp.ID, Note: &note})
	assert.NoError(t, err)
}

// ===== BREAKS =====

func TestAttendanceService_StartBreak_Twice(t *testing.T) {
	fx := newAttendanceFixture(worktime.DefaultSettings())
	ctx := employeeCtx(t, testEmployeeID)

	_, err := fx.service.ClockIn(ctx, punchAt("2026-03-02T09:00:00Z"))
	require.NoError(t, err)
	_, err = fx.service.StartBreak(ctx, punchAt("2026-03-02T12:00:00Z"))
	require.NoError(t, err)

	_, err = fx.service.StartBreak(ctx, punchAt("2026-03-02T12:10:00Z"))
	assert.ErrorIs(t, err, attendance.ErrBreakAlreadyOpen)
}

func TestAttendanceService_EndBreak_WithoutOpen(t *testing.T) {
	fx := newAttendanceFixture(worktime.DefaultSettings())
	ctx := employeeCtx(t, testEmployeeID)

	_, err := fx.service.ClockIn(ctx, punchAt("2026-03-02T09:00:00Z"))
	require.NoError(t, err)

	_, err = fx.service.EndBreak(ctx, punchAt("2026-03-02T13:00:00Z"))
	assert.ErrorIs(t, err, attendance.ErrNoOpenBreak)
}
