package salary

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/genbaworks/kintai-backend-go/internal/domain/attendance"
	"github.com/genbaworks/kintai-backend-go/internal/domain/company"
	"github.com/genbaworks/kintai-backend-go/internal/domain/employee"
	"github.com/genbaworks/kintai-backend-go/internal/domain/salary"
	"github.com/genbaworks/kintai-backend-go/internal/domain/worktime"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== IN-MEMORY FAKES =====

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

type fakeAttendanceRepo struct {
	records []attendance.Record
}

func (f *fakeAttendanceRepo) Create(_ context.Context, r *attendance.Record) error {
	f.records = append(f.records, *r)
	return nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, _ string) (*attendance.Record, error) {
	return nil, pgx.ErrNoRows
}

func (f *fakeAttendanceRepo) GetByEmployeeDate(_ context.Context, _ string, _ time.Time) (*attendance.Record, error) {
	return nil, pgx.ErrNoRows
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.Filter) ([]attendance.Record, error) {
	return f.records, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeRange(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.records {
		if r.EmployeeID == employeeID && !r.WorkDate.Before(from) && !r.WorkDate.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListOpenBefore(_ context.Context, _ time.Time) ([]attendance.Record, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, _ *attendance.Record) error   { return nil }
func (f *fakeAttendanceRepo) CreateBreak(_ context.Context, _ *attendance.BreakRecord) error {
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

type fakeCompanyRepo struct {
	company *company.Company
}

func (f *fakeCompanyRepo) Get(_ context.Context) (*company.Company, error)           { return f.company, nil }
func (f *fakeCompanyRepo) UpdateProfile(_ context.Context, _ *company.Company) error { return nil }
func (f *fakeCompanyRepo) UpdateSettings(_ context.Context, c *company.Company, _ int) error {
	f.company = c
	return nil
}
func (f *fakeCompanyRepo) GetSettingsVersion(_ context.Context, _ int) (*company.Company, error) {
	return f.company, nil
}

// ===== HELPERS =====

const testEmployeeID = "emp-1"

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func finalizedRecord(d int, workMin, overtimeMin int, status attendance.Status) attendance.Record {
	in := day(d).Add(9 * time.Hour)
	out := in.Add(time.Duration(workMin) * time.Minute)
	return attendance.Record{
		ID:              fmt.Sprintf("att-%d", d),
		EmployeeID:      testEmployeeID,
		WorkDate:        day(d),
		ClockIn:         &in,
		ClockOut:        &out,
		Status:          status,
		WorkMinutes:     workMin,
		OvertimeMinutes: overtimeMin,
	}
}

type salaryFixture struct {
	repo    *fakeSalaryRepo
	service salary.Service
}

func newSalaryFixture(emp *employee.Employee, records []attendance.Record) *salaryFixture {
	repo := newFakeSalaryRepo()
	svc := NewSalaryService(
		nil,
		repo,
		&fakeAttendanceRepo{records: records},
		&fakeEmployeeRepo{employees: map[string]*employee.Employee{emp.ID: emp}},
		&fakeCompanyRepo{company: &company.Company{ID: "co-1", Settings: worktime.DefaultSettings()}},
	)
	return &salaryFixture{repo: repo, service: svc}
}

func hourlyEmployee() *employee.Employee {
	return &employee.Employee{
		ID:               testEmployeeID,
		EmployeeCode:     "E001",
		FullName:         "Taro Yamada",
		EmploymentStatus: employee.EmploymentStatusActive,
		HourlyWage:       decimal.NewFromInt(2000),
		Allowances:       []employee.PayLine{{Name: "Site allowance", Amount: decimal.NewFromInt(3000)}},
		Deductions:       []employee.PayLine{{Name: "Insurance", Amount: decimal.NewFromInt(1500)}},
	}
}

// ===== CALCULATION =====

func TestSalaryService_Calculate_DayCountersAndPayLines(t *testing.T) {
	records := []attendance.Record{
		finalizedRecord(2, 540, 60, attendance.StatusLate),
		finalizedRecord(3, 480, 0, attendance.StatusPresent),
		{EmployeeID: testEmployeeID, WorkDate: day(4), Status: attendance.StatusAbsent},
	}
	fx := newSalaryFixture(hourlyEmployee(), records)

	resp, err := fx.service.Calculate(context.Background(), salary.CalculateRequest{Year: 2026, Month: 3})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Calculated)
	require.Len(t, resp.Records, 1)

	rec := resp.Records[0]
	assert.Equal(t, 2, rec.WorkDays)
	assert.Equal(t, 1, rec.AbsentDays)
	assert.Equal(t, 1, rec.LateDays)
	assert.Equal(t, 1, rec.OvertimeDays)
	assert.Equal(t, 960, rec.RegularMinutes)
	assert.Equal(t, 60, rec.OvertimeMinutes)

	// 960 regular minutes at 2000/h is 32000; one overtime hour at 125%
	// is 2500; the configured allowance and deduction lines apply on top.
	assert.True(t, rec.BaseSalary.Equal(decimal.NewFromInt(32000)), "base %s", rec.BaseSalary)
	assert.True(t, rec.OvertimePay.Equal(decimal.NewFromInt(2500)), "overtime %s", rec.OvertimePay)
	assert.True(t, rec.TotalAllowances.Equal(decimal.NewFromInt(3000)), "allowances %s", rec.TotalAllowances)
	assert.True(t, rec.TotalDeductions.Equal(decimal.NewFromInt(1500)), "deductions %s", rec.TotalDeductions)
	assert.True(t, rec.TotalGross.Equal(decimal.NewFromInt(37500)), "gross %s", rec.TotalGross)
	assert.True(t, rec.NetSalary.Equal(decimal.NewFromInt(36000)), "net %s", rec.NetSalary)
}

func TestSalaryService_Calculate_SkipsLockedRecords(t *testing.T) {
	fx := newSalaryFixture(hourlyEmployee(), []attendance.Record{
		finalizedRecord(2, 480, 0, attendance.StatusPresent),
	})

	require.NoError(t, fx.repo.Upsert(context.Background(), &salary.Record{
		EmployeeID: testEmployeeID,
		Year:       2026,
		Month:      3,
		Status:     salary.StatusApproved,
		NetSalary:  decimal.NewFromInt(99999),
	}))
	upsertsBefore := fx.repo.upserts

	resp, err := fx.service.Calculate(context.Background(), salary.CalculateRequest{Year: 2026, Month: 3})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Calculated)
	assert.Equal(t, 1, resp.Skipped)
	assert.Equal(t, upsertsBefore, fx.repo.upserts)

	kept, err := fx.repo.GetByEmployeePeriod(context.Background(), testEmployeeID, 2026, 3)
	require.NoError(t, err)
	assert.True(t, kept.NetSalary.Equal(decimal.NewFromInt(99999)))
}

func TestSalaryService_Calculate_RecalculationKeepsID(t *testing.T) {
	fx := newSalaryFixture(hourlyEmployee(), []attendance.Record{
		finalizedRecord(2, 480, 0, attendance.StatusPresent),
	})

	first, err := fx.service.Calculate(context.Background(), salary.CalculateRequest{Year: 2026, Month: 3})
	require.NoError(t, err)
	second, err := fx.service.Calculate(context.Background(), salary.CalculateRequest{Year: 2026, Month: 3})
	require.NoError(t, err)

	require.Len(t, first.Records, 1)
	require.Len(t, second.Records, 1)
	assert.Equal(t, first.Records[0].ID, second.Records[0].ID)
}

// ===== STATUS TRANSITIONS =====

func TestSalaryService_ChangeStatus_ApproveRecordsActor(t *testing.T) {
	fx := newSalaryFixture(hourlyEmployee(), []attendance.Record{
		finalizedRecord(2, 480, 0, attendance.StatusPresent),
	})
	resp, err := fx.service.Calculate(context.Background(), salary.CalculateRequest{Year: 2026, Month: 3})
	require.NoError(t, err)
	id := resp.Records[0].ID

	approved, err := fx.service.ChangeStatus(context.Background(), salary.StatusRequest{ID: id, Status: "approved"}, "user-9")
	require.NoError(t, err)

	assert.Equal(t, "approved", approved.Status)
	stored, err := fx.repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, stored.ApprovedBy)
	assert.Equal(t, "user-9", *stored.ApprovedBy)
	assert.NotNil(t, stored.ApprovedAt)
}

func TestSalaryService_ChangeStatus_PaidIsTerminal(t *testing.T) {
	fx := newSalaryFixture(hourlyEmployee(), []attendance.Record{
		finalizedRecord(2, 480, 0, attendance.StatusPresent),
	})
	resp, err := fx.service.Calculate(context.Background(), salary.CalculateRequest{Year: 2026, Month: 3})
	require.NoError(t, err)
	id := resp.Records[0].ID

	_, err = fx.service.ChangeStatus(context.Background(), salary.StatusRequest{ID: id, Status: "approved"}, "user-9")
	require.NoError(t, err)
	_, err = fx.service.ChangeStatus(context.Background(), salary.StatusRequest{ID: id, Status: "paid"}, "user-9")
	require.NoError(t, err)

	_, err = fx.service.ChangeStatus(context.Background(), salary.StatusRequest{ID: id, Status: "draft"}, "user-9")
	assert.ErrorIs(t, err, salary.ErrInvalidTransition)
}
