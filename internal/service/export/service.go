package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/genbaworks/kintai-backend-go/internal/domain/attendance"
	"github.com/genbaworks/kintai-backend-go/internal/domain/company"
	"github.com/genbaworks/kintai-backend-go/internal/domain/salary"
	"github.com/jackc/pgx/v5"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Service renders attendance and salary data into downloadable documents.
type Service interface {
	AttendanceCSV(ctx context.Context, filter attendance.Filter) ([]byte, error)
	SalaryWorkbook(ctx context.Context, year, month int) ([]byte, error)
	PayslipPDF(ctx context.Context, salaryID string) ([]byte, error)
}

type ExportServiceImpl struct {
	attendanceRepo attendance.Repository
	salaryRepo     salary.Repository
	companyRepo    company.Repository
}

func NewExportService(
	attendanceRepo attendance.Repository,
	salaryRepo salary.Repository,
	companyRepo company.Repository,
) Service {
	return &ExportServiceImpl{
		attendanceRepo: attendanceRepo,
		salaryRepo:     salaryRepo,
		companyRepo:    companyRepo,
	}
}

var attendanceCSVHeader = []string{
	"work_date", "employee", "site", "clock_in", "clock_out", "status",
	"work_minutes", "overtime_minutes", "night_minutes", "break_minutes", "holiday",
}

// AttendanceCSV implements Service.
func (e *ExportServiceImpl) AttendanceCSV(ctx context.Context, filter attendance.Filter) ([]byte, error) {
	records, err := e.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(attendanceCSVHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for i := range records {
		rec := &records[i]
		row := []string{
			rec.WorkDate.Format("2006-01-02"),
			strPtrOr(rec.EmployeeName, rec.EmployeeID),
			strPtrOr(rec.SiteName, ""),
			timePtrOr(rec.ClockIn),
			timePtrOr(rec.ClockOut),
			string(rec.Status),
			strconv.Itoa(rec.WorkMinutes),
			strconv.Itoa(rec.OvertimeMinutes),
			strconv.Itoa(rec.NightMinutes),
			strconv.Itoa(rec.BreakMinutes),
			strconv.FormatBool(rec.IsHoliday),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// SalaryWorkbook implements Service. One sheet per period, one row per
// employee record.
func (e *ExportServiceImpl) SalaryWorkbook(ctx context.Context, year, month int) ([]byte, error) {
	records, err := e.salaryRepo.List(ctx, salary.Filter{Year: year, Month: month})
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("%04d-%02d", year, month)
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Code", "Employee", "Work Days", "Absent", "Late", "OT Days",
		"Regular (h)", "Overtime (h)", "Night (h)", "Holiday (h)",
		"Base Salary", "Overtime Pay", "Night Pay", "Holiday Pay",
		"Allowances", "Deductions", "Gross", "Net", "Status",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetColWidth(sheet, "A", "B", 18)

	for row, rec := range records {
		values := []interface{}{
			strPtrOr(rec.EmployeeCode, ""),
			strPtrOr(rec.EmployeeName, rec.EmployeeID),
			rec.WorkDays,
			rec.AbsentDays,
			rec.LateDays,
			rec.OvertimeDays,
			float64(rec.RegularMinutes) / 60.0,
			float64(rec.OvertimeMinutes) / 60.0,
			float64(rec.NightMinutes) / 60.0,
			float64(rec.HolidayMinutes) / 60.0,
			rec.BaseSalary.InexactFloat64(),
			rec.OvertimePay.InexactFloat64(),
			rec.NightPay.InexactFloat64(),
			rec.HolidayPay.InexactFloat64(),
			rec.TotalAllowances.InexactFloat64(),
			rec.TotalDeductions.InexactFloat64(),
			rec.TotalGross.InexactFloat64(),
			rec.NetSalary.InexactFloat64(),
			string(rec.Status),
		}
		for col, val := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, val)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// PayslipPDF implements Service.
func (e *ExportServiceImpl) PayslipPDF(ctx context.Context, salaryID string) ([]byte, error) {
	rec, err := e.salaryRepo.GetByID(ctx, salaryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, salary.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get salary record: %w", err)
	}

	comp, err := e.companyRepo.Get(ctx)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	companyName := ""
	if comp != nil {
		companyName = comp.Name
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	if companyName != "" {
		pdf.Cell(0, 8, companyName)
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", strPtrOr(rec.EmployeeName, rec.EmployeeID), strPtrOr(rec.EmployeeCode, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %04d-%02d", rec.Year, rec.Month))
	pdf.Ln(10)

	lines := []struct {
		label string
		value string
	}{
		{"Work days", strconv.Itoa(rec.WorkDays)},
		{"Regular hours", minutesToHours(rec.RegularMinutes)},
		{"Overtime hours", minutesToHours(rec.OvertimeMinutes)},
		{"Night hours", minutesToHours(rec.NightMinutes)},
		{"Holiday hours", minutesToHours(rec.HolidayMinutes)},
		{"Base salary", rec.BaseSalary.String()},
		{"Overtime pay", rec.OvertimePay.String()},
		{"Night pay", rec.NightPay.String()},
		{"Holiday pay", rec.HolidayPay.String()},
		{"Allowances", rec.TotalAllowances.String()},
		{"Gross", rec.TotalGross.String()},
		{"Deductions", rec.TotalDeductions.String()},
	}
	for _, l := range lines {
		pdf.Cell(60, 7, l.label)
		pdf.Cell(0, 7, l.value)
		pdf.Ln(7)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(60, 8, "Net salary")
	pdf.Cell(0, 8, rec.NetSalary.String())

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

func minutesToHours(minutes int) string {
	return fmt.Sprintf("%.2f", float64(minutes)/60.0)
}

func strPtrOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func timePtrOr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
