package worktime

import "github.com/shopspring/decimal"

// PayLine is a fixed allowance or deduction applied on top of the computed
// premiums.
type PayLine struct {
	Name   string
	Amount decimal.Decimal
}

// PayBreakdown is the monetary result of one employee-period. All amounts
// are whole units of the smallest currency denomination.
type PayBreakdown struct {
	BaseSalary      decimal.Decimal
	OvertimePay     decimal.Decimal
	NightPay        decimal.Decimal
	HolidayPay      decimal.Decimal
	TotalAllowances decimal.Decimal
	TotalGross      decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
}

var sixty = decimal.NewFromInt(60)
var hundred = decimal.NewFromInt(100)

// CalculatePay converts classified hour buckets into money.
//
//	overtimePay = overtime/60 * wage * overtimeRate/100
//	nightPay    = night/60    * wage * nightRate/100
//	holidayPay  = holiday/60  * wage * holidayRate/100
//	gross       = base + premiums + sum(allowances)
//	net         = gross - sum(deductions)
//
// Each premium is rounded to the nearest whole currency unit. A negative
// wage, base salary, or a premium rate below 100 is rejected with
// ErrInvalidConfiguration before anything is computed.
func CalculatePay(buckets HourBuckets, hourlyWage, baseSalary decimal.Decimal, settings Settings, allowances, deductions []PayLine) (PayBreakdown, error) {
	if hourlyWage.IsNegative() || baseSalary.IsNegative() {
		return PayBreakdown{}, ErrInvalidConfiguration
	}
	for _, rate := range []int{settings.OvertimeRate, settings.NightWorkRate, settings.HolidayWorkRate} {
		if rate < 100 {
			return PayBreakdown{}, ErrInvalidConfiguration
		}
	}

	overtimePay := premium(buckets.Overtime, hourlyWage, settings.OvertimeRate)
	nightPay := premium(buckets.Night, hourlyWage, settings.NightWorkRate)
	holidayPay := premium(buckets.Holiday, hourlyWage, settings.HolidayWorkRate)

	totalAllowances := sumLines(allowances)
	totalDeductions := sumLines(deductions)

	gross := baseSalary.Add(overtimePay).Add(nightPay).Add(holidayPay).Add(totalAllowances)

	return PayBreakdown{
		BaseSalary:      baseSalary.Round(0),
		OvertimePay:     overtimePay,
		NightPay:        nightPay,
		HolidayPay:      holidayPay,
		TotalAllowances: totalAllowances,
		TotalGross:      gross.Round(0),
		TotalDeductions: totalDeductions,
		NetSalary:       gross.Sub(totalDeductions).Round(0),
	}, nil
}

// HourlyBasePay values the regular bucket at the plain hourly wage, for
// staff paid by the hour rather than a fixed monthly base.
func HourlyBasePay(buckets HourBuckets, hourlyWage decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(buckets.Regular)).Div(sixty).Mul(hourlyWage).Round(0)
}

func premium(minutes int, wage decimal.Decimal, rate int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(sixty).
		Mul(wage).
		Mul(decimal.NewFromInt(int64(rate))).Div(hundred).
		Round(0)
}

func sumLines(lines []PayLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total.Round(0)
}
