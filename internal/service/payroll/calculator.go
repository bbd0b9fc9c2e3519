package payroll

import (
	"github.com/agrifarm/farmpay-backend-go/internal/domain/attendance"
	"github.com/agrifarm/farmpay-backend-go/internal/domain/employee"
	"github.com/agrifarm/farmpay-backend-go/internal/domain/payroll"
	"github.com/agrifarm/farmpay-backend-go/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// Compute converts one employee's inputs into the computed pay components
// for one period. Pure and deterministic: same inputs, same output.
//
// All intermediate arithmetic runs at full precision; only the outgoing
// monetary fields are rounded to 2 decimal places. ETF is an employer-side
// contribution and is reported without being subtracted from net. The loan
// deduction is clamped to gross minus EPF so loan recovery alone can never
// push net pay negative.
func Compute(snap employee.Snapshot, ot attendance.OvertimeSummary, cfg settings.PayrollSettings) (payroll.DraftItem, error) {
	// Settings validation rejects non-positive divisors before they get
	// here; hitting one is a precondition violation, not recoverable.
	if !cfg.DaysPerMonth.IsPositive() || !cfg.HoursPerDay.IsPositive() {
		return payroll.DraftItem{}, payroll.ErrInvalidDivisor
	}

	perDayRate := snap.BasicSalary.Div(cfg.DaysPerMonth)
	perHourRate := perDayRate.Div(cfg.HoursPerDay)

	otTotal := ot.WeekdayOTHours.Mul(perHourRate).Mul(cfg.OTWeekdayMultiplier).
		Add(ot.HolidayOTHours.Mul(perHourRate).Mul(cfg.OTHolidayMultiplier))

	gross := snap.BasicSalary.Add(otTotal).Add(snap.Allowances)
	epf := gross.Mul(cfg.EPFRate)
	etf := gross.Mul(cfg.ETFRate)

	loanDeduction := decimal.Min(snap.LoanBalance, gross.Sub(epf))
	if loanDeduction.IsNegative() {
		loanDeduction = decimal.Zero
	}

	net := gross.Sub(epf).Sub(loanDeduction)

	return payroll.DraftItem{
		EmployeeID:     snap.ID,
		EmployeeName:   snap.Name,
		EmployeeCode:   snap.Code,
		BasicSalary:    snap.BasicSalary,
		Allowances:     snap.Allowances,
		LoanBalance:    snap.LoanBalance,
		WeekdayOTHours: ot.WeekdayOTHours,
		HolidayOTHours: ot.HolidayOTHours,
		OTTotal:        otTotal.Round(2),
		Gross:          gross.Round(2),
		EPF:            epf.Round(2),
		ETF:            etf.Round(2),
		LoanDeduction:  loanDeduction.Round(2),
		Net:            net.Round(2),
		Status:         payroll.ItemStatusReady,
	}, nil
}
