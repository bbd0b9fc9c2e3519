package payroll

import (
	"testing"

	"github.com/agrifarm/farmpay-backend-go/internal/domain/attendance"
	"github.com/agrifarm/farmpay-backend-go/internal/domain/employee"
	"github.com/agrifarm/farmpay-backend-go/internal/domain/payroll"
	"github.com/agrifarm/farmpay-backend-go/internal/domain/settings"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() settings.PayrollSettings {
	return settings.PayrollSettings{
		Version:             1,
		DaysPerMonth:        decimal.NewFromInt(28),
		HoursPerDay:         decimal.NewFromInt(8),
		OTWeekdayMultiplier: decimal.NewFromFloat(1.5),
		OTHolidayMultiplier: decimal.NewFromInt(2),
		EPFRate:             decimal.NewFromFloat(0.08),
		ETFRate:             decimal.NewFromFloat(0.03),
	}
}

func TestCompute_WorkedExample(t *testing.T) {
	snap := employee.Snapshot{
		ID:          "emp-1",
		Name:        "Kasun Perera",
		Code:        "0001-0001",
		BasicSalary: decimal.NewFromInt(28000),
		Allowances:  decimal.NewFromInt(2000),
		LoanBalance: decimal.NewFromInt(5000),
	}
	ot := attendance.OvertimeSummary{
		EmployeeID:     "emp-1",
		WeekdayOTHours: decimal.NewFromInt(4),
		HolidayOTHours: decimal.Zero,
	}

	item, err := Compute(snap, ot, testSettings())
	require.NoError(t, err)

	assert.Equal(t, "750.00", item.OTTotal.StringFixed(2))
	assert.Equal(t, "30750.00", item.Gross.StringFixed(2))
	assert.Equal(t, "2460.00", item.EPF.StringFixed(2))
	assert.Equal(t, "922.50", item.ETF.StringFixed(2))
	assert.Equal(t, "5000.00", item.LoanDeduction.StringFixed(2))
	assert.Equal(t, "23290.00", item.Net.StringFixed(2))
	assert.Equal(t, payroll.ItemStatusReady, item.Status)
}

func TestCompute_Deterministic(t *testing.T) {
	snap := employee.Snapshot{
		ID:          "emp-1",
		BasicSalary: decimal.NewFromInt(31415),
		Allowances:  decimal.NewFromFloat(926.53),
		LoanBalance: decimal.NewFromInt(589),
	}
	ot := attendance.OvertimeSummary{
		WeekdayOTHours: decimal.NewFromFloat(7.93),
		HolidayOTHours: decimal.NewFromFloat(2.38),
	}

	first, err := Compute(snap, ot, testSettings())
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Compute(snap, ot, testSettings())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCompute_LoanClampKeepsNetNonNegative(t *testing.T) {
	// Loan balance far above what the period can recover.
	snap := employee.Snapshot{
		ID:          "emp-1",
		BasicSalary: decimal.NewFromInt(10000),
		LoanBalance: decimal.NewFromInt(500000),
	}

	item, err := Compute(snap, attendance.OvertimeSummary{}, testSettings())
	require.NoError(t, err)

	// gross=10000, epf=800: deduction is clamped to 9200 and net lands on zero.
	assert.Equal(t, "9200.00", item.LoanDeduction.StringFixed(2))
	assert.Equal(t, "0.00", item.Net.StringFixed(2))
	assert.False(t, item.Net.IsNegative())
	assert.True(t, item.LoanDeduction.LessThanOrEqual(item.Gross.Sub(item.EPF)))
}

func TestCompute_ZeroOvertimeMeansNoOTPay(t *testing.T) {
	snap := employee.Snapshot{
		ID:          "emp-1",
		BasicSalary: decimal.NewFromInt(28000),
		Allowances:  decimal.NewFromInt(1500),
	}

	item, err := Compute(snap, attendance.OvertimeSummary{}, testSettings())
	require.NoError(t, err)

	assert.Equal(t, "0.00", item.OTTotal.StringFixed(2))
	assert.Equal(t, "29500.00", item.Gross.StringFixed(2))
}

func TestCompute_HolidayOvertimeUsesHolidayMultiplier(t *testing.T) {
	snap := employee.Snapshot{
		ID:          "emp-1",
		BasicSalary: decimal.NewFromInt(28000),
	}
	ot := attendance.OvertimeSummary{
		HolidayOTHours: decimal.NewFromInt(3),
	}

	item, err := Compute(snap, ot, testSettings())
	require.NoError(t, err)

	// perHourRate=125, 3h at 2.0x = 750
	assert.Equal(t, "750.00", item.OTTotal.StringFixed(2))
}

func TestCompute_NonPositiveDivisorIsFatal(t *testing.T) {
	snap := employee.Snapshot{ID: "emp-1", BasicSalary: decimal.NewFromInt(28000)}

	cfg := testSettings()
	cfg.DaysPerMonth = decimal.Zero
	_, err := Compute(snap, attendance.OvertimeSummary{}, cfg)
	assert.ErrorIs(t, err, payroll.ErrInvalidDivisor)

	cfg = testSettings()
	cfg.HoursPerDay = decimal.NewFromInt(-1)
	_, err = Compute(snap, attendance.OvertimeSummary{}, cfg)
	assert.ErrorIs(t, err, payroll.ErrInvalidDivisor)
}

func TestCompute_RoundsOnlyFinalValues(t *testing.T) {
	// 1000/7/3 produces repeating decimals per hour; outputs still land on
	// exactly two decimal places.
	cfg := testSettings()
	cfg.DaysPerMonth = decimal.NewFromInt(7)
	cfg.HoursPerDay = decimal.NewFromInt(3)

	snap := employee.Snapshot{ID: "emp-1", BasicSalary: decimal.NewFromInt(1000)}
	ot := attendance.OvertimeSummary{WeekdayOTHours: decimal.NewFromInt(1)}

	item, err := Compute(snap, ot, cfg)
	require.NoError(t, err)

	// perHour = 1000/7/3 = 47.619047..., OT at 1.5x = 71.428571... -> 71.43
	assert.Equal(t, "71.43", item.OTTotal.StringFixed(2))
	assert.True(t, item.OTTotal.Equal(item.OTTotal.Round(2)))
	assert.True(t, item.Gross.Equal(item.Gross.Round(2)))
	assert.True(t, item.Net.Equal(item.Net.Round(2)))
}
