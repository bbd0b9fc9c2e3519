package settings

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollSettings - Versioned payroll parameters. Every successful update
// produces a new version; drafts pin the version they were computed with.
type PayrollSettings struct {
	ID                  string
	Version             int64
	DaysPerMonth        decimal.Decimal
	HoursPerDay         decimal.Decimal
	OTWeekdayMultiplier decimal.Decimal
	OTHolidayMultiplier decimal.Decimal
	EPFRate             decimal.Decimal
	ETFRate             decimal.Decimal
	CreatedAt           time.Time
}

// Default returns the settings used before the first explicit update.
func Default() PayrollSettings {
	return PayrollSettings{
		Version:             0,
		DaysPerMonth:        decimal.NewFromInt(28),
		HoursPerDay:         decimal.NewFromInt(8),
		OTWeekdayMultiplier: decimal.NewFromFloat(1.5),
		OTHolidayMultiplier: decimal.NewFromInt(2),
		EPFRate:             decimal.NewFromFloat(0.08),
		ETFRate:             decimal.NewFromFloat(0.03),
	}
}
