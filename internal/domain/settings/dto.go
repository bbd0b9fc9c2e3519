package settings

import (
	"github.com/agrifarm/farmpay-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayrollSettingsResponse struct {
	ID                  string          `json:"id,omitempty"`
	Version             int64           `json:"version"`
	DaysPerMonth        decimal.Decimal `json:"days_per_month"`
	HoursPerDay         decimal.Decimal `json:"hours_per_day"`
	OTWeekdayMultiplier decimal.Decimal `json:"ot_weekday_multiplier"`
	OTHolidayMultiplier decimal.Decimal `json:"ot_holiday_multiplier"`
	EPFRate             decimal.Decimal `json:"epf_rate"`
	ETFRate             decimal.Decimal `json:"etf_rate"`
}

type UpdatePayrollSettingsRequest struct {
	DaysPerMonth        *decimal.Decimal `json:"days_per_month,omitempty"`
	HoursPerDay         *decimal.Decimal `json:"hours_per_day,omitempty"`
	OTWeekdayMultiplier *decimal.Decimal `json:"ot_weekday_multiplier,omitempty"`
	OTHolidayMultiplier *decimal.Decimal `json:"ot_holiday_multiplier,omitempty"`
	EPFRate             *decimal.Decimal `json:"epf_rate,omitempty"`
	ETFRate             *decimal.Decimal `json:"etf_rate,omitempty"`
}

var one = decimal.NewFromInt(1)

func (r *UpdatePayrollSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DaysPerMonth != nil && !r.DaysPerMonth.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "days_per_month", Message: "must be positive"})
	}
	if r.HoursPerDay != nil && !r.HoursPerDay.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "hours_per_day", Message: "must be positive"})
	}
	if r.OTWeekdayMultiplier != nil && r.OTWeekdayMultiplier.LessThan(one) {
		errs = append(errs, validator.ValidationError{Field: "ot_weekday_multiplier", Message: "must be at least 1"})
	}
	if r.OTHolidayMultiplier != nil && r.OTHolidayMultiplier.LessThan(one) {
		errs = append(errs, validator.ValidationError{Field: "ot_holiday_multiplier", Message: "must be at least 1"})
	}
	if r.EPFRate != nil && (r.EPFRate.IsNegative() || r.EPFRate.GreaterThan(one)) {
		errs = append(errs, validator.ValidationError{Field: "epf_rate", Message: "must be between 0 and 1"})
	}
	if r.ETFRate != nil && (r.ETFRate.IsNegative() || r.ETFRate.GreaterThan(one)) {
		errs = append(errs, validator.ValidationError{Field: "etf_rate", Message: "must be between 0 and 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
