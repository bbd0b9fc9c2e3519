package payroll

import (
	"github.com/agrifarm/farmpay-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PREVIEW DTOs ==========

type PreviewRequest struct {
	DraftKey    string   `json:"draft_key"`
	Month       int      `json:"month"`
	Year        int      `json:"year"`
	EmployeeIDs []string `json:"employee_ids"`
}

func (r *PreviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DraftKey) {
		errs = append(errs, validator.ValidationError{Field: "draft_key", Message: "is required"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a valid year"})
	}
	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "at least one employee is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DraftItemResponse struct {
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   string          `json:"employee_name"`
	EmployeeCode   string          `json:"employee_code"`
	BasicSalary    decimal.Decimal `json:"basic_salary"`
	Allowances     decimal.Decimal `json:"allowances"`
	LoanBalance    decimal.Decimal `json:"loan_balance"`
	WeekdayOTHours decimal.Decimal `json:"weekday_ot_hours"`
	HolidayOTHours decimal.Decimal `json:"holiday_ot_hours"`
	OTTotal        decimal.Decimal `json:"ot_total"`
	Gross          decimal.Decimal `json:"gross"`
	EPF            decimal.Decimal `json:"epf"`
	ETF            decimal.Decimal `json:"etf"`
	LoanDeduction  decimal.Decimal `json:"loan_deduction"`
	Net            decimal.Decimal `json:"net"`
	Status         string          `json:"status"`
}

type PreviewResponse struct {
	DraftID         string              `json:"draft_id"`
	DraftKey        string              `json:"draft_key"`
	Month           int                 `json:"month"`
	Year            int                 `json:"year"`
	SettingsVersion int64               `json:"settings_version"`
	Items           []DraftItemResponse `json:"items"`
	Warnings        []string            `json:"warnings"`
}

// ========== COMMIT DTOs ==========

type CommitRequest struct {
	DraftID string `json:"draft_id"`
}

func (r *CommitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DraftID) {
		errs = append(errs, validator.ValidationError{Field: "draft_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PaymentSlipResponse struct {
	ID              string          `json:"id"`
	DraftID         string          `json:"draft_id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name"`
	EmployeeCode    string          `json:"employee_code"`
	PeriodMonth     int             `json:"period_month"`
	PeriodYear      int             `json:"period_year"`
	BasicSalary     decimal.Decimal `json:"basic_salary"`
	Allowances      decimal.Decimal `json:"allowances"`
	OTTotal         decimal.Decimal `json:"ot_total"`
	Gross           decimal.Decimal `json:"gross"`
	EPF             decimal.Decimal `json:"epf"`
	ETF             decimal.Decimal `json:"etf"`
	LoanDeduction   decimal.Decimal `json:"loan_deduction"`
	Net             decimal.Decimal `json:"net"`
	SettingsVersion int64           `json:"settings_version"`
	CommittedAt     string          `json:"committed_at"`
}

type CommitResponse struct {
	Slips []PaymentSlipResponse `json:"slips"`
}
