package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period identifies one pay period.
type Period struct {
	Month int
	Year  int
}

// DraftStatus enum
type DraftStatus string

const (
	DraftStatusOpen       DraftStatus = "open"
	DraftStatusCommitting DraftStatus = "committing"
	DraftStatusCommitted  DraftStatus = "committed"
	DraftStatusExpired    DraftStatus = "expired"
)

// ItemStatus enum
type ItemStatus string

const ItemStatusReady ItemStatus = "ready"

// DraftItem - One employee's computed pay within a draft.
type DraftItem struct {
	EmployeeID     string
	EmployeeName   string
	EmployeeCode   string
	BasicSalary    decimal.Decimal
	Allowances     decimal.Decimal
	LoanBalance    decimal.Decimal
	WeekdayOTHours decimal.Decimal
	HolidayOTHours decimal.Decimal
	OTTotal        decimal.Decimal
	Gross          decimal.Decimal
	EPF            decimal.Decimal
	ETF            decimal.Decimal
	LoanDeduction  decimal.Decimal
	Net            decimal.Decimal
	Status         ItemStatus
}

// Draft - An uncommitted, recomputable payroll preview. Lives in the draft
// arena only; committing it produces the durable payment slips.
type Draft struct {
	ID              string
	Key             string
	Period          Period
	SettingsVersion int64
	Items           []DraftItem
	Status          DraftStatus
	CreatedAt       time.Time

	// Slips is populated once the draft is committed so repeat commits can
	// return the same result without touching storage.
	Slips []PaymentSlip
}

// PaymentSlip - Immutable result of a commit, one per employee and period.
type PaymentSlip struct {
	ID              string
	DraftID         string
	EmployeeID      string
	EmployeeName    string
	EmployeeCode    string
	PeriodMonth     int
	PeriodYear      int
	BasicSalary     decimal.Decimal
	Allowances      decimal.Decimal
	OTTotal         decimal.Decimal
	Gross           decimal.Decimal
	EPF             decimal.Decimal
	ETF             decimal.Decimal
	LoanDeduction   decimal.Decimal
	Net             decimal.Decimal
	SettingsVersion int64
	CommittedAt     time.Time
}
