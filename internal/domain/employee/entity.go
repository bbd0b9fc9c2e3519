package employee

import "github.com/shopspring/decimal"

// Snapshot - Per-employee base figures read at draft-creation time.
// Profile storage is owned by the employee subsystem; the payroll engine
// only ever reads this projection.
type Snapshot struct {
	ID                  string
	Name                string
	Code                string
	BasicSalary         decimal.Decimal
	StandardWeeklyHours decimal.Decimal
	Allowances          decimal.Decimal
	LoanBalance         decimal.Decimal
}
