package employee

import "github.com/shopspring/decimal"

type SnapshotResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Code                string          `json:"code"`
	BasicSalary         decimal.Decimal `json:"basic_salary"`
	StandardWeeklyHours decimal.Decimal `json:"standard_weekly_hours"`
	Allowances          decimal.Decimal `json:"allowances"`
	LoanBalance         decimal.Decimal `json:"loan_balance"`
}
