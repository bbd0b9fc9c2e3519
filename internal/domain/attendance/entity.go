package attendance

import "github.com/shopspring/decimal"

// OvertimeSummary - Aggregated overtime hours for one employee and period,
// split by weekday and holiday. Employees without attendance rows for the
// period get the zero value.
type OvertimeSummary struct {
	EmployeeID     string
	WeekdayOTHours decimal.Decimal
	HolidayOTHours decimal.Decimal
}
