package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrDraftNotFound      = errors.New("draft not found or expired")
	ErrSlipNotFound       = errors.New("payment slip not found")
	ErrCommitInProgress   = errors.New("draft commit already in progress")
	ErrDraftPeriodChanged = errors.New("draft key is bound to a different period")
	ErrInvalidDivisor     = errors.New("payroll settings contain a non-positive divisor")
)

// SlipConflictError reports the employee and period that already have a
// payment slip from an earlier commit. The whole batch is rolled back when
// one of these occurs.
type SlipConflictError struct {
	EmployeeID string
	Month      int
	Year       int
}

func (e *SlipConflictError) Error() string {
	return fmt.Sprintf("payment slip already exists for employee %s in period %d/%d", e.EmployeeID, e.Month, e.Year)
}
