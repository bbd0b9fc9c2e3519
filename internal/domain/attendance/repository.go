package attendance

import "context"

// OvertimeRepository aggregates overtime hours captured by the attendance
// subsystem. Best-effort collaborator: missing data means zero hours.
type OvertimeRepository interface {
	GetOvertimeSummary(ctx context.Context, month, year int, employeeIDs []string) ([]OvertimeSummary, error)
}
