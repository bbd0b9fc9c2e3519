package postgresql

import (
	"context"
	"fmt"

	"github.com/agrifarm/farmpay-backend-go/internal/domain/attendance"
	"github.com/agrifarm/farmpay-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.OvertimeRepository {
	return &attendanceRepository{db: db}
}

// GetOvertimeSummary aggregates approved overtime entries for the period,
// split by weekday and holiday hours. Employees with no entries simply do
// not appear in the result.
func (r *attendanceRepository) GetOvertimeSummary(ctx context.Context, month, year int, employeeIDs []string) ([]attendance.OvertimeSummary, error) {
	query := `
		SELECT employee_id,
			   COALESCE(SUM(hours) FILTER (WHERE NOT is_holiday), 0) AS weekday_ot_hours,
			   COALESCE(SUM(hours) FILTER (WHERE is_holiday), 0) AS holiday_ot_hours
		FROM overtime_entries
		WHERE employee_id = ANY($1)
		  AND EXTRACT(MONTH FROM work_date) = $2
		  AND EXTRACT(YEAR FROM work_date) = $3
		  AND is_approved = true
		GROUP BY employee_id
	`

	rows, err := r.db.Query(ctx, query, employeeIDs, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get overtime summary: %w", err)
	}
	defer rows.Close()

	var summaries []attendance.OvertimeSummary
	for rows.Next() {
		var s attendance.OvertimeSummary
		if err := rows.Scan(&s.EmployeeID, &s.WeekdayOTHours, &s.HolidayOTHours); err != nil {
			return nil, fmt.Errorf("failed to scan overtime summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read overtime summaries: %w", err)
	}

	return summaries, nil
}
