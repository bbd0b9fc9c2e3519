package postgresql

import (
	"context"
	"fmt"

	"github.com/agrifarm/farmpay-backend-go/internal/domain/employee"
	"github.com/agrifarm/farmpay-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.SnapshotRepository {
	return &employeeRepository{db: db}
}

const snapshotColumns = `id, name, code, basic_salary, standard_weekly_hours, allowances, loan_balance`

func (r *employeeRepository) GetSnapshots(ctx context.Context, ids []string) ([]employee.Snapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM employees
		WHERE id = ANY($1) AND is_active = true
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee snapshots: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Snapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM employees
		WHERE is_active = true
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

func scanSnapshots(rows pgx.Rows) ([]employee.Snapshot, error) {
	var snapshots []employee.Snapshot
	for rows.Next() {
		var s employee.Snapshot
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Code, &s.BasicSalary,
			&s.StandardWeeklyHours, &s.Allowances, &s.LoanBalance,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee snapshots: %w", err)
	}
	return snapshots, nil
}
