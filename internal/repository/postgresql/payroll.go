package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/agrifarm/farmpay-backend-go/internal/domain/payroll"
	"github.com/agrifarm/farmpay-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type slipRepository struct {
	db *database.DB
}

func NewSlipRepository(db *database.DB) payroll.SlipRepository {
	return &slipRepository{db: db}
}

const slipColumns = `id, draft_id, employee_id, employee_name, employee_code,
	   period_month, period_year, basic_salary, allowances, ot_total,
	   gross, epf, etf, loan_deduction, net, settings_version, committed_at`

// CreateBatch inserts every slip inside one transaction. A uniqueness
// conflict on (employee_id, period_month, period_year) aborts the whole
// batch and surfaces as a SlipConflictError identifying the collision.
func (r *slipRepository) CreateBatch(ctx context.Context, slips []payroll.PaymentSlip) error {
	if len(slips) == 0 {
		return nil
	}

	query := `
		INSERT INTO payment_slips (
			id, draft_id, employee_id, employee_name, employee_code,
			period_month, period_year, basic_salary, allowances, ot_total,
			gross, epf, etf, loan_deduction, net, settings_version, committed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		for _, s := range slips {
			_, err := tx.Exec(ctx, query,
				s.ID, s.DraftID, s.EmployeeID, s.EmployeeName, s.EmployeeCode,
				s.PeriodMonth, s.PeriodYear, s.BasicSalary, s.Allowances, s.OTTotal,
				s.Gross, s.EPF, s.ETF, s.LoanDeduction, s.Net, s.SettingsVersion, s.CommittedAt,
			)
			if err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == "23505" {
					return &payroll.SlipConflictError{
						EmployeeID: s.EmployeeID,
						Month:      s.PeriodMonth,
						Year:       s.PeriodYear,
					}
				}
				return fmt.Errorf("failed to create payment slip for employee %s: %w", s.EmployeeID, err)
			}
		}
		return nil
	})
}

func (r *slipRepository) GetByID(ctx context.Context, id string) (payroll.PaymentSlip, error) {
	query := `
		SELECT ` + slipColumns + `
		FROM payment_slips
		WHERE id = $1
	`

	var s payroll.PaymentSlip
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.DraftID, &s.EmployeeID, &s.EmployeeName, &s.EmployeeCode,
		&s.PeriodMonth, &s.PeriodYear, &s.BasicSalary, &s.Allowances, &s.OTTotal,
		&s.Gross, &s.EPF, &s.ETF, &s.LoanDeduction, &s.Net, &s.SettingsVersion, &s.CommittedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PaymentSlip{}, payroll.ErrSlipNotFound
		}
		return payroll.PaymentSlip{}, fmt.Errorf("failed to get payment slip: %w", err)
	}

	return s, nil
}

func (r *slipRepository) GetByDraftID(ctx context.Context, draftID string) ([]payroll.PaymentSlip, error) {
	query := `
		SELECT ` + slipColumns + `
		FROM payment_slips
		WHERE draft_id = $1
		ORDER BY employee_name
	`
	return r.querySlips(ctx, query, draftID)
}

func (r *slipRepository) ListByPeriod(ctx context.Context, month, year int) ([]payroll.PaymentSlip, error) {
	query := `
		SELECT ` + slipColumns + `
		FROM payment_slips
		WHERE period_month = $1 AND period_year = $2
		ORDER BY employee_name
	`
	return r.querySlips(ctx, query, month, year)
}

func (r *slipRepository) querySlips(ctx context.Context, query string, args ...any) ([]payroll.PaymentSlip, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment slips: %w", err)
	}
	defer rows.Close()

	var slips []payroll.PaymentSlip
	for rows.Next() {
		var s payroll.PaymentSlip
		if err := rows.Scan(
			&s.ID, &s.DraftID, &s.EmployeeID, &s.EmployeeName, &s.EmployeeCode,
			&s.PeriodMonth, &s.PeriodYear, &s.BasicSalary, &s.Allowances, &s.OTTotal,
			&s.Gross, &s.EPF, &s.ETF, &s.LoanDeduction, &s.Net, &s.SettingsVersion, &s.CommittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment slip: %w", err)
		}
		slips = append(slips, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payment slips: %w", err)
	}

	return slips, nil
}
