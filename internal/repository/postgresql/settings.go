package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/agrifarm/farmpay-backend-go/internal/domain/settings"
	"github.com/agrifarm/farmpay-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

const settingsColumns = `id, version, days_per_month, hours_per_day,
	   ot_weekday_multiplier, ot_holiday_multiplier, epf_rate, etf_rate, created_at`

func (r *settingsRepository) GetLatest(ctx context.Context) (settings.PayrollSettings, error) {
	query := `
		SELECT ` + settingsColumns + `
		FROM payroll_settings
		ORDER BY version DESC
		LIMIT 1
	`

	var s settings.PayrollSettings
	err := r.db.QueryRow(ctx, query).Scan(
		&s.ID, &s.Version, &s.DaysPerMonth, &s.HoursPerDay,
		&s.OTWeekdayMultiplier, &s.OTHolidayMultiplier, &s.EPFRate, &s.ETFRate, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.PayrollSettings{}, settings.ErrSettingsNotFound
		}
		return settings.PayrollSettings{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	return s, nil
}

func (r *settingsRepository) GetByVersion(ctx context.Context, version int64) (settings.PayrollSettings, error) {
	query := `
		SELECT ` + settingsColumns + `
		FROM payroll_settings
		WHERE version = $1
	`

	var s settings.PayrollSettings
	err := r.db.QueryRow(ctx, query, version).Scan(
		&s.ID, &s.Version, &s.DaysPerMonth, &s.HoursPerDay,
		&s.OTWeekdayMultiplier, &s.OTHolidayMultiplier, &s.EPFRate, &s.ETFRate, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Version 0 is the built-in default; it predates the first row.
			if version == 0 {
				return settings.Default(), nil
			}
			return settings.PayrollSettings{}, settings.ErrSettingsVersionNotFound
		}
		return settings.PayrollSettings{}, fmt.Errorf("failed to get payroll settings version %d: %w", version, err)
	}

	return s, nil
}

func (r *settingsRepository) Create(ctx context.Context, s settings.PayrollSettings) (settings.PayrollSettings, error) {
	query := `
		INSERT INTO payroll_settings (
			id, version, days_per_month, hours_per_day,
			ot_weekday_multiplier, ot_holiday_multiplier, epf_rate, etf_rate
		) VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + settingsColumns + `
	`

	var created settings.PayrollSettings
	err := r.db.QueryRow(ctx, query,
		s.Version, s.DaysPerMonth, s.HoursPerDay,
		s.OTWeekdayMultiplier, s.OTHolidayMultiplier, s.EPFRate, s.ETFRate,
	).Scan(
		&created.ID, &created.Version, &created.DaysPerMonth, &created.HoursPerDay,
		&created.OTWeekdayMultiplier, &created.OTHolidayMultiplier, &created.EPFRate, &created.ETFRate, &created.CreatedAt,
	)
	if err != nil {
		return settings.PayrollSettings{}, fmt.Errorf("failed to create payroll settings version: %w", err)
	}

	return created, nil
}
