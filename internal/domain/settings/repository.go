package settings

import "context"

// SettingsRepository defines data access for versioned payroll settings.
// Updates append a new version; existing versions are never rewritten.
type SettingsRepository interface {
	GetLatest(ctx context.Context) (PayrollSettings, error)
	GetByVersion(ctx context.Context, version int64) (PayrollSettings, error)
	Create(ctx context.Context, s PayrollSettings) (PayrollSettings, error)
}
