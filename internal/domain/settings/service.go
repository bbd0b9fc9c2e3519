package settings

import "context"

type SettingsService interface {
	Get(ctx context.Context) (PayrollSettingsResponse, error)
	Update(ctx context.Context, req UpdatePayrollSettingsRequest) (PayrollSettingsResponse, error)
}
