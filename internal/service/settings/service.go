package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/agrifarm/farmpay-backend-go/internal/domain/settings"
)

type SettingsServiceImpl struct {
	settingsRepo settings.SettingsRepository
}

func NewSettingsService(settingsRepo settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{settingsRepo: settingsRepo}
}

func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.PayrollSettingsResponse, error) {
	current, err := s.settingsRepo.GetLatest(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return mapToResponse(settings.Default()), nil
		}
		return settings.PayrollSettingsResponse{}, err
	}
	return mapToResponse(current), nil
}

// Update validates the partial request, applies it on top of the current
// settings and appends the result as a new version. Open drafts keep the
// version they pinned at creation; only new drafts see the update.
func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdatePayrollSettingsRequest) (settings.PayrollSettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.PayrollSettingsResponse{}, err
	}

	current, err := s.settingsRepo.GetLatest(ctx)
	if err != nil {
		if !errors.Is(err, settings.ErrSettingsNotFound) {
			return settings.PayrollSettingsResponse{}, fmt.Errorf("failed to load current settings: %w", err)
		}
		current = settings.Default()
	}

	next := current
	next.ID = ""
	next.Version = current.Version + 1

	if req.DaysPerMonth != nil {
		next.DaysPerMonth = *req.DaysPerMonth
	}
	if req.HoursPerDay != nil {
		next.HoursPerDay = *req.HoursPerDay
	}
	if req.OTWeekdayMultiplier != nil {
		next.OTWeekdayMultiplier = *req.OTWeekdayMultiplier
	}
	if req.OTHolidayMultiplier != nil {
		next.OTHolidayMultiplier = *req.OTHolidayMultiplier
	}
	if req.EPFRate != nil {
		next.EPFRate = *req.EPFRate
	}
	if req.ETFRate != nil {
		next.ETFRate = *req.ETFRate
	}

	created, err := s.settingsRepo.Create(ctx, next)
	if err != nil {
		return settings.PayrollSettingsResponse{}, err
	}

	return mapToResponse(created), nil
}

func mapToResponse(s settings.PayrollSettings) settings.PayrollSettingsResponse {
	return settings.PayrollSettingsResponse{
		ID:                  s.ID,
		Version:             s.Version,
		DaysPerMonth:        s.DaysPerMonth,
		HoursPerDay:         s.HoursPerDay,
		OTWeekdayMultiplier: s.OTWeekdayMultiplier,
		OTHolidayMultiplier: s.OTHolidayMultiplier,
		EPFRate:             s.EPFRate,
		ETFRate:             s.ETFRate,
	}
}
