package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agrifarm/farmpay-backend-go/internal/domain/attendance"
	"github.com/agrifarm/farmpay-backend-go/internal/domain/employee"
	"github.com/agrifarm/farmpay-backend-go/internal/domain/payroll"
	"github.com/agrifarm/farmpay-backend-go/internal/domain/settings"
	"github.com/google/uuid"
)

// Preview builds or refreshes the draft registered under the request's draft
// key. Repeat previews keep the draft's identity and pinned settings version
// but recompute every item from fresh snapshot and overtime data. Employee
// ids that cannot be resolved are omitted and reported in the warning list;
// only commit is all-or-nothing.
func (s *PayrollServiceImpl) Preview(ctx context.Context, req payroll.PreviewRequest) (payroll.PreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PreviewResponse{}, err
	}

	unlock := s.drafts.LockKey(req.DraftKey)
	defer unlock()

	period := payroll.Period{Month: req.Month, Year: req.Year}

	draft, cfg, err := s.resolveDraft(ctx, req.DraftKey, period)
	if err != nil {
		return payroll.PreviewResponse{}, err
	}

	items, warnings, err := s.computeItems(ctx, req.EmployeeIDs, period, cfg)
	if err != nil {
		return payroll.PreviewResponse{}, err
	}

	draft.Items = items
	draft.Status = payroll.DraftStatusOpen
	s.drafts.Put(draft)

	return payroll.PreviewResponse{
		DraftID:         draft.ID,
		DraftKey:        draft.Key,
		Month:           draft.Period.Month,
		Year:            draft.Period.Year,
		SettingsVersion: draft.SettingsVersion,
		Items:           mapToItemResponses(items),
		Warnings:        warnings,
	}, nil
}

// resolveDraft reuses the OPEN draft registered under key, or starts a new
// one pinned to the current settings version. Drafts that already left OPEN
// no longer own the key.
func (s *PayrollServiceImpl) resolveDraft(ctx context.Context, key string, period payroll.Period) (payroll.Draft, settings.PayrollSettings, error) {
	existing, ok := s.drafts.GetByKey(key)
	if ok && existing.Status == payroll.DraftStatusOpen {
		if existing.Period != period {
			return payroll.Draft{}, settings.PayrollSettings{}, payroll.ErrDraftPeriodChanged
		}
		cfg, err := s.settingsRepo.GetByVersion(ctx, existing.SettingsVersion)
		if err != nil {
			return payroll.Draft{}, settings.PayrollSettings{}, fmt.Errorf("failed to load pinned settings version %d: %w", existing.SettingsVersion, err)
		}
		return existing, cfg, nil
	}

	cfg, err := s.settingsRepo.GetLatest(ctx)
	if err != nil {
		if !errors.Is(err, settings.ErrSettingsNotFound) {
			return payroll.Draft{}, settings.PayrollSettings{}, fmt.Errorf("failed to load payroll settings: %w", err)
		}
		cfg = settings.Default()
	}

	return payroll.Draft{
		ID:              uuid.NewString(),
		Key:             key,
		Period:          period,
		SettingsVersion: cfg.Version,
		Status:          payroll.DraftStatusOpen,
		CreatedAt:       time.Now().UTC(),
	}, cfg, nil
}

// computeItems fetches snapshots and overtime under a bounded timeout and
// runs the calculator per employee. Collaborator failures degrade to partial
// results with warnings instead of failing the preview.
func (s *PayrollServiceImpl) computeItems(ctx context.Context, employeeIDs []string, period payroll.Period, cfg settings.PayrollSettings) ([]payroll.DraftItem, []string, error) {
	readCtx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	warnings := []string{}

	snapshots, err := s.employeeRepo.GetSnapshots(readCtx, employeeIDs)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("employee snapshots unavailable: %v", err))
		snapshots = nil
	}
	snapshotByID := make(map[string]employee.Snapshot, len(snapshots))
	for _, snap := range snapshots {
		snapshotByID[snap.ID] = snap
	}

	overtimeByID := make(map[string]attendance.OvertimeSummary)
	summaries, err := s.overtimeRepo.GetOvertimeSummary(readCtx, period.Month, period.Year, employeeIDs)
	if err != nil {
		// Best-effort collaborator: treat missing overtime data as zeros.
		warnings = append(warnings, fmt.Sprintf("overtime data unavailable, assuming zero hours: %v", err))
	} else {
		for _, sum := range summaries {
			overtimeByID[sum.EmployeeID] = sum
		}
	}

	items := make([]payroll.DraftItem, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		snap, ok := snapshotByID[id]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("employee %s not found, omitted from draft", id))
			continue
		}

		ot := overtimeByID[id]
		ot.EmployeeID = id

		item, err := Compute(snap, ot, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to compute pay for employee %s: %w", id, err)
		}
		items = append(items, item)
	}

	return items, warnings, nil
}
