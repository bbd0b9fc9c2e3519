package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/agrifarm/farmpay-backend-go/internal/domain/payroll"
	"github.com/google/uuid"
)

// Commit converts an OPEN draft into permanent payment slips exactly once.
// The OPEN -> COMMITTING compare-and-swap is the mutual-exclusion gate: the
// caller that wins it persists the whole batch in one transaction, everyone
// else gets the committed slips or a commit-in-progress error. A failed
// batch rolls the draft back to OPEN with nothing persisted.
//
// Commit holds the draft's key lock for its whole critical section. Preview
// writes the draft back under the same lock, so a preview that read the
// draft as OPEN and then stalled in a collaborator read cannot overwrite
// the commit result afterwards.
func (s *PayrollServiceImpl) Commit(ctx context.Context, draftID string) (payroll.CommitResponse, error) {
	draft, ok := s.drafts.GetByID(draftID)
	if !ok {
		return s.committedSlips(ctx, draftID)
	}

	unlock := s.drafts.LockKey(draft.Key)
	defer unlock()

	// Re-read under the lock; the draft may have been swept while waiting.
	draft, ok = s.drafts.GetByID(draftID)
	if !ok {
		return s.committedSlips(ctx, draftID)
	}

	switch draft.Status {
	case payroll.DraftStatusCommitted:
		return payroll.CommitResponse{Slips: mapToSlipResponses(draft.Slips)}, nil
	case payroll.DraftStatusCommitting:
		return payroll.CommitResponse{}, payroll.ErrCommitInProgress
	case payroll.DraftStatusExpired:
		return payroll.CommitResponse{}, payroll.ErrDraftNotFound
	}

	if !s.drafts.CompareAndSwapStatus(draftID, payroll.DraftStatusOpen, payroll.DraftStatusCommitting) {
		// Lost the race. The winner either finished or is still persisting.
		if current, ok := s.drafts.GetByID(draftID); ok && current.Status == payroll.DraftStatusCommitted {
			return payroll.CommitResponse{Slips: mapToSlipResponses(current.Slips)}, nil
		}
		return payroll.CommitResponse{}, payroll.ErrCommitInProgress
	}

	slips := buildSlips(draft, time.Now().UTC())

	if err := s.slipRepo.CreateBatch(ctx, slips); err != nil {
		s.drafts.CompareAndSwapStatus(draftID, payroll.DraftStatusCommitting, payroll.DraftStatusOpen)
		return payroll.CommitResponse{}, err
	}

	s.drafts.SetCommitted(draftID, slips)

	return payroll.CommitResponse{Slips: mapToSlipResponses(slips)}, nil
}

// committedSlips resolves a draft id that is no longer in the arena. Slips
// outlive the arena, so a commit repeated after the sweep stays idempotent.
func (s *PayrollServiceImpl) committedSlips(ctx context.Context, draftID string) (payroll.CommitResponse, error) {
	slips, err := s.slipRepo.GetByDraftID(ctx, draftID)
	if err != nil {
		return payroll.CommitResponse{}, fmt.Errorf("failed to look up slips for draft %s: %w", draftID, err)
	}
	if len(slips) > 0 {
		return payroll.CommitResponse{Slips: mapToSlipResponses(slips)}, nil
	}
	return payroll.CommitResponse{}, payroll.ErrDraftNotFound
}

func buildSlips(draft payroll.Draft, committedAt time.Time) []payroll.PaymentSlip {
	slips := make([]payroll.PaymentSlip, 0, len(draft.Items))
	for _, it := range draft.Items {
		slips = append(slips, payroll.PaymentSlip{
			ID:              uuid.NewString(),
			DraftID:         draft.ID,
			EmployeeID:      it.EmployeeID,
			EmployeeName:    it.EmployeeName,
			EmployeeCode:    it.EmployeeCode,
			PeriodMonth:     draft.Period.Month,
			PeriodYear:      draft.Period.Year,
			BasicSalary:     it.BasicSalary,
			Allowances:      it.Allowances,
			OTTotal:         it.OTTotal,
			Gross:           it.Gross,
			EPF:             it.EPF,
			ETF:             it.ETF,
			LoanDeduction:   it.LoanDeduction,
			Net:             it.Net,
			SettingsVersion: draft.SettingsVersion,
			CommittedAt:     committedAt,
		})
	}
	return slips
}
