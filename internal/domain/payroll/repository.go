package payroll

import "context"

// SlipRepository persists committed payment slips. CreateBatch is
// all-or-nothing: either every slip in the batch is inserted or none are.
type SlipRepository interface {
	CreateBatch(ctx context.Context, slips []PaymentSlip) error
	GetByID(ctx context.Context, id string) (PaymentSlip, error)
	GetByDraftID(ctx context.Context, draftID string) ([]PaymentSlip, error)
	ListByPeriod(ctx context.Context, month, year int) ([]PaymentSlip, error)
}
