package payroll

import "context"

type PayrollService interface {
	Preview(ctx context.Context, req PreviewRequest) (PreviewResponse, error)
	Commit(ctx context.Context, draftID string) (CommitResponse, error)
	ListSlips(ctx context.Context, month, year int) ([]PaymentSlipResponse, error)
	GetSlip(ctx context.Context, id string) (PaymentSlipResponse, error)
}
