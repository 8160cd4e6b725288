package payroll

import "context"

// PayrollService generates and serves salary slips
type PayrollService interface {
	// Preview computes a slip without persisting anything
	Preview(ctx context.Context, req PreviewRequest) (Breakdown, error)

	// GenerateSlip computes and stores the slip of an employee and settles their active kasbon
	GenerateSlip(ctx context.Context, req GenerateSlipRequest) (SalarySlip, error)

	GetSlip(ctx context.Context, id string) (SalarySlip, error)
	ListSlips(ctx context.Context, filter SlipFilter) ([]SalarySlip, error)

	// ExportSlips renders the slips of a period as an xlsx workbook
	ExportSlips(ctx context.Context, period string) ([]byte, error)
}
