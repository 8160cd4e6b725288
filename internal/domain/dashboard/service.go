package dashboard

import "context"

// DashboardService builds the per-module summaries of the home screen
type DashboardService interface {
	// Summary returns the summary of one module for the current date and period
	Summary(ctx context.Context, module Module) (any, error)

	// Overview loads every module summary concurrently
	Overview(ctx context.Context) (Overview, error)
}
