package kasbon

import (
	"context"

	"github.com/shopspring/decimal"
)

// KasbonService manages salary advances
type KasbonService interface {
	// Create records an advance after checking it against the KPI-based limit
	Create(ctx context.Context, req CreateKasbonRequest) (Kasbon, error)

	List(ctx context.Context, filter KasbonFilter) ([]Kasbon, error)

	// Limit computes the advance limit of an employee for a period
	Limit(ctx context.Context, employeeID, period string) (Limit, error)

	MarkPaid(ctx context.Context, id string) (Kasbon, error)

	// Outstanding sums the active advances of an employee
	Outstanding(ctx context.Context, employeeID string) (decimal.Decimal, []Kasbon, error)
}
