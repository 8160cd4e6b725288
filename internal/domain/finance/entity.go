package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income is money received, typically a paid service job.
type Income struct {
	ID          string          `json:"id"`
	Source      string          `json:"source"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Branch      string          `json:"branch,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Cashflow compares income and expenses of a period.
type Cashflow struct {
	Period   string          `json:"period"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}
