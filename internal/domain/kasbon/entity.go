package kasbon

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive Status = "active"
	StatusPaid   Status = "paid"
)

// Kasbon is a salary advance. Active advances are deducted from the next
// salary slip and settled by it.
type Kasbon struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	Amount       decimal.Decimal `json:"amount"`
	Notes        string          `json:"notes,omitempty"`
	Status       Status          `json:"status"`
	ExpenseID    string          `json:"expense_id,omitempty"`
	SalarySlipID string          `json:"salary_slip_id,omitempty"`
	PaidAt       *time.Time      `json:"paid_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

// Limit is how much an employee may still borrow in a period.
type Limit struct {
	EmployeeID    string          `json:"employee_id"`
	Period        string          `json:"period"`
	KPIPercentage decimal.Decimal `json:"kpi_percentage"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	Limit         decimal.Decimal `json:"limit"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	Available     decimal.Decimal `json:"available"`
}
