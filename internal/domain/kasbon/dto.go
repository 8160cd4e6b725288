package kasbon

import (
	"github.com/nalaaircon/nala-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateKasbonRequest struct {
	EmployeeID string          `json:"employee_id" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Notes      string          `json:"notes" validate:"max=500"`
	// Period whose KPI sets the limit; the current period when empty.
	Period    string `json:"period" validate:"omitempty,period"`
	ExpenseID string `json:"-"`
}

func (r *CreateKasbonRequest) Validate() error {
	errs := validator.Struct(r)
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than 0"})
	}
	return errs.OrNil()
}

type KasbonFilter struct {
	EmployeeID string
	Status     string `validate:"omitempty,oneof=active paid"`
}

func (f *KasbonFilter) Validate() error {
	return validator.Struct(f).OrNil()
}
