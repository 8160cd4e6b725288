package finance

import (
	"github.com/nalaaircon/nala-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateIncomeRequest struct {
	Source      string          `json:"source" validate:"required,max=150"`
	Description string          `json:"description" validate:"max=500"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date" validate:"required,date"`
	Branch      string          `json:"branch"`
	CreatedBy   string          `json:"-"`
}

func (r *CreateIncomeRequest) Validate() error {
	errs := validator.Struct(r)
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than 0"})
	}
	return errs.OrNil()
}

type IncomeFilter struct {
	Branch string
	From   string `validate:"omitempty,date"`
	To     string `validate:"omitempty,date"`
}

func (f *IncomeFilter) Validate() error {
	return validator.Struct(f).OrNil()
}
