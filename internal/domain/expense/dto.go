package expense

import (
	"github.com/nalaaircon/nala-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	Category      string          `json:"category" validate:"required"`
	SubCategory   string          `json:"sub_category" validate:"max=100"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description" validate:"max=500"`
	Date          string          `json:"date" validate:"required,date"`
	Branch        string          `json:"branch"`
	MaterialType  string          `json:"material_type"`
	MaterialBrand string          `json:"material_brand"`
	MaterialSize  string          `json:"material_size"`
	ACBrand       string          `json:"ac_brand"`
	ACType        string          `json:"ac_type"`
	ACCapacity    string          `json:"ac_capacity"`
	Quantity      decimal.Decimal `json:"quantity" validate:"gte=0"`
	EmployeeID    string          `json:"employee_id"`
	CreatedBy     string          `json:"-"`
}

func (r *CreateExpenseRequest) Validate() error {
	errs := validator.Struct(r)

	if r.Category != "" && !Category(r.Category).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "unknown expense category"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than 0"})
	}
	if Category(r.Category) == CategoryKasbon && validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required for kasbon"})
	}

	return errs.OrNil()
}

// ToExpense builds the entity to store.
func (r *CreateExpenseRequest) ToExpense() Expense {
	return Expense{
		Category:      Category(r.Category),
		SubCategory:   r.SubCategory,
		Amount:        r.Amount,
		Description:   r.Description,
		Date:          r.Date,
		Branch:        r.Branch,
		MaterialType:  r.MaterialType,
		MaterialBrand: r.MaterialBrand,
		MaterialSize:  r.MaterialSize,
		ACBrand:       r.ACBrand,
		ACType:        r.ACType,
		ACCapacity:    r.ACCapacity,
		Quantity:      r.Quantity,
		EmployeeID:    r.EmployeeID,
		CreatedBy:     r.CreatedBy,
	}
}

type ExpenseFilter struct {
	Category string
	Branch   string
	From     string `validate:"omitempty,date"`
	To       string `validate:"omitempty,date"`
}

func (f *ExpenseFilter) Validate() error {
	errs := validator.Struct(f)
	if f.Category != "" && !Category(f.Category).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "unknown expense category"})
	}
	return errs.OrNil()
}
