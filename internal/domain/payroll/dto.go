package payroll

import (
	"github.com/nalaaircon/nala-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// PreviewRequest computes a slip from explicit figures without touching
// stored data.
type PreviewRequest struct {
	Level         string          `json:"level" validate:"required"`
	WorkDays      int             `json:"work_days" validate:"gte=0,lte=31"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	LateMinutes   int             `json:"late_minutes" validate:"gte=0"`
	MealAllowance decimal.Decimal `json:"meal_allowance"`
	Kasbon        decimal.Decimal `json:"kasbon"`
	Achievements  map[string]int  `json:"achievements"`
	Period        string          `json:"period" validate:"required,period"`
}

func (r *PreviewRequest) Validate() error {
	errs := validator.Struct(r)

	if r.OvertimeHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "must be non-negative"})
	}
	if r.MealAllowance.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "meal_allowance", Message: "must be non-negative"})
	}
	if r.Kasbon.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "kasbon", Message: "must be non-negative"})
	}
	for jobType, count := range r.Achievements {
		if count < 0 {
			errs = append(errs, validator.ValidationError{Field: "achievements." + jobType, Message: "must be non-negative"})
		}
	}

	return errs.OrNil()
}

// GenerateSlipRequest builds and stores the slip of one employee from the
// attendance, KPI and kasbon records of the period.
type GenerateSlipRequest struct {
	EmployeeID    string          `json:"employee_id" validate:"required"`
	Period        string          `json:"period" validate:"required,period"`
	MealAllowance decimal.Decimal `json:"meal_allowance"`
	GeneratedBy   string          `json:"-"`
}

func (r *GenerateSlipRequest) Validate() error {
	errs := validator.Struct(r)
	if r.MealAllowance.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "meal_allowance", Message: "must be non-negative"})
	}
	return errs.OrNil()
}

type SlipFilter struct {
	Period     string
	EmployeeID string
}
