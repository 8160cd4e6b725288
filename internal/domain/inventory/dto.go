package inventory

import (
	"github.com/nalaaircon/nala-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateItemRequest struct {
	Name      string          `json:"name" validate:"required,max=150"`
	Category  string          `json:"category" validate:"required,oneof=material ac_unit"`
	Type      string          `json:"type"`
	Brand     string          `json:"brand"`
	Size      string          `json:"size"`
	Capacity  string          `json:"capacity"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gte=0"`
	Unit      string          `json:"unit" validate:"required"`
	MinStock  decimal.Decimal `json:"min_stock" validate:"gte=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Location  string          `json:"location"`
}

func (r *CreateItemRequest) Validate() error {
	errs := validator.Struct(r)
	if r.UnitPrice.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "unit_price", Message: "must be non-negative"})
	}
	return errs.OrNil()
}

// UpdateItemRequest edits descriptive fields. Quantity is not editable here;
// use stock-in and stock-out.
type UpdateItemRequest struct {
	ID        string           `json:"-"`
	Name      *string          `json:"name,omitempty" validate:"omitempty,max=150"`
	Type      *string          `json:"type,omitempty"`
	Brand     *string          `json:"brand,omitempty"`
	Size      *string          `json:"size,omitempty"`
	Capacity  *string          `json:"capacity,omitempty"`
	Unit      *string          `json:"unit,omitempty"`
	MinStock  *decimal.Decimal `json:"min_stock,omitempty" validate:"omitempty,gte=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Location  *string          `json:"location,omitempty"`
}

func (r *UpdateItemRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.UnitPrice != nil && r.UnitPrice.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "unit_price", Message: "must be non-negative"})
	}
	return errs.OrNil()
}

// StockRequest adds or removes stock by hand.
type StockRequest struct {
	InventoryID string          `json:"-"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gt=0"`
	Notes       string          `json:"notes" validate:"max=500"`
}

func (r *StockRequest) Validate() error {
	return validator.Struct(r).OrNil()
}

type ItemFilter struct {
	Category string
	Location string
}
