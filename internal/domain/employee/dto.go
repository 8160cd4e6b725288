package employee

import (
	"time"

	"github.com/nalaaircon/nala-backend/internal/domain/user"
	"github.com/nalaaircon/nala-backend/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
	Level    string `json:"level" validate:"required"`
	Branch   string `json:"branch" validate:"required"`
	JoinedAt string `json:"joined_at" validate:"omitempty,date"`
}

func (r *CreateEmployeeRequest) Validate() error {
	errs := validator.Struct(r)

	if r.Phone != "" && !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "must be a valid Indonesian phone number"})
	}
	if r.Role != "" && !user.Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be admin, manager, teknisi or finance"})
	}

	return errs.OrNil()
}

type UpdateEmployeeRequest struct {
	ID       string  `json:"-"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     *string `json:"role,omitempty"`
	Level    *string `json:"level,omitempty"`
	Branch   *string `json:"branch,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	errs := validator.Struct(r)

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "must be a valid Indonesian phone number"})
	}
	if r.Role != nil && !user.Role(*r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be admin, manager, teknisi or finance"})
	}

	return errs.OrNil()
}

type EmployeeFilter struct {
	Branch          string
	Role            string
	IncludeInactive bool
}

type EmployeeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Level     string    `json:"level"`
	Branch    string    `json:"branch"`
	IsActive  bool      `json:"is_active"`
	JoinedAt  string    `json:"joined_at,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		Phone:     e.Phone,
		Role:      string(e.Role),
		Level:     e.Level,
		Branch:    e.Branch,
		IsActive:  e.IsActive,
		JoinedAt:  e.JoinedAt,
		CreatedAt: e.CreatedAt,
	}
}
