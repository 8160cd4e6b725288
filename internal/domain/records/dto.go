package records

import "github.com/nalaaircon/nala-backend/internal/pkg/validator"

// Filter narrows a listing. Value matches the collection's filter field
// (customer type, project or booking status); Date matches a booking's
// service_date.
type Filter struct {
	Value string
	Date  string `validate:"omitempty,date"`
}

func (f *Filter) Validate() error {
	return validator.Struct(f).OrNil()
}
