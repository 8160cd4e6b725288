package records

import "errors"

var (
	ErrUnknownCollection = errors.New("unknown record collection")
	ErrRecordNotFound    = errors.New("record not found")
	ErrReservedField     = errors.New("field is managed by the store")
)
