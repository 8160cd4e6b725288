package kpi

import "errors"

var (
	ErrKPIRecordNotFound = errors.New("kpi record not found")
	ErrInvalidJobType    = errors.New("unknown job type")
	ErrJobEventNotFound  = errors.New("job event not found")
)
