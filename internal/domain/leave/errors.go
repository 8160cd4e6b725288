package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrUnknownLeaveType             = errors.New("unknown leave type")
	ErrProofRequired                = errors.New("this leave type requires proof")
	ErrOverlappingLeave             = errors.New("leave overlaps an existing request")
)
