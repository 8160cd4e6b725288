package attendance

import (
	"errors"
	"fmt"
	"math"
)

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn     = errors.New("you have already checked in today")
	ErrOutsideAllowedRadius = errors.New("you are outside the allowed radius")
	ErrNoOfficeConfigured   = errors.New("no office is configured for attendance")

	// Check-out errors
	ErrNotCheckedIn          = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut     = errors.New("you have already checked out")
	ErrCheckOutBeforeCheckIn = errors.New("check-out must be later than check-in")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// OutsideRadiusError tells the technician which office is closest and how
// far away they are. It matches ErrOutsideAllowedRadius.
type OutsideRadiusError struct {
	OfficeName     string
	DistanceMeters float64
	RadiusMeters   float64
}

func (e *OutsideRadiusError) Error() string {
	return fmt.Sprintf("you are %dm from %s, check-in is allowed within %dm",
		int(math.Round(e.DistanceMeters)), e.OfficeName, int(math.Round(e.RadiusMeters)))
}

func (e *OutsideRadiusError) Unwrap() error {
	return ErrOutsideAllowedRadius
}

// Details is rendered in the error response.
func (e *OutsideRadiusError) Details() map[string]string {
	return map[string]string{
		"office":          e.OfficeName,
		"distance_meters": fmt.Sprintf("%d", int(math.Round(e.DistanceMeters))),
		"radius_meters":   fmt.Sprintf("%d", int(math.Round(e.RadiusMeters))),
	}
}
