package attendance

import "time"

// State of an employee's attendance for one date. The only transitions are
// NotCheckedIn to CheckedIn to CheckedOut.
type State string

const (
	StateNotCheckedIn State = "NOT_CHECKED_IN"
	StateCheckedIn    State = "CHECKED_IN"
	StateCheckedOut   State = "CHECKED_OUT"
)

// Attendance is the record of one employee on one date. LateMinutes is set
// at check-in and OvertimeMinutes at check-out; neither changes afterwards.
type Attendance struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	Branch     string     `json:"branch"`
	Date       string     `json:"date"` // YYYY-MM-DD in company time zone
	CheckIn    *time.Time `json:"check_in"`
	CheckOut   *time.Time `json:"check_out"`

	LateMinutes     int `json:"late_minutes"`
	OvertimeMinutes int `json:"overtime_minutes"`

	// Geolocation snapshot at check-in
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Accuracy       float64 `json:"accuracy"`
	OfficeKey      string  `json:"office_key"`
	OfficeName     string  `json:"office_name"`
	DistanceMeters float64 `json:"distance_meters"`

	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// State derives the attendance state from the stored timestamps.
func (a *Attendance) State() State {
	switch {
	case a == nil || a.CheckIn == nil:
		return StateNotCheckedIn
	case a.CheckOut == nil:
		return StateCheckedIn
	default:
		return StateCheckedOut
	}
}
