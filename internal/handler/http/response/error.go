package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nalaaircon/nala-backend/internal/domain/attendance"
	"github.com/nalaaircon/nala-backend/internal/domain/auth"
	"github.com/nalaaircon/nala-backend/internal/domain/dashboard"
	"github.com/nalaaircon/nala-backend/internal/domain/employee"
	"github.com/nalaaircon/nala-backend/internal/domain/expense"
	"github.com/nalaaircon/nala-backend/internal/domain/finance"
	"github.com/nalaaircon/nala-backend/internal/domain/inventory"
	"github.com/nalaaircon/nala-backend/internal/domain/kasbon"
	"github.com/nalaaircon/nala-backend/internal/domain/kpi"
	"github.com/nalaaircon/nala-backend/internal/domain/leave"
	"github.com/nalaaircon/nala-backend/internal/domain/payroll"
	"github.com/nalaaircon/nala-backend/internal/domain/records"
	"github.com/nalaaircon/nala-backend/internal/domain/user"
	"github.com/nalaaircon/nala-backend/internal/pkg/geo"
	"github.com/nalaaircon/nala-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var outside *attendance.OutsideRadiusError
	if errors.As(err, &outside) {
		writeError(w, http.StatusForbidden, "OUTSIDE_RADIUS", outside.Error(), outside.Details())
		return
	}

	var drift *inventory.ConsistencyError
	if errors.As(err, &drift) {
		details := make(map[string]string, len(drift.Discrepancies))
		for _, d := range drift.Discrepancies {
			details[d.InventoryID] = d.Name
		}
		writeError(w, http.StatusConflict, "CONSISTENCY_VIOLATION", drift.Error(), details)
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrNoSession):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Geolocation
	case errors.Is(err, geo.ErrPermissionDenied):
		writeError(w, http.StatusForbidden, "LOCATION_PERMISSION_DENIED", geo.ErrPermissionDenied.Error(), nil)
	case errors.Is(err, geo.ErrPositionUnavailable):
		writeError(w, http.StatusServiceUnavailable, "LOCATION_UNAVAILABLE", geo.ErrPositionUnavailable.Error(), nil)
	case errors.Is(err, geo.ErrTimeout):
		writeError(w, http.StatusGatewayTimeout, "LOCATION_TIMEOUT", geo.ErrTimeout.Error(), nil)

	// Attendance
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrNoOfficeConfigured):
		InternalServerError(w, err.Error())
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Employee
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrPhoneExists):
		Conflict(w, "Phone number already registered")
	case errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, err.Error())
	case errors.Is(err, employee.ErrCannotDeactivateSelf):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrInvalidLevel),
		errors.Is(err, employee.ErrInvalidBranch),
		errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, err.Error(), nil)

	// Leave
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed), errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrUnknownLeaveType), errors.Is(err, leave.ErrProofRequired):
		BadRequest(w, err.Error(), nil)

	// Inventory and expenses
	case errors.Is(err, inventory.ErrItemNotFound):
		NotFound(w, "Inventory item not found")
	case errors.Is(err, inventory.ErrItemHasMovements):
		Conflict(w, err.Error())
	case errors.Is(err, inventory.ErrInvalidQuantity), errors.Is(err, inventory.ErrInvalidCategory):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, expense.ErrExpenseNotFound):
		NotFound(w, "Expense not found")
	case errors.Is(err, expense.ErrInvalidCategory), errors.Is(err, expense.ErrEmployeeRequired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, finance.ErrIncomeNotFound):
		NotFound(w, "Income not found")

	// Kasbon, KPI, payroll
	case errors.Is(err, kasbon.ErrKasbonNotFound):
		NotFound(w, "Kasbon not found")
	case errors.Is(err, kasbon.ErrKasbonAlreadyPaid):
		Conflict(w, err.Error())
	case errors.Is(err, kasbon.ErrKasbonLimitExceeded):
		writeError(w, http.StatusUnprocessableEntity, "KASBON_LIMIT_EXCEEDED", err.Error(), nil)
	case errors.Is(err, kpi.ErrKPIRecordNotFound):
		NotFound(w, "KPI record not found")
	case errors.Is(err, kpi.ErrJobEventNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, kpi.ErrInvalidJobType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrSalarySlipNotFound):
		NotFound(w, "Salary slip not found")
	case errors.Is(err, payroll.ErrSalarySlipAlreadyExists):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrUnknownLevel), errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)

	// Records and modules
	case errors.Is(err, records.ErrRecordNotFound):
		NotFound(w, "Record not found")
	case errors.Is(err, records.ErrUnknownCollection), errors.Is(err, dashboard.ErrUnknownModule):
		NotFound(w, err.Error())
	case errors.Is(err, records.ErrReservedField):
		BadRequest(w, err.Error(), nil)

	case errors.Is(err, context.Canceled):
		writeError(w, 499, "CLIENT_CLOSED_REQUEST", "Request cancelled", nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
