package response

import (
	"errors"
	"net/http"

	"github.com/praxishr/timecontrol-backend-go/internal/domain/attendance"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/biometric"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/employee"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/ledger"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/schedule"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/user"
	"github.com/praxishr/timecontrol-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// User / access errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrSupervisorAccessRequired):
		Forbidden(w, "Supervisor access required")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrSuperuserAccessRequired):
		Forbidden(w, "Superuser access required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrNoScheduleConfigured):
		NotFound(w, "No work schedule configured for this date")
	case errors.Is(err, schedule.ErrWorkScheduleNotFound):
		NotFound(w, "Work schedule not found")
	case errors.Is(err, schedule.ErrWorkScheduleNameExists):
		Conflict(w, "Work schedule already exists")
	case errors.Is(err, schedule.ErrScheduleDayMissing):
		InternalServerError(w, "Work schedule is missing a weekday entry")
	case errors.Is(err, schedule.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, schedule.ErrHolidayExists):
		Conflict(w, "Holiday already exists for this date")
	case errors.Is(err, schedule.ErrInvalidDateFormat):
		BadRequest(w, "Invalid date format, use YYYY-MM-DD", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrRecordClosed):
		Conflict(w, "Attendance record is closed for the pay period")
	case errors.Is(err, attendance.ErrRecordRevisionConflict):
		Conflict(w, "Attendance record was modified concurrently, retry")
	case errors.Is(err, attendance.ErrOverrideNotesRequired),
		errors.Is(err, attendance.ErrDocumentRefRequired),
		errors.Is(err, attendance.ErrPunchNotesRequired),
		errors.Is(err, attendance.ErrInvalidOvertimeAdjustment):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrNoOverrideToRevert),
		errors.Is(err, attendance.ErrNoOvertimePending):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrOvertimeAlreadyResolved):
		Conflict(w, "Overtime has already been approved or rejected")
	case errors.Is(err, attendance.ErrDuplicatePunch):
		Conflict(w, "A punch already exists for this employee and timestamp")

	// Ledger domain errors
	case errors.Is(err, ledger.ErrUnknownKind),
		errors.Is(err, ledger.ErrUnknownTxType),
		errors.Is(err, ledger.ErrNotesRequired),
		errors.Is(err, ledger.ErrReasonRequired),
		errors.Is(err, ledger.ErrPeriodStartRequired),
		errors.Is(err, ledger.ErrInvalidDeltaSign),
		errors.Is(err, ledger.ErrZeroDelta):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, ledger.ErrLedgerInconsistent):
		// Data corruption, not a caller mistake.
		InternalServerError(w, "Ledger is inconsistent and requires manual reconciliation")

	// Biometric domain errors
	case errors.Is(err, biometric.ErrMappingNotFound):
		NotFound(w, "Biometric mapping not found")
	case errors.Is(err, biometric.ErrBiometricIDMapped):
		Conflict(w, "Biometric id is already mapped")
	case errors.Is(err, biometric.ErrUnsupportedFileType):
		BadRequest(w, "Unsupported file type, upload .xlsx or .csv", nil)
	case errors.Is(err, biometric.ErrEmptyBatch):
		BadRequest(w, "Import file contains no punch rows", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
