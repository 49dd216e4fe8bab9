package attendance

import "errors"

// Attendance domain errors
var (
	// Record errors
	ErrRecordNotFound         = errors.New("attendance record not found for this date")
	ErrRecordClosed           = errors.New("attendance record is closed for the pay period")
	ErrRecordRevisionConflict = errors.New("attendance record was modified concurrently")

	// Override errors
	ErrOverrideNotesRequired = errors.New("override requires a non-empty justification")
	ErrDocumentRefRequired   = errors.New("this day type requires a supporting document reference")
	ErrNoOverrideToRevert    = errors.New("no active override on this record")

	// Overtime errors
	ErrOvertimeAlreadyResolved   = errors.New("overtime has already been approved or rejected")
	ErrNoOvertimePending         = errors.New("no pending overtime on this record")
	ErrInvalidOvertimeAdjustment = errors.New("invalid overtime adjustment")

	// Punch errors
	ErrPunchNotesRequired = errors.New("manual punches require a non-empty justification")
	ErrDuplicatePunch     = errors.New("a punch already exists for this employee and timestamp")
	ErrPunchExceedsCap    = errors.New("paired punch intervals exceed the daily cap")
)
