package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for the attendance engine.
type AttendanceService interface {
	// GetDay retrieves the compiled record for one employee-day.
	GetDay(ctx context.Context, employeeID string, date time.Time) (AttendanceRecordResponse, error)

	// ListRecords retrieves records for an employee over a date range.
	ListRecords(ctx context.Context, filter RecordFilter) (ListAttendanceResponse, error)

	// AddManualPunch stores a justified manual punch and recompiles the day.
	AddManualPunch(ctx context.Context, req AddPunchRequest) (AttendanceRecordResponse, error)

	// RecompileDay rebuilds the record for one employee-day from punches,
	// schedule and holidays. Idempotent.
	RecompileDay(ctx context.Context, employeeID string, date time.Time) (AttendanceRecordResponse, error)

	// RecalculateWeek recompiles the seven days of the week containing
	// the given date.
	RecalculateWeek(ctx context.Context, req RecalculateWeekRequest) ([]AttendanceRecordResponse, error)

	// OverrideDay replaces the computed classification with an audited
	// manual one and re-derives the minute fields.
	OverrideDay(ctx context.Context, req OverrideRequest) (AttendanceRecordResponse, error)

	// RevertOverride restores the mechanical classification. Requires
	// elevated privilege; only valid while the pay period is open.
	RevertOverride(ctx context.Context, employeeID string, date time.Time) (AttendanceRecordResponse, error)

	// ApproveOvertime resolves pending overtime and atomically posts the
	// credited minutes to the hour bank.
	ApproveOvertime(ctx context.Context, req ApproveOvertimeRequest) (AttendanceRecordResponse, error)

	// RejectOvertime resolves pending overtime without crediting it.
	RejectOvertime(ctx context.Context, req RejectOvertimeRequest) (AttendanceRecordResponse, error)

	// PatchRecord is the logged superuser correction allowed on CLOSED records.
	PatchRecord(ctx context.Context, req PatchRecordRequest) (AttendanceRecordResponse, error)
}
