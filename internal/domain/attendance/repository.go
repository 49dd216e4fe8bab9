package attendance

import (
	"context"
	"time"
)

// PunchRepository stores raw clock events. Punches are immutable; there
// is no update operation.
type PunchRepository interface {
	Create(ctx context.Context, punch AttendancePunch) (AttendancePunch, error)

	// ListForDay returns all punches for the employee's local calendar
	// day, ordered by punched_at ascending.
	ListForDay(ctx context.Context, employeeID string, date time.Time) ([]AttendancePunch, error)

	// Exists reports whether a punch with the exact timestamp exists for
	// the employee. Used for import dedup.
	Exists(ctx context.Context, employeeID string, punchedAt time.Time) (bool, error)

	// UpdateSource rewrites source/notes of an existing punch. Only used
	// by force reimport; regular flows never touch stored punches.
	UpdateSource(ctx context.Context, employeeID string, punchedAt time.Time, source PunchSource, notes *string) error
}

// RecordRepository stores compiled attendance records.
type RecordRepository interface {
	// Upsert replaces the record for (employee_id, date) wholesale. When
	// expectedRevision is >= 0 the write fails with
	// ErrRecordRevisionConflict unless the stored revision matches.
	Upsert(ctx context.Context, record AttendanceRecord, expectedRevision int) (AttendanceRecord, error)

	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (AttendanceRecord, error)

	List(ctx context.Context, filter RecordFilter) ([]AttendanceRecord, int64, error)
}
