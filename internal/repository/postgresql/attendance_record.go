package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/attendance"
	"github.com/praxishr/timecontrol-backend-go/internal/pkg/database"
)

type recordRepositoryImpl struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) attendance.RecordRepository {
	return &recordRepositoryImpl{db: db}
}

// Upsert implements attendance.RecordRepository. The record for
// (employee_id, date) is replaced wholesale; revision is bumped by the
// database so concurrent writers cannot both win.
func (r *recordRepositoryImpl) Upsert(ctx context.Context, record attendance.AttendanceRecord, expectedRevision int) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	conflictGuard := ""
	args := []interface{}{
		record.EmployeeID, record.Date, record.DayType, record.Status,
		record.ScheduledMinutes, record.EffectiveMinutes, record.LateMinutes,
		record.OvertimeRawMinutes, record.OvertimeEffectiveMinutes,
		record.OvertimeMultiplierPct, record.OvertimeStatus, record.OvertimePostedMinutes,
		record.IsHoliday, record.IsNightShift, record.DocumentRef,
		record.OverrideDayType, record.OverrideNotes,
	}
	if expectedRevision >= 0 {
		conflictGuard = " WHERE attendance_records.revision = $18"
		args = append(args, expectedRevision)
	}

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, day_type, status,
			scheduled_minutes, effective_minutes, late_minutes,
			overtime_raw_minutes, overtime_effective_minutes, overtime_multiplier_pct, overtime_status,
			overtime_posted_minutes, is_holiday, is_night_shift, document_ref,
			override_day_type, override_notes, revision, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, 1, NOW(), NOW()
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			day_type = EXCLUDED.day_type,
			status = EXCLUDED.status,
			scheduled_minutes = EXCLUDED.scheduled_minutes,
			effective_minutes = EXCLUDED.effective_minutes,
			late_minutes = EXCLUDED.late_minutes,
			overtime_raw_minutes = EXCLUDED.overtime_raw_minutes,
			overtime_effective_minutes = EXCLUDED.overtime_effective_minutes,
			overtime_multiplier_pct = EXCLUDED.overtime_multiplier_pct,
			overtime_status = EXCLUDED.overtime_status,
			overtime_posted_minutes = EXCLUDED.overtime_posted_minutes,
			is_holiday = EXCLUDED.is_holiday,
			is_night_shift = EXCLUDED.is_night_shift,
			document_ref = EXCLUDED.document_ref,
			override_day_type = EXCLUDED.override_day_type,
			override_notes = EXCLUDED.override_notes,
			revision = attendance_records.revision + 1,
			updated_at = NOW()` + conflictGuard + `
		RETURNING id, revision, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, args...).Scan(
		&record.ID, &record.Revision, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The guarded upsert matched a row but the revision moved.
			return attendance.AttendanceRecord{}, attendance.ErrRecordRevisionConflict
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return record, nil
}

// GetByEmployeeAndDate implements attendance.RecordRepository.
func (r *recordRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ar.id, ar.employee_id, ar.date, ar.day_type, ar.status,
			ar.scheduled_minutes, ar.effective_minutes, ar.late_minutes,
			ar.overtime_raw_minutes, ar.overtime_effective_minutes, ar.overtime_multiplier_pct, ar.overtime_status,
			ar.overtime_posted_minutes, ar.is_holiday, ar.is_night_shift, ar.document_ref,
			ar.override_day_type, ar.override_notes, ar.revision, ar.created_at, ar.updated_at,
			e.full_name
		FROM attendance_records ar
		LEFT JOIN employees e ON e.id = ar.employee_id
		WHERE ar.employee_id = $1 AND ar.date = $2::date
	`

	record, err := scanRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.AttendanceRecord{}, err
	}

	records := []attendance.AttendanceRecord{record}
	if err := r.attachPunches(ctx, records); err != nil {
		return attendance.AttendanceRecord{}, err
	}
	return records[0], nil
}

// List implements attendance.RecordRepository.
func (r *recordRepositoryImpl) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.AttendanceRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "ar.employee_id = $1"
	args := []interface{}{filter.EmployeeID}
	argIdx := 2

	if filter.StartDate != nil && *filter.StartDate != "" {
		where += fmt.Sprintf(" AND ar.date >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		where += fmt.Sprintf(" AND ar.date <= $%d::date", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.DayType != nil && *filter.DayType != "" {
		where += fmt.Sprintf(" AND ar.day_type = $%d", argIdx)
		args = append(args, *filter.DayType)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND ar.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance_records ar WHERE " + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	sortOrder := "ASC"
	if strings.ToLower(filter.SortOrder) == "desc" {
		sortOrder = "DESC"
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT ar.id, ar.employee_id, ar.date, ar.day_type, ar.status,
			ar.scheduled_minutes, ar.effective_minutes, ar.late_minutes,
			ar.overtime_raw_minutes, ar.overtime_effective_minutes, ar.overtime_multiplier_pct, ar.overtime_status,
			ar.overtime_posted_minutes, ar.is_holiday, ar.is_night_shift, ar.document_ref,
			ar.override_day_type, ar.override_notes, ar.revision, ar.created_at, ar.updated_at,
			e.full_name
		FROM attendance_records ar
		LEFT JOIN employees e ON e.id = ar.employee_id
		WHERE %s
		ORDER BY ar.date %s
		LIMIT $%d OFFSET $%d
	`, where, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating attendance rows: %w", err)
	}

	if err := r.attachPunches(ctx, records); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func scanRecord(row pgx.Row) (attendance.AttendanceRecord, error) {
	var record attendance.AttendanceRecord
	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.Date, &record.DayType, &record.Status,
		&record.ScheduledMinutes, &record.EffectiveMinutes, &record.LateMinutes,
		&record.OvertimeRawMinutes, &record.OvertimeEffectiveMinutes,
		&record.OvertimeMultiplierPct, &record.OvertimeStatus, &record.OvertimePostedMinutes,
		&record.IsHoliday, &record.IsNightShift, &record.DocumentRef,
		&record.OverrideDayType, &record.OverrideNotes,
		&record.Revision, &record.CreatedAt, &record.UpdatedAt,
		&record.EmployeeName,
	)
	return record, err
}

// attachPunches loads the punches of every listed record in one query
// and distributes them by calendar date. All records belong to the same
// employee by construction of the filter.
func (r *recordRepositoryImpl) attachPunches(ctx context.Context, records []attendance.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	minDate, maxDate := records[0].Date, records[0].Date
	for _, record := range records[1:] {
		if record.Date.Before(minDate) {
			minDate = record.Date
		}
		if record.Date.After(maxDate) {
			maxDate = record.Date
		}
	}

	query := `
		SELECT id, employee_id, punched_at, source, notes, created_at
		FROM attendance_punches
		WHERE employee_id = $1 AND punched_at::date BETWEEN $2::date AND $3::date
		ORDER BY punched_at ASC
	`
	rows, err := q.Query(ctx, query, records[0].EmployeeID, minDate, maxDate)
	if err != nil {
		return fmt.Errorf("failed to query punches: %w", err)
	}
	defer rows.Close()

	byDate := make(map[string][]attendance.AttendancePunch)
	for rows.Next() {
		var punch attendance.AttendancePunch
		if err := rows.Scan(
			&punch.ID, &punch.EmployeeID, &punch.PunchedAt,
			&punch.Source, &punch.Notes, &punch.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to scan punch: %w", err)
		}
		key := punch.PunchedAt.Format("2006-01-02")
		byDate[key] = append(byDate[key], punch)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range records {
		records[i].Punches = byDate[records[i].Date.Format("2006-01-02")]
	}
	return nil
}
