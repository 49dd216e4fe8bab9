package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/schedule"
	"github.com/praxishr/timecontrol-backend-go/internal/pkg/database"
)

type workScheduleRepositoryImpl struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepositoryImpl{db: db}
}

// Create implements schedule.WorkScheduleRepository. The schedule and
// its seven day entries are inserted together; callers wrap this in a
// transaction when atomicity with other writes matters.
func (w *workScheduleRepositoryImpl) Create(ctx context.Context, workSchedule schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		INSERT INTO work_schedules (
			id, name, effective_from, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		workSchedule.Name, workSchedule.EffectiveFrom,
	).Scan(&workSchedule.ID, &workSchedule.CreatedAt, &workSchedule.UpdatedAt)
	if err != nil {
		return schedule.WorkSchedule{}, err
	}

	dayQuery := `
		INSERT INTO work_schedule_days (
			id, work_schedule_id, weekday, is_work_day,
			start_time, end_time, entry_grace_minutes, exit_grace_minutes
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7
		) RETURNING id
	`
	for i := range workSchedule.Days {
		d := &workSchedule.Days[i]
		d.WorkScheduleID = workSchedule.ID
		err := q.QueryRow(ctx, dayQuery,
			workSchedule.ID, d.Weekday, d.IsWorkDay,
			d.StartTime, d.EndTime, d.EntryGraceMinutes, d.ExitGraceMinutes,
		).Scan(&d.ID)
		if err != nil {
			return schedule.WorkSchedule{}, fmt.Errorf("failed to insert schedule day: %w", err)
		}
	}

	return workSchedule, nil
}

// GetByID implements schedule.WorkScheduleRepository.
func (w *workScheduleRepositoryImpl) GetByID(ctx context.Context, id string) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, w.db)
	query := `
		SELECT id, name, effective_from, created_at, updated_at
		FROM work_schedules
		WHERE id = $1
	`

	var ws schedule.WorkSchedule
	err := q.QueryRow(ctx, query, id).Scan(
		&ws.ID, &ws.Name, &ws.EffectiveFrom, &ws.CreatedAt, &ws.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrWorkScheduleNotFound
		}
		return schedule.WorkSchedule{}, err
	}

	if ws.Days, err = w.loadDays(ctx, ws.ID); err != nil {
		return schedule.WorkSchedule{}, err
	}

	return ws, nil
}

// List implements schedule.WorkScheduleRepository.
func (w *workScheduleRepositoryImpl) List(ctx context.Context) ([]schedule.WorkSchedule, int64, error) {
	q := GetQuerier(ctx, w.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM work_schedules`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count work schedules: %w", err)
	}

	query := `
		SELECT
			ws.id, ws.name, ws.effective_from, ws.created_at, ws.updated_at,
			wsd.id, wsd.weekday, wsd.is_work_day,
			wsd.start_time, wsd.end_time, wsd.entry_grace_minutes, wsd.exit_grace_minutes
		FROM work_schedules ws
		LEFT JOIN work_schedule_days wsd ON wsd.work_schedule_id = ws.id
		ORDER BY ws.effective_from DESC, wsd.weekday ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query work schedules: %w", err)
	}
	defer rows.Close()

	schedules, err := mapRowsToWorkSchedules(rows)
	if err != nil {
		return nil, 0, err
	}
	return schedules, total, nil
}

// GetEffectiveForDate implements schedule.WorkScheduleRepository. The
// schedule with the greatest effective_from on or before date wins.
func (w *workScheduleRepositoryImpl) GetEffectiveForDate(ctx context.Context, date time.Time) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, w.db)
	query := `
		SELECT id, name, effective_from, created_at, updated_at
		FROM work_schedules
		WHERE effective_from <= $1
		ORDER BY effective_from DESC
		LIMIT 1
	`

	var ws schedule.WorkSchedule
	err := q.QueryRow(ctx, query, date).Scan(
		&ws.ID, &ws.Name, &ws.EffectiveFrom, &ws.CreatedAt, &ws.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrNoScheduleConfigured
		}
		return schedule.WorkSchedule{}, err
	}

	if ws.Days, err = w.loadDays(ctx, ws.ID); err != nil {
		return schedule.WorkSchedule{}, err
	}

	return ws, nil
}

func (w *workScheduleRepositoryImpl) loadDays(ctx context.Context, scheduleID string) ([]schedule.ScheduleDay, error) {
	q := GetQuerier(ctx, w.db)
	query := `
		SELECT id, work_schedule_id, weekday, is_work_day,
			start_time, end_time, entry_grace_minutes, exit_grace_minutes
		FROM work_schedule_days
		WHERE work_schedule_id = $1
		ORDER BY weekday ASC
	`

	rows, err := q.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule days: %w", err)
	}
	defer rows.Close()

	var days []schedule.ScheduleDay
	for rows.Next() {
		var d schedule.ScheduleDay
		if err := rows.Scan(
			&d.ID, &d.WorkScheduleID, &d.Weekday, &d.IsWorkDay,
			&d.StartTime, &d.EndTime, &d.EntryGraceMinutes, &d.ExitGraceMinutes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan schedule day: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func mapRowsToWorkSchedules(rows pgx.Rows) ([]schedule.WorkSchedule, error) {
	schedulesMap := make(map[string]*schedule.WorkSchedule)
	var order []string

	for rows.Next() {
		var (
			ws  schedule.WorkSchedule
			day struct {
				ID                *string
				Weekday           *int
				IsWorkDay         *bool
				StartTime         *string
				EndTime           *string
				EntryGraceMinutes *int
				ExitGraceMinutes  *int
			}
		)
		err := rows.Scan(
			&ws.ID, &ws.Name, &ws.EffectiveFrom, &ws.CreatedAt, &ws.UpdatedAt,
			&day.ID, &day.Weekday, &day.IsWorkDay,
			&day.StartTime, &day.EndTime, &day.EntryGraceMinutes, &day.ExitGraceMinutes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		existing, ok := schedulesMap[ws.ID]
		if !ok {
			copied := ws
			schedulesMap[ws.ID] = &copied
			order = append(order, ws.ID)
			existing = &copied
		}

		// Day columns are nullable through the LEFT JOIN.
		if day.ID != nil {
			existing.Days = append(existing.Days, schedule.ScheduleDay{
				ID:                *day.ID,
				WorkScheduleID:    ws.ID,
				Weekday:           *day.Weekday,
				IsWorkDay:         *day.IsWorkDay,
				StartTime:         day.StartTime,
				EndTime:           day.EndTime,
				EntryGraceMinutes: *day.EntryGraceMinutes,
				ExitGraceMinutes:  *day.ExitGraceMinutes,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating work schedule rows: %w", err)
	}

	result := make([]schedule.WorkSchedule, 0, len(order))
	for _, id := range order {
		result = append(result, *schedulesMap[id])
	}
	return result, nil
}
