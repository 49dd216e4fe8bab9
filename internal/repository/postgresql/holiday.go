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

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) schedule.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements schedule.HolidayRepository.
func (h *holidayRepositoryImpl) Create(ctx context.Context, holiday schedule.Holiday) (schedule.Holiday, error) {
	q := GetQuerier(ctx, h.db)
	query := `
		INSERT INTO holidays (
			id, date, name, kind, recurring, created_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, NOW()
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		holiday.Date, holiday.Name, holiday.Kind, holiday.Recurring,
	).Scan(&holiday.ID, &holiday.CreatedAt)
	if err != nil {
		return schedule.Holiday{}, err
	}

	return holiday, nil
}

// List implements schedule.HolidayRepository.
func (h *holidayRepositoryImpl) List(ctx context.Context, filter schedule.HolidayFilter) ([]schedule.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	where := "TRUE"
	args := []interface{}{}
	if filter.Year != nil {
		// Recurring holidays apply to every year, so they always match.
		where = "(recurring OR EXTRACT(YEAR FROM date)::int = $1)"
		args = append(args, *filter.Year)
	}

	query := `
		SELECT id, date, name, kind, recurring, created_at
		FROM holidays
		WHERE ` + where + `
		ORDER BY EXTRACT(MONTH FROM date), EXTRACT(DAY FROM date)
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []schedule.Holiday
	for rows.Next() {
		var hd schedule.Holiday
		if err := rows.Scan(&hd.ID, &hd.Date, &hd.Name, &hd.Kind, &hd.Recurring, &hd.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, hd)
	}
	return holidays, rows.Err()
}

// Delete implements schedule.HolidayRepository.
func (h *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, h.db)
	query := `
		DELETE FROM holidays
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return schedule.ErrHolidayNotFound
	}
	return nil
}

// FindForDate implements schedule.HolidayRepository. An exact date entry
// wins over a recurring month/day match.
func (h *holidayRepositoryImpl) FindForDate(ctx context.Context, date time.Time) (*schedule.Holiday, error) {
	q := GetQuerier(ctx, h.db)
	query := `
		SELECT id, date, name, kind, recurring, created_at
		FROM holidays
		WHERE (NOT recurring AND date = $1::date)
		   OR (recurring
		       AND EXTRACT(MONTH FROM date) = EXTRACT(MONTH FROM $1::date)
		       AND EXTRACT(DAY FROM date) = EXTRACT(DAY FROM $1::date))
		ORDER BY recurring ASC
		LIMIT 1
	`

	var hd schedule.Holiday
	err := q.QueryRow(ctx, query, date).Scan(
		&hd.ID, &hd.Date, &hd.Name, &hd.Kind, &hd.Recurring, &hd.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &hd, nil
}
