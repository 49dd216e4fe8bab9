package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/praxishr/timecontrol-backend-go/internal/domain/attendance"
	"github.com/praxishr/timecontrol-backend-go/internal/pkg/database"
)

type punchRepositoryImpl struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) attendance.PunchRepository {
	return &punchRepositoryImpl{db: db}
}

// Create implements attendance.PunchRepository. Punches are immutable
// rows; the unique (employee_id, punched_at) index is the dedup guard.
func (p *punchRepositoryImpl) Create(ctx context.Context, punch attendance.AttendancePunch) (attendance.AttendancePunch, error) {
	q := GetQuerier(ctx, p.db)
	query := `
		INSERT INTO attendance_punches (
			id, employee_id, punched_at, source, notes, created_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, NOW()
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		punch.EmployeeID, punch.PunchedAt, punch.Source, punch.Notes,
	).Scan(&punch.ID, &punch.CreatedAt)
	if err != nil {
		return attendance.AttendancePunch{}, err
	}

	return punch, nil
}

// ListForDay implements attendance.PunchRepository.
func (p *punchRepositoryImpl) ListForDay(ctx context.Context, employeeID string, date time.Time) ([]attendance.AttendancePunch, error) {
	q := GetQuerier(ctx, p.db)
	query := `
		SELECT id, employee_id, punched_at, source, notes, created_at
		FROM attendance_punches
		WHERE employee_id = $1 AND punched_at::date = $2::date
		ORDER BY punched_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query punches: %w", err)
	}
	defer rows.Close()

	var punches []attendance.AttendancePunch
	for rows.Next() {
		var punch attendance.AttendancePunch
		if err := rows.Scan(
			&punch.ID, &punch.EmployeeID, &punch.PunchedAt,
			&punch.Source, &punch.Notes, &punch.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, punch)
	}
	return punches, rows.Err()
}

// Exists implements attendance.PunchRepository.
func (p *punchRepositoryImpl) Exists(ctx context.Context, employeeID string, punchedAt time.Time) (bool, error) {
	q := GetQuerier(ctx, p.db)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendance_punches
			WHERE employee_id = $1 AND punched_at = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, punchedAt).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateSource implements attendance.PunchRepository.
func (p *punchRepositoryImpl) UpdateSource(ctx context.Context, employeeID string, punchedAt time.Time, source attendance.PunchSource, notes *string) error {
	q := GetQuerier(ctx, p.db)
	query := `
		UPDATE attendance_punches
		SET source = $3, notes = $4
		WHERE employee_id = $1 AND punched_at = $2
	`
	commandTag, err := q.Exec(ctx, query, employeeID, punchedAt, source, notes)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return attendance.ErrRecordNotFound
	}
	return nil
}
