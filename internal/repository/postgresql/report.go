package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/praxishr/timecontrol-backend-go/internal/domain/report"
	"github.com/praxishr/timecontrol-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// MonthlySummary implements report.ReportRepository. One row per
// employee with compiled records in the month; overtime counts only
// approved minutes.
func (r *reportRepositoryImpl) MonthlySummary(ctx context.Context, filter report.MonthlyFilter) ([]report.MonthlySummaryRow, int64, error) {
	q := GetQuerier(ctx, r.db)

	monthStart := time.Date(filter.Year, time.Month(filter.Month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	countQuery := `
		SELECT COUNT(DISTINCT ar.employee_id)
		FROM attendance_records ar
		WHERE ar.date >= $1 AND ar.date < $2
	`
	var total int64
	if err := q.QueryRow(ctx, countQuery, monthStart, monthEnd).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count monthly summary rows: %w", err)
	}

	query := `
		SELECT
			ar.employee_id,
			COALESCE(e.full_name, ''),
			COUNT(*) FILTER (WHERE ar.day_type = 'WORKED'),
			COUNT(*) FILTER (WHERE ar.day_type = 'REST'),
			COUNT(*) FILTER (WHERE ar.day_type = 'HOLIDAY'),
			COUNT(*) FILTER (WHERE ar.day_type = 'VACATION'),
			COUNT(*) FILTER (WHERE ar.day_type = 'ABSENT'),
			COUNT(*) FILTER (WHERE ar.day_type IN ('PERMIT', 'MEDICAL_LEAVE', 'TRAINING', 'SUSPENSION', 'COMPENSATORY_REST')),
			COALESCE(SUM(ar.effective_minutes), 0),
			COALESCE(SUM(ar.late_minutes), 0),
			COALESCE(SUM(ar.overtime_effective_minutes) FILTER (WHERE ar.overtime_status = 'APPROVED'), 0),
			COUNT(*) FILTER (WHERE ar.status = 'INCOMPLETE')
		FROM attendance_records ar
		LEFT JOIN employees e ON e.id = ar.employee_id
		WHERE ar.date >= $1 AND ar.date < $2
		GROUP BY ar.employee_id, e.full_name
		ORDER BY e.full_name ASC
		LIMIT $3 OFFSET $4
	`

	offset := (filter.Page - 1) * filter.Limit
	rows, err := q.Query(ctx, query, monthStart, monthEnd, filter.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query monthly summary: %w", err)
	}
	defer rows.Close()

	var result []report.MonthlySummaryRow
	for rows.Next() {
		var row report.MonthlySummaryRow
		if err := rows.Scan(
			&row.EmployeeID, &row.EmployeeName,
			&row.WorkedDays, &row.RestDays, &row.HolidayDays, &row.VacationDays,
			&row.AbsentDays, &row.LeaveDays,
			&row.TotalEffectiveMinutes, &row.TotalLateMinutes, &row.TotalOvertimeMinutes,
			&row.IncompleteDays,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan monthly summary row: %w", err)
		}
		result = append(result, row)
	}
	return result, total, rows.Err()
}

// Tardiness implements report.ReportRepository.
func (r *reportRepositoryImpl) Tardiness(ctx context.Context, filter report.RangeFilter) ([]report.TardinessRow, int64, error) {
	q := GetQuerier(ctx, r.db)

	countQuery := `
		SELECT COUNT(DISTINCT ar.employee_id)
		FROM attendance_records ar
		WHERE ar.date >= $1::date AND ar.date <= $2::date AND ar.late_minutes > 0
	`
	var total int64
	if err := q.QueryRow(ctx, countQuery, filter.StartDate, filter.EndDate).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tardiness rows: %w", err)
	}

	query := `
		SELECT
			ar.employee_id,
			COALESCE(e.full_name, ''),
			COUNT(*),
			COALESCE(SUM(ar.late_minutes), 0),
			COALESCE(MAX(ar.late_minutes), 0)
		FROM attendance_records ar
		LEFT JOIN employees e ON e.id = ar.employee_id
		WHERE ar.date >= $1::date AND ar.date <= $2::date AND ar.late_minutes > 0
		GROUP BY ar.employee_id, e.full_name
		ORDER BY SUM(ar.late_minutes) DESC
		LIMIT $3 OFFSET $4
	`

	offset := (filter.Page - 1) * filter.Limit
	rows, err := q.Query(ctx, query, filter.StartDate, filter.EndDate, filter.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tardiness report: %w", err)
	}
	defer rows.Close()

	var result []report.TardinessRow
	for rows.Next() {
		var row report.TardinessRow
		if err := rows.Scan(
			&row.EmployeeID, &row.EmployeeName,
			&row.LateDays, &row.TotalLateMinutes, &row.WorstLateMinutes,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan tardiness row: %w", err)
		}
		result = append(result, row)
	}
	return result, total, rows.Err()
}

// Absences implements report.ReportRepository.
func (r *reportRepositoryImpl) Absences(ctx context.Context, filter report.RangeFilter) ([]report.AbsenceRow, int64, error) {
	q := GetQuerier(ctx, r.db)

	countQuery := `
		SELECT COUNT(DISTINCT ar.employee_id)
		FROM attendance_records ar
		WHERE ar.date >= $1::date AND ar.date <= $2::date AND ar.day_type = 'ABSENT'
	`
	var total int64
	if err := q.QueryRow(ctx, countQuery, filter.StartDate, filter.EndDate).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count absence rows: %w", err)
	}

	query := `
		SELECT
			ar.employee_id,
			COALESCE(e.full_name, ''),
			COUNT(*),
			ARRAY_AGG(TO_CHAR(ar.date, 'YYYY-MM-DD') ORDER BY ar.date)
		FROM attendance_records ar
		LEFT JOIN employees e ON e.id = ar.employee_id
		WHERE ar.date >= $1::date AND ar.date <= $2::date AND ar.day_type = 'ABSENT'
		GROUP BY ar.employee_id, e.full_name
		ORDER BY COUNT(*) DESC
		LIMIT $3 OFFSET $4
	`

	offset := (filter.Page - 1) * filter.Limit
	rows, err := q.Query(ctx, query, filter.StartDate, filter.EndDate, filter.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query absence report: %w", err)
	}
	defer rows.Close()

	var result []report.AbsenceRow
	for rows.Next() {
		var row report.AbsenceRow
		if err := rows.Scan(
			&row.EmployeeID, &row.EmployeeName, &row.AbsentDays, &row.AbsentDates,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan absence row: %w", err)
		}
		result = append(result, row)
	}
	return result, total, rows.Err()
}
