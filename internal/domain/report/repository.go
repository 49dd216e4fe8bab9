package report

import "context"

// ReportRepository is pure read/aggregation over compiled attendance
// records; it never mutates state.
type ReportRepository interface {
	MonthlySummary(ctx context.Context, filter MonthlyFilter) ([]MonthlySummaryRow, int64, error)
	Tardiness(ctx context.Context, filter RangeFilter) ([]TardinessRow, int64, error)
	Absences(ctx context.Context, filter RangeFilter) ([]AbsenceRow, int64, error)
}
