package report

import "context"

type ReportService interface {
	MonthlySummary(ctx context.Context, filter MonthlyFilter) (MonthlySummaryResponse, error)
	Tardiness(ctx context.Context, filter RangeFilter) (TardinessResponse, error)
	Absences(ctx context.Context, filter RangeFilter) (AbsenceResponse, error)
}
