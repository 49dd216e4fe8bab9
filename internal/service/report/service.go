package report

import (
	"context"
	"fmt"

	"github.com/praxishr/timecontrol-backend-go/internal/domain/report"
)

type reportServiceImpl struct {
	repo report.ReportRepository
}

func NewReportService(repo report.ReportRepository) report.ReportService {
	return &reportServiceImpl{repo: repo}
}

// MonthlySummary implements report.ReportService.
func (s *reportServiceImpl) MonthlySummary(ctx context.Context, filter report.MonthlyFilter) (report.MonthlySummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return report.MonthlySummaryResponse{}, err
	}

	rows, total, err := s.repo.MonthlySummary(ctx, filter)
	if err != nil {
		return report.MonthlySummaryResponse{}, fmt.Errorf("failed to build monthly summary: %w", err)
	}

	return report.MonthlySummaryResponse{
		Year:       filter.Year,
		Month:      filter.Month,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Rows:       rows,
	}, nil
}

// Tardiness implements report.ReportService.
func (s *reportServiceImpl) Tardiness(ctx context.Context, filter report.RangeFilter) (report.TardinessResponse, error) {
	if err := filter.Validate(); err != nil {
		return report.TardinessResponse{}, err
	}

	rows, total, err := s.repo.Tardiness(ctx, filter)
	if err != nil {
		return report.TardinessResponse{}, fmt.Errorf("failed to build tardiness report: %w", err)
	}

	return report.TardinessResponse{
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Rows:       rows,
	}, nil
}

// Absences implements report.ReportService.
func (s *reportServiceImpl) Absences(ctx context.Context, filter report.RangeFilter) (report.AbsenceResponse, error) {
	if err := filter.Validate(); err != nil {
		return report.AbsenceResponse{}, err
	}

	rows, total, err := s.repo.Absences(ctx, filter)
	if err != nil {
		return report.AbsenceResponse{}, fmt.Errorf("failed to build absence report: %w", err)
	}

	return report.AbsenceResponse{
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Rows:       rows,
	}, nil
}
