package report

import (
	"github.com/praxishr/timecontrol-backend-go/internal/pkg/validator"
)

// ========================================
// REPORT DTOs
// ========================================

type MonthlyFilter struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	// Pagination over employees
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *MonthlyFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Year < 2000 || f.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}
	if f.Month < 1 || f.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RangeFilter struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD

	// Pagination over employees
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *RangeFilter) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(f.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}
	end, endOK := validator.IsValidDate(f.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MonthlySummaryRow aggregates one employee's compiled month.
type MonthlySummaryRow struct {
	EmployeeID            string `json:"employee_id"`
	EmployeeName          string `json:"employee_name"`
	WorkedDays            int    `json:"worked_days"`
	RestDays              int    `json:"rest_days"`
	HolidayDays           int    `json:"holiday_days"`
	VacationDays          int    `json:"vacation_days"`
	AbsentDays            int    `json:"absent_days"`
	LeaveDays             int    `json:"leave_days"`              // permit/medical/training/suspension/compensatory
	TotalEffectiveMinutes int    `json:"total_effective_minutes"`
	TotalLateMinutes      int    `json:"total_late_minutes"`
	TotalOvertimeMinutes  int    `json:"total_overtime_minutes"` // approved only
	IncompleteDays        int    `json:"incomplete_days"`
}

type TardinessRow struct {
	EmployeeID       string `json:"employee_id"`
	EmployeeName     string `json:"employee_name"`
	LateDays         int    `json:"late_days"`
	TotalLateMinutes int    `json:"total_late_minutes"`
	WorstLateMinutes int    `json:"worst_late_minutes"`
}

type AbsenceRow struct {
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	AbsentDays   int      `json:"absent_days"`
	AbsentDates  []string `json:"absent_dates"`
}

type MonthlySummaryResponse struct {
	Year       int                 `json:"year"`
	Month      int                 `json:"month"`
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	Rows       []MonthlySummaryRow `json:"rows"`
}

type TardinessResponse struct {
	StartDate  string         `json:"start_date"`
	EndDate    string         `json:"end_date"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Rows       []TardinessRow `json:"rows"`
}

type AbsenceResponse struct {
	StartDate  string       `json:"start_date"`
	EndDate    string       `json:"end_date"`
	TotalCount int64        `json:"total_count"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	Rows       []AbsenceRow `json:"rows"`
}
