package attendance

import (
	"github.com/praxishr/timecontrol-backend-go/internal/pkg/validator"
)

// ========================================
// PUNCH DTOs
// ========================================

type AddPunchRequest struct {
	EmployeeID string `json:"employee_id"`
	PunchedAt  string `json:"punched_at"` // RFC3339
	Notes      string `json:"notes"`
}

func (r *AddPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDateTime(r.PunchedAt); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "punched_at",
			Message: "punched_at must be an RFC3339 timestamp",
		})
	}

	// Manual punches always carry a justification.
	if validator.IsEmpty(r.Notes) {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes is required for manual punches",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchResponse struct {
	ID        string  `json:"id"`
	PunchedAt string  `json:"punched_at"`
	Source    string  `json:"source"`
	Notes     *string `json:"notes,omitempty"`
}

// ========================================
// RECORD DTOs
// ========================================

type OverrideRequest struct {
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"` // YYYY-MM-DD
	DayType     string  `json:"day_type"`
	Notes       string  `json:"notes"`
	DocumentRef *string `json:"document_ref,omitempty"`
}

func (r *OverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid date (YYYY-MM-DD)",
		})
	}

	if !validator.IsInSlice(r.DayType, DayTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "day_type",
			Message: "day_type is not a valid classification",
		})
	}

	if validator.IsEmpty(r.Notes) {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes is required",
		})
	}

	if DayType(r.DayType).RequiresDocumentRef() &&
		(r.DocumentRef == nil || validator.IsEmpty(*r.DocumentRef)) {
		errs = append(errs, validator.ValidationError{
			Field:   "document_ref",
			Message: "document_ref is required for " + r.DayType,
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApproveOvertimeRequest struct {
	EmployeeID      string  `json:"employee_id"`
	Date            string  `json:"date"`
	Notes           *string `json:"notes,omitempty"`
	AdjustedMinutes *int    `json:"adjusted_minutes,omitempty"`
}

func (r *ApproveOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid date (YYYY-MM-DD)",
		})
	}

	if r.AdjustedMinutes != nil && *r.AdjustedMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "adjusted_minutes",
			Message: "adjusted_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectOvertimeRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Notes      string `json:"notes"`
}

func (r *RejectOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid date (YYYY-MM-DD)",
		})
	}

	if validator.IsEmpty(r.Notes) {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes is required when rejecting overtime",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecalculateWeekRequest struct {
	EmployeeID string `json:"employee_id"`
	WeekStart  string `json:"week_start"` // YYYY-MM-DD, any day inside the week
}

func (r *RecalculateWeekRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.WeekStart); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "week_start",
			Message: "week_start must be a valid date (YYYY-MM-DD)",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PatchRecordRequest is the superuser correction applied to CLOSED
// records. Every patch carries a justification appended to the record's
// override notes trail.
type PatchRecordRequest struct {
	EmployeeID       string  `json:"employee_id"`
	Date             string  `json:"date"`
	Notes            string  `json:"notes"`
	DayType          *string `json:"day_type,omitempty"`
	ScheduledMinutes *int    `json:"scheduled_minutes,omitempty"`
	EffectiveMinutes *int    `json:"effective_minutes,omitempty"`
	LateMinutes      *int    `json:"late_minutes,omitempty"`
}

func (r *PatchRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid date (YYYY-MM-DD)",
		})
	}

	if validator.IsEmpty(r.Notes) {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes is required for superuser corrections",
		})
	}

	if r.DayType != nil && !validator.IsInSlice(*r.DayType, DayTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "day_type",
			Message: "day_type is not a valid classification",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordFilter struct {
	EmployeeID string  `json:"employee_id"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	DayType    *string `json:"day_type,omitempty"`
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	var start, end string
	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		} else {
			start = *f.StartDate
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		} else {
			end = *f.EndDate
		}
	}
	if start != "" && end != "" && end < start {
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
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 31 // Default limit: one month of days
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceRecordResponse struct {
	ID                       string          `json:"id"`
	EmployeeID               string          `json:"employee_id"`
	EmployeeName             *string         `json:"employee_name,omitempty"`
	Date                     string          `json:"date"`
	DayType                  string          `json:"day_type"`
	Status                   string          `json:"status"`
	ScheduledMinutes         int             `json:"scheduled_minutes"`
	EffectiveMinutes         int             `json:"effective_minutes"`
	LateMinutes              int             `json:"late_minutes"`
	OvertimeRawMinutes       int             `json:"overtime_raw_minutes"`
	OvertimeEffectiveMinutes int             `json:"overtime_effective_minutes"`
	OvertimeMultiplierPct    int             `json:"overtime_multiplier_pct"`
	OvertimeStatus           string          `json:"overtime_status"`
	IsHoliday                bool            `json:"is_holiday"`
	IsNightShift             bool            `json:"is_night_shift"`
	DocumentRef              *string         `json:"document_ref,omitempty"`
	OverrideDayType          *string         `json:"override_day_type,omitempty"`
	OverrideNotes            *string         `json:"override_notes,omitempty"`
	Revision                 int             `json:"revision"`
	Punches                  []PunchResponse `json:"punches"`
}

type ListAttendanceResponse struct {
	TotalCount int64                      `json:"total_count"`
	Page       int                        `json:"page"`
	Limit      int                        `json:"limit"`
	TotalPages int                        `json:"total_pages"`
	Records    []AttendanceRecordResponse `json:"records"`
}
