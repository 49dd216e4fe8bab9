package schedule

import (
	"github.com/praxishr/timecontrol-backend-go/internal/pkg/validator"
)

// ========================================
// WORK SCHEDULE DTOs
// ========================================

type ScheduleDayRequest struct {
	Weekday           int     `json:"weekday"` // 1=Monday ... 7=Sunday
	IsWorkDay         bool    `json:"is_work_day"`
	StartTime         *string `json:"start_time,omitempty"` // "HH:MM"
	EndTime           *string `json:"end_time,omitempty"`   // "HH:MM"
	EntryGraceMinutes int     `json:"entry_grace_minutes"`
	ExitGraceMinutes  int     `json:"exit_grace_minutes"`
}

type CreateWorkScheduleRequest struct {
	Name          string               `json:"name"`
	EffectiveFrom string               `json:"effective_from"` // YYYY-MM-DD
	Days          []ScheduleDayRequest `json:"days"`
}

func (r *CreateWorkScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_from",
			Message: "effective_from must be a valid date (YYYY-MM-DD)",
		})
	}

	if len(r.Days) != 7 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "exactly seven day entries are required, one per weekday",
		})
	} else {
		seen := make(map[int]bool, 7)
		for i, d := range r.Days {
			field := "days[" + validator.Itoa(i) + "]"
			if d.Weekday < 1 || d.Weekday > 7 {
				errs = append(errs, validator.ValidationError{
					Field:   field + ".weekday",
					Message: "weekday must be between 1 (Monday) and 7 (Sunday)",
				})
				continue
			}
			if seen[d.Weekday] {
				errs = append(errs, validator.ValidationError{
					Field:   field + ".weekday",
					Message: "duplicate weekday entry",
				})
			}
			seen[d.Weekday] = true

			if d.IsWorkDay {
				if d.StartTime == nil || !validator.IsValidTimeOfDay(*d.StartTime) {
					errs = append(errs, validator.ValidationError{
						Field:   field + ".start_time",
						Message: "start_time is required on work days and must be HH:MM",
					})
				}
				if d.EndTime == nil || !validator.IsValidTimeOfDay(*d.EndTime) {
					errs = append(errs, validator.ValidationError{
						Field:   field + ".end_time",
						Message: "end_time is required on work days and must be HH:MM",
					})
				}
			}
			if d.EntryGraceMinutes < 0 || d.EntryGraceMinutes > 120 {
				errs = append(errs, validator.ValidationError{
					Field:   field + ".entry_grace_minutes",
					Message: "entry_grace_minutes must be between 0 and 120",
				})
			}
			if d.ExitGraceMinutes < 0 || d.ExitGraceMinutes > 120 {
				errs = append(errs, validator.ValidationError{
					Field:   field + ".exit_grace_minutes",
					Message: "exit_grace_minutes must be between 0 and 120",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ScheduleDayResponse struct {
	Weekday           int     `json:"weekday"`
	IsWorkDay         bool    `json:"is_work_day"`
	StartTime         *string `json:"start_time,omitempty"`
	EndTime           *string `json:"end_time,omitempty"`
	EntryGraceMinutes int     `json:"entry_grace_minutes"`
	ExitGraceMinutes  int     `json:"exit_grace_minutes"`
}

type WorkScheduleResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	EffectiveFrom string                `json:"effective_from"`
	Days          []ScheduleDayResponse `json:"days"`
	CreatedAt     string                `json:"created_at"`
}

type ListWorkSchedulesResponse struct {
	TotalCount int64                  `json:"total_count"`
	Schedules  []WorkScheduleResponse `json:"schedules"`
}

type ResolvedDayResponse struct {
	ScheduleID        string  `json:"schedule_id"`
	ScheduleName      string  `json:"schedule_name"`
	Date              string  `json:"date"`
	IsWorkDay         bool    `json:"is_work_day"`
	StartTime         *string `json:"start_time,omitempty"`
	EndTime           *string `json:"end_time,omitempty"`
	EntryGraceMinutes int     `json:"entry_grace_minutes"`
	ExitGraceMinutes  int     `json:"exit_grace_minutes"`
	IsHoliday         bool    `json:"is_holiday"`
	HolidayName       *string `json:"holiday_name,omitempty"`
}

// ========================================
// HOLIDAY DTOs
// ========================================

type CreateHolidayRequest struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Name      string `json:"name"`
	Kind      string `json:"kind"` // national | company
	Recurring bool   `json:"recurring"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid date (YYYY-MM-DD)",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsInSlice(r.Kind, HolidayKindValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: national, company",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HolidayResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Recurring bool   `json:"recurring"`
}

type HolidayFilter struct {
	Year *int `json:"year,omitempty"`
}
