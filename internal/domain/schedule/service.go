package schedule

import (
	"context"
	"time"
)

// ScheduleService covers schedule/holiday administration and day resolution.
type ScheduleService interface {
	CreateSchedule(ctx context.Context, req CreateWorkScheduleRequest) (WorkScheduleResponse, error)
	GetSchedule(ctx context.Context, id string) (WorkScheduleResponse, error)
	ListSchedules(ctx context.Context) (ListWorkSchedulesResponse, error)

	// ResolveDay yields the applicable day definition and holiday status
	// for a date. Schedules are company-wide; employeeID is accepted for
	// authorization symmetry with the rest of the API.
	ResolveDay(ctx context.Context, date time.Time) (ResolvedDay, error)

	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	ListHolidays(ctx context.Context, filter HolidayFilter) ([]HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
}
