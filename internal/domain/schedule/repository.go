package schedule

import (
	"context"
	"time"
)

type WorkScheduleRepository interface {
	// Create persists a schedule together with its seven day entries.
	Create(ctx context.Context, workSchedule WorkSchedule) (WorkSchedule, error)

	GetByID(ctx context.Context, id string) (WorkSchedule, error)

	// List returns all schedule versions, newest effective_from first.
	List(ctx context.Context) ([]WorkSchedule, int64, error)

	// GetEffectiveForDate returns the schedule with the greatest
	// effective_from on or before date.
	GetEffectiveForDate(ctx context.Context, date time.Time) (WorkSchedule, error)
}

type HolidayRepository interface {
	Create(ctx context.Context, holiday Holiday) (Holiday, error)
	List(ctx context.Context, filter HolidayFilter) ([]Holiday, error)
	Delete(ctx context.Context, id string) error

	// FindForDate returns the holiday applying to date, either an exact
	// entry or a recurring one matching the month and day.
	FindForDate(ctx context.Context, date time.Time) (*Holiday, error)
}
