package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxishr/timecontrol-backend-go/internal/domain/schedule"
)

type fakeWorkScheduleRepo struct {
	schedules []schedule.WorkSchedule // newest effective_from first
}

func (f *fakeWorkScheduleRepo) Create(ctx context.Context, ws schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	ws.ID = "sched-new"
	f.schedules = append([]schedule.WorkSchedule{ws}, f.schedules...)
	return ws, nil
}

func (f *fakeWorkScheduleRepo) GetByID(ctx context.Context, id string) (schedule.WorkSchedule, error) {
	for _, ws := range f.schedules {
		if ws.ID == id {
			return ws, nil
		}
	}
	return schedule.WorkSchedule{}, schedule.ErrWorkScheduleNotFound
}

func (f *fakeWorkScheduleRepo) List(ctx context.Context) ([]schedule.WorkSchedule, int64, error) {
	return f.schedules, int64(len(f.schedules)), nil
}

func (f *fakeWorkScheduleRepo) GetEffectiveForDate(ctx context.Context, date time.Time) (schedule.WorkSchedule, error) {
	var best *schedule.WorkSchedule
	for i := range f.schedules {
		ws := &f.schedules[i]
		if ws.EffectiveFrom.After(date) {
			continue
		}
		if best == nil || ws.EffectiveFrom.After(best.EffectiveFrom) {
			best = ws
		}
	}
	if best == nil {
		return schedule.WorkSchedule{}, schedule.ErrNoScheduleConfigured
	}
	return *best, nil
}

type fakeHolidayRepo struct {
	holidays []schedule.Holiday
}

func (f *fakeHolidayRepo) Create(ctx context.Context, holiday schedule.Holiday) (schedule.Holiday, error) {
	holiday.ID = "hol-new"
	f.holidays = append(f.holidays, holiday)
	return holiday, nil
}

func (f *fakeHolidayRepo) List(ctx context.Context, filter schedule.HolidayFilter) ([]schedule.Holiday, error) {
	return f.holidays, nil
}

func (f *fakeHolidayRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func (f *fakeHolidayRepo) FindForDate(ctx context.Context, date time.Time) (*schedule.Holiday, error) {
	// Exact entries beat recurring ones.
	var recurring *schedule.Holiday
	for i := range f.holidays {
		h := &f.holidays[i]
		if !h.Matches(date) {
			continue
		}
		if !h.Recurring {
			return h, nil
		}
		recurring = h
	}
	return recurring, nil
}

func strPtr(s string) *string {
	return &s
}

func standardDays() []schedule.ScheduleDay {
	days := make([]schedule.ScheduleDay, 0, 7)
	for weekday := 1; weekday <= 5; weekday++ {
		days = append(days, schedule.ScheduleDay{
			Weekday:           weekday,
			IsWorkDay:         true,
			StartTime:         strPtr("08:00"),
			EndTime:           strPtr("17:00"),
			EntryGraceMinutes: 5,
		})
	}
	days = append(days,
		schedule.ScheduleDay{Weekday: 6},
		schedule.ScheduleDay{Weekday: 7},
	)
	return days
}

func newResolverEnv() (schedule.ScheduleService, *fakeWorkScheduleRepo, *fakeHolidayRepo) {
	wsRepo := &fakeWorkScheduleRepo{}
	holRepo := &fakeHolidayRepo{}
	return NewScheduleService(nil, wsRepo, holRepo), wsRepo, holRepo
}

func TestResolveDay_PicksLatestEffectiveSchedule(t *testing.T) {
	ctx := context.Background()
	svc, wsRepo, _ := newResolverEnv()

	oldDays := standardDays()
	newDays := standardDays()
	newDays[0].StartTime = strPtr("09:00")

	wsRepo.schedules = []schedule.WorkSchedule{
		{ID: "sched-2", Name: "Summer", EffectiveFrom: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), Days: newDays},
		{ID: "sched-1", Name: "Standard", EffectiveFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Days: oldDays},
	}

	// Before the new version takes effect the old one still wins.
	day, err := svc.ResolveDay(ctx, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)) // Monday
	require.NoError(t, err)
	assert.Equal(t, "sched-1", day.ScheduleID)
	assert.Equal(t, "08:00", *day.StartTime)

	day, err = svc.ResolveDay(ctx, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)) // Monday, effective day
	require.NoError(t, err)
	assert.Equal(t, "sched-2", day.ScheduleID)
	assert.Equal(t, "09:00", *day.StartTime)
}

func TestResolveDay_NoScheduleConfigured(t *testing.T) {
	ctx := context.Background()
	svc, wsRepo, _ := newResolverEnv()

	wsRepo.schedules = []schedule.WorkSchedule{
		{ID: "sched-1", Name: "Standard", EffectiveFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Days: standardDays()},
	}

	_, err := svc.ResolveDay(ctx, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, schedule.ErrNoScheduleConfigured)
}

func TestResolveDay_WeekendIsRest(t *testing.T) {
	ctx := context.Background()
	svc, wsRepo, _ := newResolverEnv()

	wsRepo.schedules = []schedule.WorkSchedule{
		{ID: "sched-1", Name: "Standard", EffectiveFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Days: standardDays()},
	}

	day, err := svc.ResolveDay(ctx, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)) // Sunday
	require.NoError(t, err)
	assert.False(t, day.IsWorkDay)
	assert.Nil(t, day.StartTime)
}

func TestResolveDay_MarksHolidays(t *testing.T) {
	ctx := context.Background()
	svc, wsRepo, holRepo := newResolverEnv()

	wsRepo.schedules = []schedule.WorkSchedule{
		{ID: "sched-1", Name: "Standard", EffectiveFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Days: standardDays()},
	}
	holRepo.holidays = []schedule.Holiday{
		{ID: "hol-1", Name: "Labour Day", Date: time.Date(2000, 5, 1, 0, 0, 0, 0, time.UTC), Kind: schedule.HolidayKindNational, Recurring: true},
		{ID: "hol-2", Name: "Company Day", Date: time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC), Kind: schedule.HolidayKindCompany},
	}

	// Recurring holiday matches any year.
	day, err := svc.ResolveDay(ctx, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, day.IsHoliday)
	assert.Equal(t, "Labour Day", *day.HolidayName)

	// Fixed holiday matches its exact date only.
	day, err = svc.ResolveDay(ctx, time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, day.IsHoliday)

	day, err = svc.ResolveDay(ctx, time.Date(2027, 3, 13, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, day.IsHoliday)
}

func TestHolidayMatches(t *testing.T) {
	recurring := schedule.Holiday{Date: time.Date(2000, 12, 25, 0, 0, 0, 0, time.UTC), Recurring: true}
	assert.True(t, recurring.Matches(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)))
	assert.False(t, recurring.Matches(time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)))

	fixed := schedule.Holiday{Date: time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)}
	assert.True(t, fixed.Matches(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)))
	assert.False(t, fixed.Matches(time.Date(2027, 12, 25, 0, 0, 0, 0, time.UTC)))
}
